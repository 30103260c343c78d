// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mock

import "github.com/ReesavGupta/ragxragas/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock embedder, classifier, and scorer instances.
type MockProvider struct {
	embedder   *MockEmbedder
	classifier *MockClassifier
	scorer     *MockScorer
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider with default mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		classifier: NewMockClassifier(),
		scorer:     NewMockScorer(),
	}
}

// NewMockProviderWithServices creates a provider with the given mock services.
// Nil arguments fall back to defaults.
func NewMockProviderWithServices(embedder *MockEmbedder, classifier *MockClassifier, scorer *MockScorer) *MockProvider {
	if embedder == nil {
		embedder = NewMockEmbedder()
	}
	if classifier == nil {
		classifier = NewMockClassifier()
	}
	if scorer == nil {
		scorer = NewMockScorer()
	}
	return &MockProvider{
		embedder:   embedder,
		classifier: classifier,
		scorer:     scorer,
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Classifier returns the mock classification service.
func (p *MockProvider) Classifier() ai.QueryClassifier {
	return p.classifier
}

// Scorer returns the mock relevance scoring service.
func (p *MockProvider) Scorer() ai.RelevanceScorer {
	return p.scorer
}

// Close is a no-op for mocks.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the concrete mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockClassifier returns the concrete mock classifier for test assertions.
func (p *MockProvider) GetMockClassifier() *MockClassifier {
	return p.classifier
}

// GetMockScorer returns the concrete mock scorer for test assertions.
func (p *MockProvider) GetMockScorer() *MockScorer {
	return p.scorer
}
