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

// Package ai provides abstractions for the external AI capabilities the
// retrieval engine consumes.
//
// The package defines interfaces for text embeddings, query freshness
// classification, and pairwise relevance scoring. It follows the dependency
// inversion principle: the retrieval pipeline depends on these abstractions,
// never on a concrete vendor client, and providers are injected explicitly
// at startup rather than held in package-level singletons.
//
// The three capability interfaces are:
//
//   - Embedder: generates vector embeddings from text
//   - QueryClassifier: assigns a freshness category used for cache TTL selection
//   - RelevanceScorer: cross-encoder style query+passage scoring for reranking
//
// Implementation sub-packages:
//
//   - ai/openai: production implementation against OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles without external dependencies
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; mock constructors return concrete types so tests can inject
// behavior and assert call counts.
package ai
