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

package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ReesavGupta/ragxragas/ai"
	"github.com/ReesavGupta/ragxragas/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Classifier implements ai.QueryClassifier using OpenAI-compatible chat APIs
// with a few-shot prompt.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.LLMHost),
		openai.WithToken("none"),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new query classifier using the provided configuration.
//
// Returns ai.QueryClassifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.QueryClassifier, error) {
	return newClassifier(config)
}

// Classify labels a query as volatile or stable.
// An answer that mentions neither label defaults to volatile, the most
// conservative choice for caching. Errors are returned only for transport
// failures.
func (c *Classifier) Classify(ctx context.Context, query string) (core.Category, error) {
	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildClassifierPrompt(query))},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("failed to classify query", "err", err)
		return core.CategoryVolatile, fmt.Errorf("%w: %v", core.ErrClassificationFailed, err)
	}

	if len(response.Choices) < 1 {
		c.logger.Warn("no choices returned from classifier model")
		return core.CategoryVolatile, nil
	}

	answer := strings.ToLower(strings.TrimSpace(response.Choices[0].Content))
	switch {
	case strings.Contains(answer, "volatile"):
		return core.CategoryVolatile, nil
	case strings.Contains(answer, "stable"):
		return core.CategoryStable, nil
	default:
		c.logger.Warn("unparseable classification, defaulting to volatile", "answer", answer)
		return core.CategoryVolatile, nil
	}
}
