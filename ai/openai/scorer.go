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
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/ReesavGupta/ragxragas/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Scorer implements ai.RelevanceScorer using OpenAI-compatible chat APIs.
// The model rates a query/passage pair on an integer 0-10 scale which is
// mapped to [0, 1].
type Scorer struct {
	client llms.Model
	logger *slog.Logger
}

var errUnparseableScore = errors.New("unparseable relevance score")

// newScorer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newScorer(config *ai.Config) (*Scorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.LLMHost),
		openai.WithToken("none"),
		openai.WithModel(config.ScorerModel),
	)
	if err != nil {
		return nil, err
	}

	return &Scorer{
		client: client,
		logger: slog.Default().With("component", "openai-scorer"),
	}, nil
}

// NewScorer creates a new relevance scorer using the provided configuration.
//
// Returns ai.RelevanceScorer interface to enforce abstraction.
func NewScorer(config *ai.Config) (ai.RelevanceScorer, error) {
	return newScorer(config)
}

// Score rates the passage against the query and returns a score in [0, 1].
func (s *Scorer) Score(ctx context.Context, query, passage string) (float64, error) {
	content := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildScorerPrompt(query, passage))},
		},
	}

	// Try up to 3 times in case of a malformed answer
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
		if err != nil {
			s.logger.Error("failed to score passage", "attempt", attempt+1, "err", err)
			return 0, err
		}

		if len(response.Choices) < 1 {
			lastErr = errUnparseableScore
			continue
		}

		rating, err := parseRating(response.Choices[0].Content)
		if err != nil {
			lastErr = err
			s.logger.Warn("error parsing scorer response",
				"attempt", attempt+1,
				"response", response.Choices[0].Content,
				"err", err)
			continue
		}

		return float64(rating) / 10.0, nil
	}

	return 0, lastErr
}

// parseRating extracts the first integer from the model's answer and clamps
// it to the 0-10 scale.
func parseRating(answer string) (int, error) {
	fields := strings.FieldsFunc(answer, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return 0, errUnparseableScore
	}

	rating, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, errUnparseableScore
	}
	if rating < 0 {
		rating = 0
	}
	if rating > 10 {
		rating = 10
	}
	return rating, nil
}
