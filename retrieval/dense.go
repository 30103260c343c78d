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

package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ReesavGupta/ragxragas/ai"
	"github.com/ReesavGupta/ragxragas/core"
	"github.com/ReesavGupta/ragxragas/storage"
)

const (
	defaultMinSimilarity = 0.25
	defaultMaxAttempts   = 3
	defaultRetryDelay    = 500 * time.Millisecond
)

// DenseIndex embeds queries and searches stored chunk vectors by cosine
// similarity. The embedding call goes to an external service, so it is
// retried with backoff; the vector scan itself is local.
type DenseIndex struct {
	embedder      ai.Embedder
	chunks        storage.ChunkRepository
	minSimilarity float32
	maxAttempts   int
	retryDelay    time.Duration
	logger        *slog.Logger
}

// DenseOption configures a DenseIndex.
type DenseOption func(*DenseIndex)

// WithMinSimilarity sets the similarity cutoff below which stored vectors are
// not returned.
func WithMinSimilarity(min float32) DenseOption {
	return func(d *DenseIndex) { d.minSimilarity = min }
}

// WithEmbedRetry configures retry behaviour for the embedding call.
func WithEmbedRetry(maxAttempts int, initialDelay time.Duration) DenseOption {
	return func(d *DenseIndex) {
		d.maxAttempts = maxAttempts
		d.retryDelay = initialDelay
	}
}

// WithDenseLogger sets the logger.
func WithDenseLogger(logger *slog.Logger) DenseOption {
	return func(d *DenseIndex) { d.logger = logger.With("component", "dense-index") }
}

// NewDenseIndex creates a dense retrieval path over the given embedder and
// chunk repository.
func NewDenseIndex(embedder ai.Embedder, chunks storage.ChunkRepository, opts ...DenseOption) (*DenseIndex, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}

	d := &DenseIndex{
		embedder:      embedder,
		chunks:        chunks,
		minSimilarity: defaultMinSimilarity,
		maxAttempts:   defaultMaxAttempts,
		retryDelay:    defaultRetryDelay,
		logger:        slog.Default().With("component", "dense-index"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Search embeds the query and returns up to limit chunks ordered by cosine
// similarity, best first. Chunks without a vector (embedding still pending)
// are simply not found by this path.
func (d *DenseIndex) Search(ctx context.Context, query string, limit int) ([]core.ScoredCandidate, error) {
	if limit <= 0 {
		return nil, nil
	}

	var vector []float32
	err := RetryWithBackoff(ctx, d.logger, d.maxAttempts, d.retryDelay, func() error {
		v, embedErr := d.embedder.EmbedText(ctx, query)
		if embedErr != nil {
			return fmt.Errorf("%w: embed query: %v", classifyUpstreamError(embedErr), embedErr)
		}
		vector = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	matches, err := d.chunks.FindSimilar(ctx, vector, d.minSimilarity, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	candidates := make([]core.ScoredCandidate, 0, len(matches))
	for _, match := range matches {
		candidates = append(candidates, core.ScoredCandidate{
			ChunkId:    match.Chunk.Id,
			Content:    match.Chunk.Content,
			Metadata:   match.Chunk.Metadata,
			DenseScore: float64(match.Score),
			HasDense:   true,
		})
	}
	return candidates, nil
}
