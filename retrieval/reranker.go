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
	"sort"
	"sync"
	"time"

	"github.com/ReesavGupta/ragxragas/ai"
	"github.com/ReesavGupta/ragxragas/core"
	"github.com/panjf2000/ants/v2"
)

const (
	defaultRerankWorkers = 4
	defaultScoreTimeout  = 15 * time.Second
)

// Reranker re-scores merged candidates against the literal query with a
// cross-scoring model. Candidates are scored concurrently on a bounded worker
// pool; per-candidate failures fall back to the candidate's combined score so
// one flaky call doesn't discard first-stage signal.
//
// Reranking reorders and filters; it never adds candidates.
type Reranker struct {
	scorer       ai.RelevanceScorer
	pool         *ants.Pool
	scoreTimeout time.Duration
	floor        float64
	hasFloor     bool
	logger       *slog.Logger
}

// RerankerOption configures a Reranker.
type RerankerOption func(*rerankerConfig)

type rerankerConfig struct {
	workers      int
	scoreTimeout time.Duration
	floor        float64
	hasFloor     bool
	logger       *slog.Logger
}

// WithRerankWorkers sets the number of concurrent scoring calls.
func WithRerankWorkers(n int) RerankerOption {
	return func(c *rerankerConfig) { c.workers = n }
}

// WithScoreTimeout bounds each individual scoring call.
func WithScoreTimeout(d time.Duration) RerankerOption {
	return func(c *rerankerConfig) { c.scoreTimeout = d }
}

// WithRerankFloor drops candidates whose rerank score falls below floor.
func WithRerankFloor(floor float64) RerankerOption {
	return func(c *rerankerConfig) {
		c.floor = floor
		c.hasFloor = true
	}
}

// WithRerankLogger sets the logger.
func WithRerankLogger(logger *slog.Logger) RerankerOption {
	return func(c *rerankerConfig) { c.logger = logger.With("component", "reranker") }
}

// NewReranker creates a reranker backed by the given scorer.
func NewReranker(scorer ai.RelevanceScorer, opts ...RerankerOption) (*Reranker, error) {
	if scorer == nil {
		return nil, ErrScorerRequired
	}

	cfg := &rerankerConfig{
		workers:      defaultRerankWorkers,
		scoreTimeout: defaultScoreTimeout,
		logger:       slog.Default().With("component", "reranker"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := ants.NewPool(cfg.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	return &Reranker{
		scorer:       scorer,
		pool:         pool,
		scoreTimeout: cfg.scoreTimeout,
		floor:        cfg.floor,
		hasFloor:     cfg.hasFloor,
		logger:       cfg.logger,
	}, nil
}

// Rerank scores every candidate against the query and returns the list
// reordered by rerank score. When a floor is configured, candidates scoring
// below it are dropped; the result may be empty, which callers must treat as
// "no sufficiently relevant context", not as an error.
//
// Returns an error only when every scoring call failed; the caller should
// then fall back to the merged order.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []core.ScoredCandidate) ([]core.ScoredCandidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	scored := make([]core.ScoredCandidate, len(candidates))
	copy(scored, candidates)

	var wg sync.WaitGroup
	var failures int64
	var failMu sync.Mutex

	for i := range scored {
		i := i
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, r.scoreTimeout)
			defer cancel()

			score, err := r.scorer.Score(callCtx, query, scored[i].Content)
			if err != nil {
				r.logger.Warn("scoring failed, keeping combined score",
					"chunk_id", scored[i].ChunkId, "error", err)
				failMu.Lock()
				failures++
				failMu.Unlock()
				scored[i].RerankScore = scored[i].CombinedScore
				return
			}
			scored[i].RerankScore = score
		})
		if err != nil {
			// Pool rejected the task (released pool); score inline.
			wg.Done()
			score, scoreErr := r.scorer.Score(ctx, query, scored[i].Content)
			if scoreErr != nil {
				failMu.Lock()
				failures++
				failMu.Unlock()
				scored[i].RerankScore = scored[i].CombinedScore
				continue
			}
			scored[i].RerankScore = score
		}
	}
	wg.Wait()

	if failures == int64(len(scored)) {
		return nil, fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, ErrAllCandidatesFailed)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RerankScore > scored[j].RerankScore
	})

	if !r.hasFloor {
		return scored, nil
	}
	kept := scored[:0]
	for _, c := range scored {
		if c.RerankScore >= r.floor {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

// Release shuts down the worker pool. The reranker must not be used after.
func (r *Reranker) Release() {
	r.pool.Release()
}
