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

package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ReesavGupta/ragxragas/ai"
	"github.com/ReesavGupta/ragxragas/cache"
	"github.com/ReesavGupta/ragxragas/core"
	"github.com/ReesavGupta/ragxragas/retrieval"
	"github.com/ReesavGupta/ragxragas/storage"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTopK            = 5
	defaultClassifyTimeout = 10 * time.Second
	defaultSearchTimeout   = 30 * time.Second
)

// DenseSearcher is the embedding-based retrieval side.
type DenseSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]core.ScoredCandidate, error)
}

// SparseSearcher is the lexical retrieval side.
type SparseSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]core.ScoredCandidate, error)
}

// Ranker re-scores merged candidates against the query.
type Ranker interface {
	Rerank(ctx context.Context, query string, candidates []core.ScoredCandidate) ([]core.ScoredCandidate, error)
}

// CandidateFilter bounds the final candidate set.
type CandidateFilter interface {
	Compress(candidates []core.ScoredCandidate) []core.ScoredCandidate
}

// Orchestrator runs the full query path: classification, cache lookup, hybrid
// retrieval, fusion, and the optional rerank and compression stages.
type Orchestrator struct {
	classifier ai.QueryClassifier
	dense      DenseSearcher
	sparse     SparseSearcher
	merger     *retrieval.Merger
	ranker     Ranker
	filter     CandidateFilter
	results    *cache.ResultCache
	chunks     storage.ChunkRepository

	topK            int
	classifyTimeout time.Duration
	searchTimeout   time.Duration
	logger          *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithTopK sets the result budget per query.
// Default is 5.
func WithTopK(k int) Option {
	return func(o *Orchestrator) error {
		if k < 1 {
			return ErrInvalidTopK
		}
		o.topK = k
		return nil
	}
}

// WithRanker enables the rerank stage.
func WithRanker(ranker Ranker) Option {
	return func(o *Orchestrator) error {
		o.ranker = ranker
		return nil
	}
}

// WithFilter enables the compression stage.
func WithFilter(filter CandidateFilter) Option {
	return func(o *Orchestrator) error {
		o.filter = filter
		return nil
	}
}

// WithMerger replaces the default equal-weight merger.
func WithMerger(merger *retrieval.Merger) Option {
	return func(o *Orchestrator) error {
		if merger != nil {
			o.merger = merger
		}
		return nil
	}
}

// WithClassifyTimeout bounds the classification call.
func WithClassifyTimeout(d time.Duration) Option {
	return func(o *Orchestrator) error {
		o.classifyTimeout = d
		return nil
	}
}

// WithSearchTimeout bounds each retrieval side.
func WithSearchTimeout(d time.Duration) Option {
	return func(o *Orchestrator) error {
		o.searchTimeout = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger.With("component", "orchestrator")
		return nil
	}
}

// NewOrchestrator creates the query path over the given stages.
func NewOrchestrator(
	classifier ai.QueryClassifier,
	dense DenseSearcher,
	sparse SparseSearcher,
	results *cache.ResultCache,
	chunks storage.ChunkRepository,
	opts ...Option,
) (*Orchestrator, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if dense == nil {
		return nil, ErrDenseSearcherRequired
	}
	if sparse == nil {
		return nil, ErrSparseSearcherRequired
	}
	if results == nil {
		return nil, ErrResultCacheRequired
	}
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}

	o := &Orchestrator{
		classifier:      classifier,
		dense:           dense,
		sparse:          sparse,
		merger:          retrieval.NewMerger(),
		results:         results,
		chunks:          chunks,
		topK:            defaultTopK,
		classifyTimeout: defaultClassifyTimeout,
		searchTimeout:   defaultSearchTimeout,
		logger:          slog.Default().With("component", "orchestrator"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Retrieve answers the query, from the cache when possible.
func (o *Orchestrator) Retrieve(ctx context.Context, query string) (*core.Answer, error) {
	return o.RetrieveWithMonitor(ctx, query, nil)
}

// RetrieveWithMonitor answers the query with monitoring.
// The monitor receives callbacks at each stage of the query path.
func (o *Orchestrator) RetrieveWithMonitor(ctx context.Context, query string, monitor Monitor) (*core.Answer, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}

	start := time.Now()
	monitor.Start(query)

	category := o.classify(ctx, query)
	monitor.Classified(query, category)

	corpusVersion, err := o.chunks.CorpusVersion(ctx)
	if err != nil {
		o.logger.Error("error reading corpus version", "err", err)
		return nil, err
	}

	fingerprint := cache.Fingerprint(query, category, o.topK, corpusVersion)

	result, cacheHit, err := o.results.GetOrCompute(ctx, fingerprint, category, func(computeCtx context.Context) (*core.RetrievalResult, error) {
		monitor.CacheMiss(fingerprint)
		return o.compute(computeCtx, query, category, corpusVersion, monitor)
	})
	if err != nil {
		return nil, err
	}
	if cacheHit {
		monitor.CacheHit(fingerprint)
	}

	monitor.Finish(result, cacheHit, time.Since(start))

	return &core.Answer{
		Result:   result,
		CacheHit: cacheHit,
		Category: category,
	}, nil
}

// RebuildSparseIndex refreshes the lexical index from the current corpus.
// Call after an ingestion batch completes. Only effective when the sparse
// side is a rebuildable index.
func (o *Orchestrator) RebuildSparseIndex(ctx context.Context) error {
	index, ok := o.sparse.(*retrieval.SparseIndex)
	if !ok {
		return nil
	}

	chunks, err := o.chunks.Snapshot(ctx)
	if err != nil {
		return err
	}
	index.Rebuild(chunks)
	return nil
}

// classify assigns the freshness category. Any failure falls back to
// volatile: a wrongly short TTL costs a recomputation, a wrongly long one
// serves stale answers.
func (o *Orchestrator) classify(ctx context.Context, query string) core.Category {
	classifyCtx, cancel := context.WithTimeout(ctx, o.classifyTimeout)
	defer cancel()

	category, err := o.classifier.Classify(classifyCtx, query)
	if err != nil {
		o.logger.Warn("classification failed, assuming volatile", "err", err)
		return core.CategoryVolatile
	}
	if err := core.ValidateCategory(category); err != nil {
		return core.CategoryVolatile
	}
	return category
}

// compute runs the retrieval pipeline for a cache miss.
func (o *Orchestrator) compute(ctx context.Context, query string, category core.Category, corpusVersion uint64, monitor Monitor) (*core.RetrievalResult, error) {
	var denseCandidates, sparseCandidates []core.ScoredCandidate
	var denseErr, sparseErr error

	// Both sides run concurrently; errors are collected, not propagated, so
	// one side failing doesn't cancel the other.
	g := new(errgroup.Group)
	g.Go(func() error {
		searchCtx, cancel := context.WithTimeout(ctx, o.searchTimeout)
		defer cancel()
		denseCandidates, denseErr = o.dense.Search(searchCtx, query, o.topK)
		return nil
	})
	g.Go(func() error {
		searchCtx, cancel := context.WithTimeout(ctx, o.searchTimeout)
		defer cancel()
		sparseCandidates, sparseErr = o.sparse.Search(searchCtx, query, o.topK)
		return nil
	})
	g.Wait()

	if denseErr != nil && sparseErr != nil {
		o.logger.Error("both retrieval sides failed", "dense_err", denseErr, "sparse_err", sparseErr)
		return nil, ErrBothSidesFailed
	}

	degraded := false
	if denseErr != nil {
		o.logger.Warn("dense search failed, continuing on lexical results", "err", denseErr)
		monitor.SearchDegraded("dense", denseErr)
		degraded = true
	}
	if sparseErr != nil {
		o.logger.Warn("sparse search failed, continuing on dense results", "err", sparseErr)
		monitor.SearchDegraded("sparse", sparseErr)
		degraded = true
	}

	merged := o.merger.Merge(denseCandidates, sparseCandidates, o.topK)
	monitor.AfterMerge(merged)

	if len(merged) == 0 {
		outcome := core.OutcomeNoResults
		if degraded {
			// One side never ran; an empty answer can't claim the corpus has
			// nothing.
			outcome = core.OutcomeDegraded
		}
		return &core.RetrievalResult{
			Query:         query,
			Category:      category,
			Outcome:       outcome,
			Candidates:    []core.ScoredCandidate{},
			CorpusVersion: corpusVersion,
		}, nil
	}

	if o.ranker != nil {
		reranked, err := o.ranker.Rerank(ctx, query, merged)
		if err != nil {
			o.logger.Warn("rerank failed, keeping merged order", "err", err)
			monitor.RerankSkipped(err)
			degraded = true
		} else {
			merged = reranked
			monitor.AfterRerank(merged)
		}
	}

	if o.filter != nil {
		merged = o.filter.Compress(merged)
	}

	outcome := core.OutcomeOK
	switch {
	case len(merged) == 0:
		// Candidates existed before the rerank and compression stages; their
		// absence now is a deliberate filtering decision.
		outcome = core.OutcomeNoRelevantContext
	case degraded:
		outcome = core.OutcomeDegraded
	}

	if merged == nil {
		merged = []core.ScoredCandidate{}
	}
	return &core.RetrievalResult{
		Query:         query,
		Category:      category,
		Outcome:       outcome,
		Candidates:    merged,
		CorpusVersion: corpusVersion,
	}, nil
}
