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

package ragxragas

import (
	"context"
	"log/slog"

	"github.com/ReesavGupta/ragxragas/ai"
	"github.com/ReesavGupta/ragxragas/ai/openai"
	"github.com/ReesavGupta/ragxragas/cache"
	"github.com/ReesavGupta/ragxragas/core"
	"github.com/ReesavGupta/ragxragas/ingestion"
	"github.com/ReesavGupta/ragxragas/pipeline"
	"github.com/ReesavGupta/ragxragas/retrieval"
	"github.com/ReesavGupta/ragxragas/storage"
	badgerstore "github.com/ReesavGupta/ragxragas/storage/badger"
	redisstore "github.com/ReesavGupta/ragxragas/storage/redis"
)

// Engine bundles storage, AI services, both retrieval sides, the result
// cache, and the orchestrator behind one handle.
type Engine struct {
	backend      *badgerstore.Backend
	chunkRepo    storage.ChunkRepository
	cacheStore   storage.CacheStore
	provider     ai.Provider
	sparseIndex  *retrieval.SparseIndex
	reranker     *retrieval.Reranker
	orchestrator *pipeline.Orchestrator
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig          *ai.Config
	provider          ai.Provider
	redisAddr         string
	inMemory          bool
	topK              int
	denseWeight       float64
	sparseWeight      float64
	weightsSet        bool
	rerank            bool
	rerankFloor       float64
	rerankFloorSet    bool
	compressMax       int
	compressThreshold float64
	compressSet       bool
	ttlPolicy         cache.TTLPolicy
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a pre-built AI provider, bypassing the OpenAI-style
// client construction. The engine takes ownership and closes it.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) { o.provider = provider }
}

// WithRedisCache stores cached results in Redis at addr instead of the
// embedded store, so cache entries survive independently and can be shared
// across processes.
func WithRedisCache(addr string) EngineOption {
	return func(o *engineOptions) { o.redisAddr = addr }
}

// WithInMemoryStorage keeps all storage in memory. For tests and
// experiments.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) { o.inMemory = true }
}

// WithTopK sets the result budget per query.
func WithTopK(k int) EngineOption {
	return func(o *engineOptions) { o.topK = k }
}

// WithFusionWeights sets the relative weight of the dense and sparse sides.
func WithFusionWeights(dense, sparse float64) EngineOption {
	return func(o *engineOptions) {
		o.denseWeight = dense
		o.sparseWeight = sparse
		o.weightsSet = true
	}
}

// WithRerank enables the second-stage reranker.
func WithRerank() EngineOption {
	return func(o *engineOptions) { o.rerank = true }
}

// WithRerankFloor enables the reranker with a relevance floor; candidates
// scoring below it are dropped.
func WithRerankFloor(floor float64) EngineOption {
	return func(o *engineOptions) {
		o.rerank = true
		o.rerankFloor = floor
		o.rerankFloorSet = true
	}
}

// WithCompression enables the compression stage keeping at most max
// candidates above threshold.
func WithCompression(max int, threshold float64) EngineOption {
	return func(o *engineOptions) {
		o.compressMax = max
		o.compressThreshold = threshold
		o.compressSet = true
	}
}

// WithTTLPolicy overrides the cache lifetimes per freshness category.
func WithTTLPolicy(policy cache.TTLPolicy) EngineOption {
	return func(o *engineOptions) { o.ttlPolicy = policy }
}

// NewEngine opens the storage at filePath and assembles the full query path.
// The lexical index is warmed from the stored corpus before returning.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig:  ai.DefaultConfig(),
		ttlPolicy: cache.DefaultTTLPolicy(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badgerstore.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	chunkRepo, err := badgerstore.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	var cacheStore storage.CacheStore
	if options.redisAddr != "" {
		cacheStore, err = redisstore.NewCacheStore(context.Background(), options.redisAddr)
		if err != nil {
			chunkRepo.Close()
			backend.Close()
			return nil, err
		}
	} else {
		cacheStore = badgerstore.NewCacheStore(backend)
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			cacheStore.Close()
			chunkRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	engine := &Engine{
		backend:    backend,
		chunkRepo:  chunkRepo,
		cacheStore: cacheStore,
		provider:   provider,
		logger:     slog.Default(),
	}

	if err := engine.assemble(options); err != nil {
		engine.Close()
		return nil, err
	}
	return engine, nil
}

func (e *Engine) assemble(options *engineOptions) error {
	dense, err := retrieval.NewDenseIndex(e.provider.Embedder(), e.chunkRepo)
	if err != nil {
		return err
	}

	e.sparseIndex = retrieval.NewSparseIndex()

	results, err := cache.NewResultCache(e.cacheStore, cache.WithTTLPolicy(options.ttlPolicy))
	if err != nil {
		return err
	}

	pipelineOpts := []pipeline.Option{}
	if options.topK > 0 {
		pipelineOpts = append(pipelineOpts, pipeline.WithTopK(options.topK))
	}
	if options.weightsSet {
		merger := retrieval.NewMerger(retrieval.WithWeights(options.denseWeight, options.sparseWeight))
		pipelineOpts = append(pipelineOpts, pipeline.WithMerger(merger))
	}
	if options.rerank {
		rerankOpts := []retrieval.RerankerOption{}
		if options.rerankFloorSet {
			rerankOpts = append(rerankOpts, retrieval.WithRerankFloor(options.rerankFloor))
		}
		reranker, err := retrieval.NewReranker(e.provider.Scorer(), rerankOpts...)
		if err != nil {
			return err
		}
		e.reranker = reranker
		pipelineOpts = append(pipelineOpts, pipeline.WithRanker(reranker))
	}
	if options.compressSet {
		compressor := retrieval.NewCompressor(options.compressMax, options.compressThreshold)
		pipelineOpts = append(pipelineOpts, pipeline.WithFilter(compressor))
	}

	orchestrator, err := pipeline.NewOrchestrator(
		e.provider.Classifier(), dense, e.sparseIndex, results, e.chunkRepo, pipelineOpts...)
	if err != nil {
		return err
	}
	e.orchestrator = orchestrator

	// Warm the lexical index from the stored corpus.
	return e.RebuildSparseIndex(context.Background())
}

// Retrieve answers the query, from the cache when possible.
func (e *Engine) Retrieve(ctx context.Context, query string) (*core.Answer, error) {
	return e.orchestrator.Retrieve(ctx, query)
}

// RetrieveWithMonitor answers the query with monitoring.
func (e *Engine) RetrieveWithMonitor(ctx context.Context, query string, monitor pipeline.Monitor) (*core.Answer, error) {
	return e.orchestrator.RetrieveWithMonitor(ctx, query, monitor)
}

// RebuildSparseIndex refreshes the lexical index from the stored corpus.
func (e *Engine) RebuildSparseIndex(ctx context.Context) error {
	return e.orchestrator.RebuildSparseIndex(ctx)
}

// ChunkRepository exposes the corpus for direct inspection.
func (e *Engine) ChunkRepository() storage.ChunkRepository {
	return e.chunkRepo
}

// NewIngestionPipeline creates an ingestion pipeline writing into this
// engine's corpus. Call RebuildSparseIndex after committing a batch so the
// lexical side sees the new chunks.
func (e *Engine) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(e.chunkRepo, e.provider.Embedder(), opts...)
}

// Close releases every resource the engine owns. The engine should not be
// used afterwards.
func (e *Engine) Close() error {
	if e.reranker != nil {
		e.reranker.Release()
	}

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.cacheStore.Close(); err != nil {
		e.logger.Error("error closing cache store", "err", err)
	}

	if err := e.chunkRepo.Close(); err != nil {
		e.logger.Error("error closing chunk repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
