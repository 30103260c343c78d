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

package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/ReesavGupta/ragxragas/ai"
	"github.com/ReesavGupta/ragxragas/core"
	"github.com/ReesavGupta/ragxragas/storage"
	"github.com/panjf2000/ants/v2"
)

// Pipeline orchestrates the ingestion of documents into the corpus.
// It splits documents into chunks, stores them, and embeds them
// asynchronously on a worker pool.
type Pipeline struct {
	chunkRepository storage.ChunkRepository
	embeddingPool   *ants.Pool
	embeddingProc   *embeddingProcessor
	chunkRunes      int
	pending         sync.WaitGroup
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = embeddingPool
		return nil
	}
}

// WithChunkSize sets the target chunk size in runes.
// Default is 1000.
func WithChunkSize(runes int) Option {
	return func(p *Pipeline) error {
		if runes > 0 {
			p.chunkRunes = runes
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	chunkRepository storage.ChunkRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	if chunkRepository == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chunkRepository: chunkRepository,
		embeddingPool:   embeddingPool,
		chunkRunes:      defaultChunkRunes,
		logger:          slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	embeddingProc, err := newEmbeddingProcessor(chunkRepository, embedder, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.embeddingProc = embeddingProc

	return p, nil
}

// IngestOptions holds optional parameters for ingestion.
type IngestOptions struct {
	Metadata map[string]string // Optional metadata to attach to every chunk
}

// Ingest splits the documents into chunks, stores them, and embeds them
// asynchronously. Returns the stored chunks; their vectors are populated in
// the background. Errors during async embedding are logged but do not fail
// the ingestion.
//
// Chunks are content-addressed, so re-ingesting an unchanged document is an
// idempotent overwrite.
func (p *Pipeline) Ingest(ctx context.Context, documents []string, opts *IngestOptions) ([]*core.Chunk, error) {
	if opts == nil {
		opts = &IngestOptions{}
	}

	var chunks []*core.Chunk
	for _, document := range documents {
		for _, content := range splitDocument(document, p.chunkRunes) {
			chunks = append(chunks, &core.Chunk{
				Content:  content,
				Metadata: opts.Metadata,
			})
		}
	}
	if len(chunks) == 0 {
		return nil, ErrNothingToIngest
	}

	added, err := p.chunkRepository.AddChunks(ctx, chunks...)
	if err != nil {
		return nil, err
	}

	ids := make([]core.ID, len(added))
	for i, chunk := range added {
		ids[i] = chunk.Id
	}

	// Submit for async embedding
	p.pending.Add(1)
	submitErr := p.embeddingPool.Submit(func() {
		defer p.pending.Done()
		if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}
	})
	if submitErr != nil {
		p.pending.Done()
		p.logger.Error("error submitting embedding batch", "err", submitErr)
	}

	return added, nil
}

// Commit waits for in-flight embedding work and bumps the corpus version.
// Call once per ingestion batch; the returned version invalidates all cached
// results computed against the previous corpus.
func (p *Pipeline) Commit(ctx context.Context) (uint64, error) {
	p.pending.Wait()
	return p.chunkRepository.BumpCorpusVersion(ctx)
}

// Wait blocks until all submitted embedding work has finished.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}
