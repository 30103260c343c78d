package storage

import (
	"context"
	"time"

	"github.com/ReesavGupta/ragxragas/core"
)

// ChunkRepository provides operations over the indexed corpus of text chunks.
// Implementations must be thread-safe and support concurrent access.
//
// Chunks are content-addressed: adding a chunk whose content already exists
// is an idempotent overwrite, never a duplicate.
type ChunkRepository interface {
	// AddChunks stores one or more chunks.
	// Sets InsertedAt/UpdatedAt timestamps and validates each chunk.
	// Returns the stored chunks with timestamps populated.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// UpdateChunks replaces existing chunks, typically to attach embedding
	// vectors after asynchronous processing. Updates UpdatedAt automatically.
	// Returns ErrNotFound if any chunk doesn't exist.
	UpdateChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// GetChunks retrieves multiple chunks by their IDs.
	// Returns only the chunks that exist (no error for missing chunks).
	GetChunks(ctx context.Context, ids ...core.ID) ([]*core.Chunk, error)

	// Snapshot returns the full corpus. Used to build or refresh the
	// in-process lexical index after ingestion completes.
	Snapshot(ctx context.Context) ([]*core.Chunk, error)

	// FindSimilar finds chunks whose vectors are similar to the given vector.
	// Returns chunks with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.ChunkMatch, error)

	// CorpusVersion returns the current corpus version tag.
	// The version participates in cache fingerprints so answers computed
	// against an older corpus are never served after re-ingestion.
	CorpusVersion(ctx context.Context) (uint64, error)

	// BumpCorpusVersion increments and returns the corpus version.
	// Called when an ingestion batch completes.
	BumpCorpusVersion(ctx context.Context) (uint64, error)

	// Close closes the repository and releases resources.
	Close() error
}

// CacheStore is a durable key-value store with per-entry TTL, backing the
// result cache across process restarts.
type CacheStore interface {
	// Get returns the value for the key.
	// Returns ErrNotFound when the key is absent or its TTL has elapsed.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the value under the key with the given TTL.
	// A zero TTL stores the value without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close closes the store and releases resources.
	Close() error
}
