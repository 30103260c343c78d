package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ReesavGupta/ragxragas/ai/mock"
	"github.com/ReesavGupta/ragxragas/core"
	"github.com/ReesavGupta/ragxragas/storage"
	badgerstore "github.com/ReesavGupta/ragxragas/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.ChunkRepository {
	t.Helper()
	repo, _, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func seedChunk(t *testing.T, repo storage.ChunkRepository, content string, vector []float32) core.ID {
	t.Helper()
	stored, err := repo.AddChunks(context.Background(), &core.Chunk{
		Content: content,
		Vector:  vector,
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	return stored[0].Id
}

func TestDenseIndex_RanksBySimilarity(t *testing.T) {
	repo := newTestRepo(t)
	aligned := seedChunk(t, repo, "aligned with the query", []float32{1, 0})
	seedChunk(t, repo, "orthogonal to the query", []float32{0, 1})

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	index, err := NewDenseIndex(embedder, repo)
	require.NoError(t, err)

	results, err := index.Search(context.Background(), "query", 10)
	require.NoError(t, err)
	require.Len(t, results, 1) // orthogonal chunk falls below the similarity cutoff

	assert.Equal(t, aligned, results[0].ChunkId)
	assert.True(t, results[0].HasDense)
	assert.InDelta(t, 1.0, results[0].DenseScore, 1e-6)
}

func TestDenseIndex_SkipsChunksWithoutVectors(t *testing.T) {
	repo := newTestRepo(t)
	seedChunk(t, repo, "embedding still pending", nil)
	embedded := seedChunk(t, repo, "already embedded", []float32{1, 0})

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	index, err := NewDenseIndex(embedder, repo)
	require.NoError(t, err)

	results, err := index.Search(context.Background(), "query", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, embedded, results[0].ChunkId)
}

func TestDenseIndex_RetriesTransientEmbedFailure(t *testing.T) {
	repo := newTestRepo(t)
	seedChunk(t, repo, "some content", []float32{1, 0})

	embedder := mock.NewMockEmbedder()
	calls := 0
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection refused")
		}
		return []float32{1, 0}, nil
	}

	index, err := NewDenseIndex(embedder, repo, WithEmbedRetry(3, time.Millisecond))
	require.NoError(t, err)

	results, err := index.Search(context.Background(), "query", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 3, calls)
}

func TestDenseIndex_ExhaustedRetriesSurfaceUpstreamError(t *testing.T) {
	repo := newTestRepo(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("connection refused")
	}

	index, err := NewDenseIndex(embedder, repo, WithEmbedRetry(2, time.Millisecond))
	require.NoError(t, err)

	_, err = index.Search(context.Background(), "query", 10)
	assert.ErrorIs(t, err, core.ErrUpstreamUnavailable)
}

func TestDenseIndex_RateLimitClassified(t *testing.T) {
	repo := newTestRepo(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("unexpected status 429 Too Many Requests")
	}

	index, err := NewDenseIndex(embedder, repo, WithEmbedRetry(1, time.Millisecond))
	require.NoError(t, err)

	_, err = index.Search(context.Background(), "query", 10)
	assert.ErrorIs(t, err, core.ErrRateLimited)
}

func TestDenseIndex_RequiresDependencies(t *testing.T) {
	repo := newTestRepo(t)

	_, err := NewDenseIndex(nil, repo)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewDenseIndex(mock.NewMockEmbedder(), nil)
	assert.ErrorIs(t, err, ErrChunkRepositoryRequired)
}
