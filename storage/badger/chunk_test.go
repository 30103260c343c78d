package badger

import (
	"context"
	"testing"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/ReesavGupta/ragxragas/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (storage.ChunkRepository, *Backend) {
	t.Helper()
	chunkRepo, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		chunkRepo.Close()
		backend.Close()
	})
	return chunkRepo, backend
}

func TestAddAndGetChunks(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	chunks := []*core.Chunk{
		{Content: "tesla reported record deliveries", Metadata: map[string]string{"doc": "q3.pdf"}},
		{Content: "apple announced a new chip"},
	}

	added, err := repo.AddChunks(ctx, chunks...)
	require.NoError(t, err)
	require.Len(t, added, 2)

	for _, chunk := range added {
		assert.NotEqual(t, core.ID(0), chunk.Id)
		assert.False(t, chunk.InsertedAt.IsZero())
	}

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetChunk(ctx, added[0].Id)
		require.NoError(t, err)
		assert.Equal(t, "tesla reported record deliveries", got.Content)
		assert.Equal(t, "q3.pdf", got.Metadata["doc"])
	})

	t.Run("content addressing is deterministic", func(t *testing.T) {
		assert.Equal(t, core.IDFromContent("apple announced a new chip"), added[1].Id)
	})

	t.Run("missing chunk returns ErrNotFound", func(t *testing.T) {
		_, err := repo.GetChunk(ctx, core.ID(12345))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("get many skips missing", func(t *testing.T) {
		got, err := repo.GetChunks(ctx, added[0].Id, core.ID(99999), added[1].Id)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestAddChunks_Validation(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.AddChunks(context.Background(), &core.Chunk{Content: "   "})
	assert.ErrorIs(t, err, core.ErrInvalidChunk)
}

func TestUpdateChunks(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddChunks(ctx, &core.Chunk{Content: "net income rose"})
	require.NoError(t, err)

	t.Run("attach vector", func(t *testing.T) {
		added[0].Vector = []float32{0.1, 0.2, 0.3}
		_, err := repo.UpdateChunks(ctx, added[0])
		require.NoError(t, err)

		got, err := repo.GetChunk(ctx, added[0].Id)
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, got.Vector)
	})

	t.Run("unknown chunk", func(t *testing.T) {
		_, err := repo.UpdateChunks(ctx, &core.Chunk{Id: 424242, Content: "nope"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestSnapshot(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	t.Run("empty corpus", func(t *testing.T) {
		chunks, err := repo.Snapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	_, err := repo.AddChunks(ctx,
		&core.Chunk{Content: "alpha"},
		&core.Chunk{Content: "beta"},
		&core.Chunk{Content: "gamma"},
	)
	require.NoError(t, err)

	chunks, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, chunks, 3)
}

func TestFindSimilar(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	chunks := []*core.Chunk{
		{Content: "about ai", Vector: []float32{0.9, 0.1, 0.0}},
		{Content: "about ml", Vector: []float32{0.85, 0.15, 0.0}},
		{Content: "about cooking", Vector: []float32{0.1, 0.1, 0.8}},
		{Content: "not embedded yet"},
	}
	_, err := repo.AddChunks(ctx, chunks...)
	require.NoError(t, err)

	matches, err := repo.FindSimilar(ctx, []float32{0.88, 0.12, 0.0}, 0.60, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Sorted by similarity descending
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)

	t.Run("limit applied", func(t *testing.T) {
		matches, err := repo.FindSimilar(ctx, []float32{0.88, 0.12, 0.0}, 0.0, 1)
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})
}

func TestCorpusVersion(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	version, err := repo.CorpusVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), version)

	v1, err := repo.BumpCorpusVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v1)

	v2, err := repo.BumpCorpusVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v2)

	version, err = repo.CorpusVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
}
