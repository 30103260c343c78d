package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/ReesavGupta/ragxragas/storage"
	badgerstore "github.com/ReesavGupta/ragxragas/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededRepo(t *testing.T, chunkCount int) storage.ChunkRepository {
	t.Helper()

	repo, _, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	chunks := make([]*core.Chunk, chunkCount)
	for i := range chunks {
		chunks[i] = &core.Chunk{Content: fmt.Sprintf("chunk number %d", i)}
	}
	if chunkCount > 0 {
		_, err = repo.AddChunks(context.Background(), chunks...)
		require.NoError(t, err)
	}
	return repo
}

func TestChunkIterator_VisitsEveryChunkOnce(t *testing.T) {
	repo := newSeededRepo(t, 25)
	iterator := NewChunkIterator(repo, 10)

	seen := make(map[core.ID]int)
	batches := 0
	err := iterator.ForEach(context.Background(), func(chunks []*core.Chunk) error {
		batches++
		assert.LessOrEqual(t, len(chunks), 10)
		for _, chunk := range chunks {
			seen[chunk.Id]++
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, batches)
	assert.Len(t, seen, 25)
	for _, count := range seen {
		assert.Equal(t, 1, count)
	}
}

func TestChunkIterator_EmptyCorpus(t *testing.T) {
	repo := newSeededRepo(t, 0)
	iterator := NewChunkIterator(repo, 10)

	calls := 0
	err := iterator.ForEach(context.Background(), func([]*core.Chunk) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestChunkIterator_StopsOnCallbackError(t *testing.T) {
	repo := newSeededRepo(t, 25)
	iterator := NewChunkIterator(repo, 10)

	wantErr := errors.New("stop here")
	calls := 0
	err := iterator.ForEach(context.Background(), func([]*core.Chunk) error {
		calls++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestChunkIterator_HonorsCancelledContext(t *testing.T) {
	repo := newSeededRepo(t, 5)
	iterator := NewChunkIterator(repo, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := iterator.ForEach(ctx, func([]*core.Chunk) error {
		t.Fatal("callback should not run with a cancelled context")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChunkIterator_DefaultsBatchSize(t *testing.T) {
	repo := newSeededRepo(t, 1)
	iterator := NewChunkIterator(repo, 0)
	assert.Equal(t, DefaultBatchSize, iterator.batchSize)
}
