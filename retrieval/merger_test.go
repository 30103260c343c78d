package retrieval

import (
	"testing"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func denseCandidate(id core.ID, score float64) core.ScoredCandidate {
	return core.ScoredCandidate{ChunkId: id, DenseScore: score, HasDense: true}
}

func sparseCandidate(id core.ID, score float64) core.ScoredCandidate {
	return core.ScoredCandidate{ChunkId: id, SparseScore: score, HasSparse: true}
}

func TestMerger_BothSidesOutrankLoneTopHit(t *testing.T) {
	// B appears on both sides with decent scores; it must beat A, the top
	// dense hit, and C, the weaker sparse-only hit.
	dense := []core.ScoredCandidate{denseCandidate(1, 0.9), denseCandidate(2, 0.5)}
	sparse := []core.ScoredCandidate{sparseCandidate(2, 0.8), sparseCandidate(3, 0.6)}

	merged := NewMerger().Merge(dense, sparse, 3)

	require.Len(t, merged, 3)
	assert.Equal(t, core.ID(2), merged[0].ChunkId)
	assert.Equal(t, core.ID(1), merged[1].ChunkId)
	assert.Equal(t, core.ID(3), merged[2].ChunkId)
}

func TestMerger_DeduplicatesByChunkID(t *testing.T) {
	dense := []core.ScoredCandidate{denseCandidate(7, 0.8)}
	sparse := []core.ScoredCandidate{sparseCandidate(7, 2.5)}

	merged := NewMerger().Merge(dense, sparse, 10)

	require.Len(t, merged, 1)
	assert.True(t, merged[0].HasDense)
	assert.True(t, merged[0].HasSparse)
	assert.Equal(t, 0.8, merged[0].DenseScore)
	assert.Equal(t, 2.5, merged[0].SparseScore)
}

func TestMerger_CombinedScoresBounded(t *testing.T) {
	dense := []core.ScoredCandidate{
		denseCandidate(1, 0.93), denseCandidate(2, 0.41), denseCandidate(3, 0.07),
	}
	sparse := []core.ScoredCandidate{
		sparseCandidate(2, 11.2), sparseCandidate(4, 3.4), sparseCandidate(5, 0.2),
	}

	merged := NewMerger().Merge(dense, sparse, 10)

	for _, c := range merged {
		assert.GreaterOrEqual(t, c.CombinedScore, 0.0)
		assert.LessOrEqual(t, c.CombinedScore, 1.0)
	}
}

func TestMerger_NegativeScoresShiftedIntoRange(t *testing.T) {
	dense := []core.ScoredCandidate{denseCandidate(1, -0.2), denseCandidate(2, 0.6)}

	merged := NewMerger().Merge(dense, nil, 10)

	require.Len(t, merged, 2)
	assert.Equal(t, core.ID(2), merged[0].ChunkId)
	for _, c := range merged {
		assert.GreaterOrEqual(t, c.CombinedScore, 0.0)
		assert.LessOrEqual(t, c.CombinedScore, 1.0)
	}
}

func TestMerger_OneSideEmpty(t *testing.T) {
	sparse := []core.ScoredCandidate{sparseCandidate(1, 4.0), sparseCandidate(2, 2.0)}

	merged := NewMerger().Merge(nil, sparse, 10)

	require.Len(t, merged, 2)
	assert.Equal(t, core.ID(1), merged[0].ChunkId)
	assert.False(t, merged[0].HasDense)
}

func TestMerger_BothSidesEmpty(t *testing.T) {
	merged := NewMerger().Merge(nil, nil, 10)
	assert.Empty(t, merged)
}

func TestMerger_TruncatesToLimit(t *testing.T) {
	dense := []core.ScoredCandidate{
		denseCandidate(1, 0.9), denseCandidate(2, 0.8), denseCandidate(3, 0.7),
	}

	merged := NewMerger().Merge(dense, nil, 2)

	require.Len(t, merged, 2)
	assert.Equal(t, core.ID(1), merged[0].ChunkId)
	assert.Equal(t, core.ID(2), merged[1].ChunkId)
}

func TestMerger_WeightsShiftRanking(t *testing.T) {
	dense := []core.ScoredCandidate{denseCandidate(1, 0.9)}
	sparse := []core.ScoredCandidate{sparseCandidate(2, 5.0)}

	// Both streams normalize their top hit to 1, so the weights decide.
	merged := NewMerger(WithWeights(0.9, 0.1)).Merge(dense, sparse, 2)
	require.Len(t, merged, 2)
	assert.Equal(t, core.ID(1), merged[0].ChunkId)

	merged = NewMerger(WithWeights(0.1, 0.9)).Merge(dense, sparse, 2)
	require.Len(t, merged, 2)
	assert.Equal(t, core.ID(2), merged[0].ChunkId)
}

func TestMerger_Deterministic(t *testing.T) {
	dense := []core.ScoredCandidate{denseCandidate(1, 0.5), denseCandidate(2, 0.5)}
	sparse := []core.ScoredCandidate{sparseCandidate(3, 1.0), sparseCandidate(4, 1.0)}

	first := NewMerger().Merge(dense, sparse, 10)
	for i := 0; i < 20; i++ {
		again := NewMerger().Merge(dense, sparse, 10)
		assert.Equal(t, first, again)
	}
}

func TestMerger_RerankScoreMirrorsCombined(t *testing.T) {
	dense := []core.ScoredCandidate{denseCandidate(1, 0.9), denseCandidate(2, 0.3)}

	merged := NewMerger().Merge(dense, nil, 10)

	for _, c := range merged {
		assert.Equal(t, c.CombinedScore, c.RerankScore)
	}
}
