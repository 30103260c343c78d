package retrieval

import (
	"testing"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rerankedCandidates(scores ...float64) []core.ScoredCandidate {
	candidates := make([]core.ScoredCandidate, len(scores))
	for i, score := range scores {
		candidates[i] = core.ScoredCandidate{ChunkId: core.ID(i + 1), RerankScore: score}
	}
	return candidates
}

func TestCompressor_KeepsBestAboveThreshold(t *testing.T) {
	compressor := NewCompressor(2, 0.3)

	kept := compressor.Compress(rerankedCandidates(0.2, 0.9, 0.5, 0.7))

	require.Len(t, kept, 2)
	assert.Equal(t, core.ID(2), kept[0].ChunkId) // 0.9
	assert.Equal(t, core.ID(4), kept[1].ChunkId) // 0.7
}

func TestCompressor_ThresholdAboveAllYieldsEmpty(t *testing.T) {
	compressor := NewCompressor(5, 0.95)

	kept := compressor.Compress(rerankedCandidates(0.1, 0.5, 0.9))

	assert.Empty(t, kept)
}

func TestCompressor_Idempotent(t *testing.T) {
	compressor := NewCompressor(3, 0.2)

	once := compressor.Compress(rerankedCandidates(0.9, 0.1, 0.5, 0.6, 0.3))
	twice := compressor.Compress(once)

	assert.Equal(t, once, twice)
}

func TestCompressor_EmptyInput(t *testing.T) {
	compressor := NewCompressor(3, 0.2)
	assert.Empty(t, compressor.Compress(nil))
}

func TestCompressor_ZeroMaxKeepsAllAboveThreshold(t *testing.T) {
	compressor := NewCompressor(0, 0.2)

	kept := compressor.Compress(rerankedCandidates(0.9, 0.5, 0.3, 0.1))

	assert.Len(t, kept, 3)
}
