package retrieval

import (
	"sort"

	"github.com/ReesavGupta/ragxragas/core"
)

// Compressor bounds the final candidate set: it keeps at most maxCandidates
// of the best-scoring candidates whose rerank score clears the relevance
// threshold. Compressing an already-compressed list is a no-op.
type Compressor struct {
	maxCandidates int
	threshold     float64
}

// NewCompressor creates a compressor keeping at most maxCandidates candidates
// scoring above threshold.
func NewCompressor(maxCandidates int, threshold float64) *Compressor {
	return &Compressor{maxCandidates: maxCandidates, threshold: threshold}
}

// Compress filters and truncates the candidate list. An empty result means
// nothing cleared the threshold; callers surface that as a deliberate
// "no relevant context" answer rather than falling back to the unfiltered
// list.
func (c *Compressor) Compress(candidates []core.ScoredCandidate) []core.ScoredCandidate {
	kept := make([]core.ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.RerankScore > c.threshold {
			kept = append(kept, candidate)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].RerankScore > kept[j].RerankScore
	})

	if c.maxCandidates > 0 && len(kept) > c.maxCandidates {
		kept = kept[:c.maxCandidates]
	}
	return kept
}
