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

package retrieval

import (
	"sort"

	"github.com/ReesavGupta/ragxragas/core"
)

// Merger fuses dense and sparse candidate lists into one ranked list.
//
// The two score streams are normalized independently into [0, 1] before
// weighting; raw dense similarity and raw BM25 scores are never compared
// directly. Normalization divides by the stream maximum (shifting first if
// any score is negative), which keeps the best hit of each stream at 1 while
// preserving relative gaps, so a strong second hit on one side can outrank a
// lone top hit on the other.
type Merger struct {
	denseWeight  float64
	sparseWeight float64
}

// MergerOption configures a Merger.
type MergerOption func(*Merger)

// WithWeights sets the relative weight of each side. Weights are used as
// given; callers that want a convex combination should pass weights summing
// to 1.
func WithWeights(dense, sparse float64) MergerOption {
	return func(m *Merger) {
		m.denseWeight = dense
		m.sparseWeight = sparse
	}
}

// NewMerger creates a merger with equal weights unless overridden.
func NewMerger(opts ...MergerOption) *Merger {
	m := &Merger{denseWeight: 0.5, sparseWeight: 0.5}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// normalizeScale returns shift and scale so that (score+shift)*scale maps the
// stream into [0, 1]. A stream of all-equal scores maps to all ones.
func normalizeScale(scores []float64) (shift, scale float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	min, max := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	if min < 0 {
		shift = -min
		max += shift
	}
	if max > 0 {
		scale = 1 / max
	}
	return shift, scale
}

// Merge fuses the two candidate lists, deduplicates by chunk ID, and returns
// the top limit candidates by combined score. A chunk found by both sides
// gets both normalized contributions; a chunk found by one side contributes
// zero for the missing side.
//
// Equal combined scores rank in first-seen order, dense list first, so the
// output is deterministic for identical inputs.
func (m *Merger) Merge(dense, sparse []core.ScoredCandidate, limit int) []core.ScoredCandidate {
	if limit <= 0 {
		return nil
	}

	denseScores := make([]float64, len(dense))
	for i, c := range dense {
		denseScores[i] = c.DenseScore
	}
	sparseScores := make([]float64, len(sparse))
	for i, c := range sparse {
		sparseScores[i] = c.SparseScore
	}
	denseShift, denseScale := normalizeScale(denseScores)
	sparseShift, sparseScale := normalizeScale(sparseScores)

	merged := make([]core.ScoredCandidate, 0, len(dense)+len(sparse))
	index := make(map[core.ID]int, len(dense)+len(sparse))

	for _, c := range dense {
		normalized := (c.DenseScore + denseShift) * denseScale
		c.CombinedScore = m.denseWeight * normalized
		index[c.ChunkId] = len(merged)
		merged = append(merged, c)
	}

	for _, c := range sparse {
		normalized := (c.SparseScore + sparseShift) * sparseScale
		if i, seen := index[c.ChunkId]; seen {
			merged[i].SparseScore = c.SparseScore
			merged[i].HasSparse = true
			merged[i].CombinedScore += m.sparseWeight * normalized
			continue
		}
		c.CombinedScore = m.sparseWeight * normalized
		index[c.ChunkId] = len(merged)
		merged = append(merged, c)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CombinedScore > merged[j].CombinedScore
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}

	// Until a reranker runs, the combined score is the final signal.
	for i := range merged {
		merged[i].RerankScore = merged[i].CombinedScore
	}
	return merged
}
