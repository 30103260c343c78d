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
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/ReesavGupta/ragxragas/core"
)

// Standard BM25 free parameters. k1 controls term-frequency saturation, b
// controls document-length normalization.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

type sparseDoc struct {
	content  string
	metadata map[string]string
	length   int // token count after stop-word filtering
	order    int // insertion order within the current build, for tie-breaking
}

// SparseIndex is an in-memory BM25 lexical index over the corpus. It is
// rebuilt atomically from a corpus snapshot; reads never observe a
// half-built index.
type SparseIndex struct {
	mu       sync.RWMutex
	docs     map[core.ID]*sparseDoc
	postings map[string]map[core.ID]int // term -> doc -> term frequency
	totalLen int

	logger *slog.Logger
}

// NewSparseIndex creates an empty index. Call Rebuild to populate it.
func NewSparseIndex() *SparseIndex {
	return &SparseIndex{
		docs:     make(map[core.ID]*sparseDoc),
		postings: make(map[string]map[core.ID]int),
		logger:   slog.Default().With("component", "sparse-index"),
	}
}

// Rebuild replaces the index contents with the given corpus snapshot.
// The swap is atomic under the write lock, so concurrent searches see either
// the old corpus or the new one, never a mix.
func (s *SparseIndex) Rebuild(chunks []*core.Chunk) {
	docs := make(map[core.ID]*sparseDoc, len(chunks))
	postings := make(map[string]map[core.ID]int)
	totalLen := 0

	for i, chunk := range chunks {
		tokens := tokenize(chunk.Content)
		docs[chunk.Id] = &sparseDoc{
			content:  chunk.Content,
			metadata: chunk.Metadata,
			length:   len(tokens),
			order:    i,
		}
		totalLen += len(tokens)

		for _, token := range tokens {
			if postings[token] == nil {
				postings[token] = make(map[core.ID]int)
			}
			postings[token][chunk.Id]++
		}
	}

	s.mu.Lock()
	s.docs = docs
	s.postings = postings
	s.totalLen = totalLen
	s.mu.Unlock()

	s.logger.Info("sparse index rebuilt", "documents", len(docs), "terms", len(postings))
}

// Len returns the number of indexed documents.
func (s *SparseIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Search ranks indexed documents against the query with BM25 and returns up
// to limit candidates, best first. An empty result is a valid answer: it
// means no document shares a term with the query.
func (s *SparseIndex) Search(ctx context.Context, query string, limit int) ([]core.ScoredCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	terms := tokenize(query)
	if len(terms) == 0 || limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.docs)
	if n == 0 {
		return nil, nil
	}
	avgLen := float64(s.totalLen) / float64(n)

	scores := make(map[core.ID]float64)
	for _, term := range terms {
		posting := s.postings[term]
		if len(posting) == 0 {
			continue
		}
		// Smoothed IDF; stays positive even for terms present in most docs.
		idf := math.Log(1 + (float64(n)-float64(len(posting))+0.5)/(float64(len(posting))+0.5))

		for id, tf := range posting {
			doc := s.docs[id]
			norm := 1 - bm25B + bm25B*float64(doc.length)/avgLen
			scores[id] += idf * float64(tf) * (bm25K1 + 1) / (float64(tf) + bm25K1*norm)
		}
	}

	if len(scores) == 0 {
		return nil, nil
	}

	candidates := make([]core.ScoredCandidate, 0, len(scores))
	for id, score := range scores {
		doc := s.docs[id]
		candidates = append(candidates, core.ScoredCandidate{
			ChunkId:     id,
			Content:     doc.content,
			Metadata:    doc.metadata,
			SparseScore: score,
			HasSparse:   true,
		})
	}

	// Tie-break on build order so rankings are deterministic despite map
	// iteration.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].SparseScore != candidates[j].SparseScore {
			return candidates[i].SparseScore > candidates[j].SparseScore
		}
		return s.docs[candidates[i].ChunkId].order < s.docs[candidates[j].ChunkId].order
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
