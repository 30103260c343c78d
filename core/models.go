package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing so the same text always maps to
// the same ID across dense and sparse indexes.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chunk is an immutable unit of retrievable text. Chunks are created at
// ingestion time, never mutated, and removed only by a corpus rebuild.
type Chunk struct {
	Id         ID                `json:"id"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"` // origin document, position, etc.
	Vector     []float32         `json:"vector,omitempty"`   // embedding, populated asynchronously after ingestion
	InsertedAt time.Time         `json:"inserted_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ChunkMatch is a chunk returned from vector similarity search with its score.
type ChunkMatch struct {
	Chunk *Chunk
	Score float32
}

// ScoredCandidate is a transient retrieval candidate carrying the score from
// each retrieval stage it passed through. It is produced by the merger and
// annotated by the reranker; it is never persisted except inside a cached
// result payload.
type ScoredCandidate struct {
	ChunkId  ID                `json:"chunk_id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`

	// DenseScore and SparseScore are the raw first-stage scores. A candidate
	// found by only one retrieval side has the other flag unset.
	DenseScore  float64 `json:"dense_score,omitempty"`
	HasDense    bool    `json:"has_dense,omitempty"`
	SparseScore float64 `json:"sparse_score,omitempty"`
	HasSparse   bool    `json:"has_sparse,omitempty"`

	// CombinedScore is the normalized weighted fusion of both sides.
	CombinedScore float64 `json:"combined_score"`

	// RerankScore is the second-stage cross-scoring result. When reranking is
	// disabled it carries the combined score unchanged.
	RerankScore float64 `json:"rerank_score"`
}

// Category classifies a query's freshness sensitivity. It drives cache TTL
// selection: answers to volatile queries go stale faster than answers about
// settled facts.
type Category int

const (
	// CategoryVolatile marks queries about rapidly-changing facts.
	CategoryVolatile Category = iota + 1
	// CategoryStable marks queries about settled, slow-moving facts.
	CategoryStable
)

// String returns the canonical lowercase label for the category.
// The label participates in request fingerprints, so it must stay stable.
func (c Category) String() string {
	switch c {
	case CategoryVolatile:
		return "volatile"
	case CategoryStable:
		return "stable"
	default:
		return "unknown"
	}
}

// Outcome tags a retrieval result so callers can tell a clean result from a
// degraded or deliberately empty one without inspecting errors.
type Outcome string

const (
	// OutcomeOK means the full pipeline ran and produced candidates.
	OutcomeOK Outcome = "ok"
	// OutcomeNoResults means both retrieval sides ran and found nothing.
	// This is a valid empty answer, not a failure.
	OutcomeNoResults Outcome = "no_results"
	// OutcomeNoRelevantContext means candidates existed but none cleared the
	// relevance floor. Unfiltered candidates are deliberately withheld.
	OutcomeNoRelevantContext Outcome = "no_relevant_context"
	// OutcomeDegraded means the pipeline completed on partial signal, e.g.
	// one retrieval side failed or the reranker was skipped after an error.
	OutcomeDegraded Outcome = "degraded"
)

// RetrievalResult is the computed payload for one query. It is what the
// result cache stores and what the orchestrator returns on a hit.
type RetrievalResult struct {
	Query         string            `json:"query"`
	Category      Category          `json:"category"`
	Outcome       Outcome           `json:"outcome"`
	Candidates    []ScoredCandidate `json:"candidates"`
	CorpusVersion uint64            `json:"corpus_version"`
}

// Answer is the surface returned to the API layer for one query.
type Answer struct {
	Result   *RetrievalResult
	CacheHit bool
	Category Category
}
