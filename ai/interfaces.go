package ai

import (
	"context"

	"github.com/ReesavGupta/ragxragas/core"
)

// Embedder generates vector embeddings from text for dense similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// QueryClassifier assigns a freshness category to a query. The category
// selects the cache TTL: volatile queries are cached briefly, stable ones
// for much longer.
// Implementations must be thread-safe for concurrent use.
type QueryClassifier interface {
	// Classify returns the freshness category for the query text.
	// Implementations that cannot confidently parse a classification should
	// return CategoryVolatile rather than an error; errors are reserved for
	// transport failures. Callers treat any error as "use the shortest TTL"
	// and never fail the request over it.
	Classify(ctx context.Context, query string) (core.Category, error)
}

// RelevanceScorer scores a passage against the literal query text.
// Unlike first-stage encoders, which score query and passage independently,
// a scorer receives both jointly (cross-encoder style) and is therefore the
// most expensive per-candidate operation in the pipeline. Callers must bound
// input size.
// Implementations must be thread-safe for concurrent use.
type RelevanceScorer interface {
	// Score returns a relevance score in [0, 1] for the passage given the query.
	Score(ctx context.Context, query, passage string) (float64, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages its services, ensuring they
// share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Classifier returns the query classification service.
	// The returned QueryClassifier is safe for concurrent use.
	Classifier() QueryClassifier

	// Scorer returns the pairwise relevance scoring service.
	// The returned RelevanceScorer is safe for concurrent use.
	Scorer() RelevanceScorer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
