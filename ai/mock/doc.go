// Package mock provides test double implementations of the ai interfaces.
//
// This package contains mock implementations of ai.Embedder,
// ai.QueryClassifier, ai.RelevanceScorer, and ai.Provider for use in unit
// tests. The mocks allow tests to run without external AI services and
// enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	vec, err := provider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	scorer := mock.NewMockScorer()
//	scorer.ScoreFunc = func(ctx context.Context, query, passage string) (float64, error) {
//	    return 0.9, nil
//	}
//
// # Default Behavior
//
//   - MockEmbedder: deterministic vectors derived from a text hash
//   - MockClassifier: rule-based volatility detection on recency keywords
//   - MockScorer: query/passage token overlap ratio
package mock
