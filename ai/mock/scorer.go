package mock

import (
	"context"
	"strings"
	"sync"
)

// MockScorer is a test double for ai.RelevanceScorer.
// It allows custom behavior injection via function fields.
type MockScorer struct {
	// ScoreFunc is called by Score if set.
	// If nil, uses token overlap as a deterministic relevance proxy.
	ScoreFunc func(ctx context.Context, query, passage string) (float64, error)

	mu        sync.Mutex
	callCount int
}

// NewMockScorer creates a mock scorer with default overlap-based behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockScorer() *MockScorer {
	return &MockScorer{}
}

// Score returns the fraction of query tokens present in the passage.
// The same query/passage pair always produces the same score.
func (m *MockScorer) Score(ctx context.Context, query, passage string) (float64, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, query, passage)
	}

	queryTokens := strings.Fields(strings.ToLower(query))
	if len(queryTokens) == 0 {
		return 0, nil
	}

	passageTokens := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(passage)) {
		passageTokens[tok] = true
	}

	matched := 0
	for _, tok := range queryTokens {
		if passageTokens[tok] {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens)), nil
}

// CallCount returns the number of times Score was called.
func (m *MockScorer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockScorer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ScoreFunc = nil
}
