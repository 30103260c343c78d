package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/ReesavGupta/ragxragas/core"
)

// Recency markers that flag a query as volatile in the default rule set.
var volatileMarkers = []string{
	"current", "latest", "today", "now", "live", "price", "recent", "breaking",
}

// MockClassifier is a test double for ai.QueryClassifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, uses a deterministic keyword rule set.
	ClassifyFunc func(ctx context.Context, query string) (core.Category, error)

	mu        sync.Mutex
	callCount int
}

// NewMockClassifier creates a mock classifier with default rule-based behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify labels queries containing recency markers as volatile and
// everything else as stable.
func (m *MockClassifier) Classify(ctx context.Context, query string) (core.Category, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, query)
	}

	lower := strings.ToLower(query)
	for _, marker := range volatileMarkers {
		if strings.Contains(lower, marker) {
			return core.CategoryVolatile, nil
		}
	}
	return core.CategoryStable, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockClassifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ClassifyFunc = nil
}
