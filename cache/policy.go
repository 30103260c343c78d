package cache

import (
	"time"

	"github.com/ReesavGupta/ragxragas/core"
)

// Default TTLs per freshness category.
const (
	DefaultVolatileTTL = time.Hour
	DefaultStableTTL   = 24 * time.Hour
)

// TTLPolicy maps a query's freshness category to a cache lifetime.
type TTLPolicy struct {
	Volatile time.Duration
	Stable   time.Duration
}

// DefaultTTLPolicy returns the standard category lifetimes.
func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Volatile: DefaultVolatileTTL,
		Stable:   DefaultStableTTL,
	}
}

// TTLFor returns the lifetime for the category. Unknown categories get the
// volatile lifetime; over-caching a fresh answer is worse than under-caching
// a settled one.
func (p TTLPolicy) TTLFor(category core.Category) time.Duration {
	if category == core.CategoryStable {
		return p.Stable
	}
	return p.Volatile
}
