package cache

import (
	"testing"
	"time"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/stretchr/testify/assert"
)

func TestTTLPolicy_CategoryLifetimes(t *testing.T) {
	policy := DefaultTTLPolicy()

	assert.Equal(t, time.Hour, policy.TTLFor(core.CategoryVolatile))
	assert.Equal(t, 24*time.Hour, policy.TTLFor(core.CategoryStable))
}

func TestTTLPolicy_UnknownCategoryGetsVolatileTTL(t *testing.T) {
	policy := DefaultTTLPolicy()
	assert.Equal(t, policy.Volatile, policy.TTLFor(core.Category(0)))
}
