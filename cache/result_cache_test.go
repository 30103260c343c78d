package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/ReesavGupta/ragxragas/storage"
	badgerstore "github.com/ReesavGupta/ragxragas/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a mutable time source for logical-expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("store unavailable")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store unavailable")
}

func (failingStore) Close() error { return nil }

func newTestCache(t *testing.T, opts ...ResultCacheOption) *ResultCache {
	t.Helper()
	_, store, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	rc, err := NewResultCache(store, opts...)
	require.NoError(t, err)
	return rc
}

func testResult(query string) *core.RetrievalResult {
	return &core.RetrievalResult{
		Query:    query,
		Category: core.CategoryStable,
		Outcome:  core.OutcomeOK,
		Candidates: []core.ScoredCandidate{
			{ChunkId: 1, Content: "some context", CombinedScore: 0.8, RerankScore: 0.8},
		},
		CorpusVersion: 1,
	}
}

func TestResultCache_MissThenHit(t *testing.T) {
	rc := newTestCache(t)
	ctx := context.Background()
	fp := Fingerprint("what is badgerdb", core.CategoryStable, 5, 1)

	computeCount := 0
	compute := func(ctx context.Context) (*core.RetrievalResult, error) {
		computeCount++
		return testResult("what is badgerdb"), nil
	}

	result, hit, err := rc.GetOrCompute(ctx, fp, core.CategoryStable, compute)
	require.NoError(t, err)
	assert.False(t, hit)
	require.NotNil(t, result)

	cached, hit, err := rc.GetOrCompute(ctx, fp, core.CategoryStable, compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, result.Query, cached.Query)
	assert.Equal(t, result.Candidates, cached.Candidates)
	assert.Equal(t, 1, computeCount)
}

func TestResultCache_ConcurrentMissesComputeOnce(t *testing.T) {
	rc := newTestCache(t)
	fp := Fingerprint("popular query", core.CategoryVolatile, 5, 1)

	var computeCount atomic.Int64
	compute := func(ctx context.Context) (*core.RetrievalResult, error) {
		computeCount.Add(1)
		time.Sleep(50 * time.Millisecond)
		return testResult("popular query"), nil
	}

	const callers = 16
	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(callers)
	results := make([]*core.RetrievalResult, callers)

	for i := 0; i < callers; i++ {
		i := i
		go func() {
			defer done.Done()
			start.Wait()
			result, _, err := rc.GetOrCompute(context.Background(), fp, core.CategoryVolatile, compute)
			assert.NoError(t, err)
			results[i] = result
		}()
	}
	start.Done()
	done.Wait()

	assert.Equal(t, int64(1), computeCount.Load())
	for _, result := range results {
		require.NotNil(t, result)
		assert.Equal(t, "popular query", result.Query)
	}
}

func TestResultCache_LogicalExpiryByCategory(t *testing.T) {
	clock := newFakeClock()
	rc := newTestCache(t, WithClock(clock.Now))
	ctx := context.Background()

	volatileFp := Fingerprint("latest prices", core.CategoryVolatile, 5, 1)
	stableFp := Fingerprint("speed of light", core.CategoryStable, 5, 1)

	var volatileComputes, stableComputes int
	_, _, err := rc.GetOrCompute(ctx, volatileFp, core.CategoryVolatile, func(context.Context) (*core.RetrievalResult, error) {
		volatileComputes++
		return testResult("latest prices"), nil
	})
	require.NoError(t, err)
	_, _, err = rc.GetOrCompute(ctx, stableFp, core.CategoryStable, func(context.Context) (*core.RetrievalResult, error) {
		stableComputes++
		return testResult("speed of light"), nil
	})
	require.NoError(t, err)

	// Two hours in: past the volatile TTL, well within the stable one.
	clock.Advance(2 * time.Hour)

	_, hit, err := rc.GetOrCompute(ctx, volatileFp, core.CategoryVolatile, func(context.Context) (*core.RetrievalResult, error) {
		volatileComputes++
		return testResult("latest prices"), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, volatileComputes)

	_, hit, err = rc.GetOrCompute(ctx, stableFp, core.CategoryStable, func(context.Context) (*core.RetrievalResult, error) {
		stableComputes++
		return testResult("speed of light"), nil
	})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, stableComputes)
}

func TestResultCache_StoreFailureDegradesToCompute(t *testing.T) {
	rc, err := NewResultCache(failingStore{})
	require.NoError(t, err)

	computeCount := 0
	for i := 0; i < 2; i++ {
		result, hit, err := rc.GetOrCompute(context.Background(), "fp", core.CategoryStable, func(context.Context) (*core.RetrievalResult, error) {
			computeCount++
			return testResult("q"), nil
		})
		require.NoError(t, err)
		assert.False(t, hit)
		assert.NotNil(t, result)
	}
	assert.Equal(t, 2, computeCount)
}

func TestResultCache_ComputeErrorPropagates(t *testing.T) {
	rc := newTestCache(t)
	wantErr := errors.New("pipeline exploded")

	_, _, err := rc.GetOrCompute(context.Background(), "fp", core.CategoryStable, func(context.Context) (*core.RetrievalResult, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// A failed compute must not poison the cache.
	result, hit, err := rc.GetOrCompute(context.Background(), "fp", core.CategoryStable, func(context.Context) (*core.RetrievalResult, error) {
		return testResult("q"), nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotNil(t, result)
}

func TestResultCache_ComputeSurvivesCallerDisconnect(t *testing.T) {
	rc := newTestCache(t)
	fp := Fingerprint("detached", core.CategoryStable, 5, 1)

	ctx, cancel := context.WithCancel(context.Background())
	computed := make(chan struct{})

	compute := func(ctx context.Context) (*core.RetrievalResult, error) {
		cancel() // caller disconnects mid-computation
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		close(computed)
		return testResult("detached"), nil
	}

	result, _, err := rc.GetOrCompute(ctx, fp, core.CategoryStable, compute)
	require.NoError(t, err)
	require.NotNil(t, result)

	select {
	case <-computed:
	default:
		t.Fatal("compute context was cancelled by the caller")
	}

	// The entry made it into the cache despite the disconnect.
	_, hit, err := rc.GetOrCompute(context.Background(), fp, core.CategoryStable, func(context.Context) (*core.RetrievalResult, error) {
		t.Fatal("should have been a cache hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestResultCache_InvalidateForcesRecompute(t *testing.T) {
	rc := newTestCache(t)
	ctx := context.Background()
	fp := Fingerprint("to invalidate", core.CategoryStable, 5, 1)

	computeCount := 0
	compute := func(context.Context) (*core.RetrievalResult, error) {
		computeCount++
		return testResult("to invalidate"), nil
	}

	_, _, err := rc.GetOrCompute(ctx, fp, core.CategoryStable, compute)
	require.NoError(t, err)
	require.NoError(t, rc.Invalidate(ctx, fp))

	_, hit, err := rc.GetOrCompute(ctx, fp, core.CategoryStable, compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, computeCount)
}

func TestResultCache_RequiresStore(t *testing.T) {
	_, err := NewResultCache(nil)
	assert.ErrorIs(t, err, ErrStoreRequired)
}

var _ storage.CacheStore = failingStore{}
