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

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/ReesavGupta/ragxragas/storage"
	"golang.org/x/sync/singleflight"
)

// Entry is the stored form of a cached result. StoredAt and TTLSeconds carry
// the logical expiry alongside the backend's own TTL.
type Entry struct {
	Fingerprint string                `json:"fingerprint"`
	StoredAt    time.Time             `json:"stored_at"`
	TTLSeconds  int64                 `json:"ttl_seconds"`
	Result      *core.RetrievalResult `json:"result"`
}

// ComputeFunc produces the result for a cache miss.
type ComputeFunc func(ctx context.Context) (*core.RetrievalResult, error)

// ResultCache caches computed retrieval results keyed by request fingerprint.
//
// Concurrent misses for the same fingerprint are collapsed: exactly one
// compute runs and every waiter shares its result. The shared computation is
// detached from the first caller's context, so one client disconnecting does
// not abandon work other clients are waiting on.
type ResultCache struct {
	store  storage.CacheStore
	policy TTLPolicy
	group  singleflight.Group
	now    func() time.Time
	logger *slog.Logger
}

// ResultCacheOption configures a ResultCache.
type ResultCacheOption func(*ResultCache)

// WithTTLPolicy overrides the category lifetimes.
func WithTTLPolicy(policy TTLPolicy) ResultCacheOption {
	return func(c *ResultCache) { c.policy = policy }
}

// WithClock overrides the time source used for logical expiry.
func WithClock(now func() time.Time) ResultCacheOption {
	return func(c *ResultCache) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ResultCacheOption {
	return func(c *ResultCache) { c.logger = logger.With("component", "result-cache") }
}

// NewResultCache creates a result cache over the given store.
func NewResultCache(store storage.CacheStore, opts ...ResultCacheOption) (*ResultCache, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	c := &ResultCache{
		store:  store,
		policy: DefaultTTLPolicy(),
		now:    time.Now,
		logger: slog.Default().With("component", "result-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetOrCompute returns the cached result for the fingerprint, or runs compute
// on a miss and caches what it produced. The boolean reports whether the
// result came from the cache.
//
// Store failures never fail the request: a broken lookup degrades to a miss
// and a broken write is logged and dropped. Only compute itself can return an
// error.
func (c *ResultCache) GetOrCompute(ctx context.Context, fingerprint string, category core.Category, compute ComputeFunc) (*core.RetrievalResult, bool, error) {
	if result := c.lookup(ctx, fingerprint); result != nil {
		return result, true, nil
	}

	value, err, _ := c.group.Do(fingerprint, func() (any, error) {
		// Re-check under the group: a waiter queued behind the first miss may
		// arrive after the computed entry has already been written.
		if result := c.lookup(ctx, fingerprint); result != nil {
			return result, nil
		}

		// Detached so a disconnecting caller can't cancel work shared with
		// other waiters.
		computeCtx := context.WithoutCancel(ctx)

		result, err := compute(computeCtx)
		if err != nil {
			return nil, err
		}
		c.put(computeCtx, fingerprint, category, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	return value.(*core.RetrievalResult), false, nil
}

// Invalidate removes the logical validity of an entry by overwriting it with
// an already-expired one. Used sparingly; normal invalidation happens through
// corpus version bumps changing the fingerprint.
func (c *ResultCache) Invalidate(ctx context.Context, fingerprint string) error {
	entry := Entry{
		Fingerprint: fingerprint,
		StoredAt:    c.now().Add(-time.Second),
		TTLSeconds:  0,
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, fingerprint, payload, time.Second)
}

// lookup returns the cached result or nil on miss, expiry, or store failure.
func (c *ResultCache) lookup(ctx context.Context, fingerprint string) *core.RetrievalResult {
	payload, err := c.store.Get(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("cache lookup failed, recomputing", "error", err)
		}
		return nil
	}

	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		c.logger.Warn("discarding undecodable cache entry", "fingerprint", fingerprint, "error", err)
		return nil
	}
	if entry.Fingerprint != fingerprint || entry.Result == nil {
		return nil
	}

	expiry := entry.StoredAt.Add(time.Duration(entry.TTLSeconds) * time.Second)
	if !c.now().Before(expiry) {
		return nil
	}
	return entry.Result
}

// put writes the computed result. Failures are logged and swallowed.
func (c *ResultCache) put(ctx context.Context, fingerprint string, category core.Category, result *core.RetrievalResult) {
	ttl := c.policy.TTLFor(category)
	entry := Entry{
		Fingerprint: fingerprint,
		StoredAt:    c.now(),
		TTLSeconds:  int64(ttl / time.Second),
		Result:      result,
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("cache entry not serializable", "fingerprint", fingerprint, "error", err)
		return
	}
	if err := c.store.Set(ctx, fingerprint, payload, ttl); err != nil {
		c.logger.Warn("cache write failed", "fingerprint", fingerprint, "error", err)
	}
}
