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

// Package redis implements storage.CacheStore on Redis, so cached retrieval
// results can be shared across processes and survive restarts independently
// of the embedded chunk store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/ReesavGupta/ragxragas/storage"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rescache:"

// CacheStore implements storage.CacheStore on a Redis server.
type CacheStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ storage.CacheStore = (*CacheStore)(nil)

// NewCacheStore connects to the Redis server at addr (host:port) and
// verifies the connection with a ping.
func NewCacheStore(ctx context.Context, addr string) (*CacheStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewCacheStoreFromClient(client), nil
}

// NewCacheStoreFromClient wraps an existing client. The caller keeps
// ownership of client configuration; Close closes the client.
func NewCacheStoreFromClient(client *redis.Client) *CacheStore {
	return &CacheStore{
		client: client,
		logger: slog.Default().With("component", "redis-cache"),
	}
}

// Get returns the cached value for the key.
// Returns storage.ErrNotFound when the key is absent or its TTL has elapsed.
func (s *CacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", core.ErrCacheUnavailable, err)
	}
	return value, nil
}

// Set stores the value under the key with the given TTL.
// A zero TTL stores the value without expiry.
func (s *CacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrCacheUnavailable, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *CacheStore) Close() error {
	return s.client.Close()
}
