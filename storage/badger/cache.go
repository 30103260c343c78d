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

package badger

import (
	"context"
	"time"

	"github.com/ReesavGupta/ragxragas/storage"
	"github.com/dgraph-io/badger/v4"
)

// CacheStore implements storage.CacheStore on BadgerDB using native entry
// TTLs. Expired entries are invisible to readers and reclaimed by badger's
// value log GC.
type CacheStore struct {
	backend *Backend
}

var _ storage.CacheStore = (*CacheStore)(nil)

// NewCacheStore creates a cache store on the given backend.
func NewCacheStore(backend *Backend) *CacheStore {
	return &CacheStore{backend: backend}
}

// Get returns the cached value for the key.
// Returns storage.ErrNotFound when the key is absent or its TTL has elapsed.
func (s *CacheStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCacheKey(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	}, false)

	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores the value under the key with the given TTL.
// A zero TTL stores the value without expiry.
func (s *CacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeCacheKey(key), value)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		if err := tx.SetEntry(entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close releases store resources. The underlying backend is shared and
// closed by its owner.
func (s *CacheStore) Close() error {
	return nil
}
