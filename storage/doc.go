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

// Package storage defines the persistence interfaces behind the retrieval
// engine: the chunk repository (the authoritative corpus, with vector
// similarity search and a monotonic corpus version) and the cache store
// (a TTL'd key-value store backing the result cache).
//
// Implementation sub-packages:
//
//   - storage/badger: embedded BadgerDB backend for chunks and cache entries
//   - storage/redis: Redis cache store for sharing cached results across
//     processes
//
// The chunk repository owns Chunk lifecycle; the cache store owns only
// computed result payloads and never touches chunk data.
package storage
