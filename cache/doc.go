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

// Package cache implements the content-addressed result cache.
//
// Every retrieval request maps to a fingerprint over its canonical query,
// freshness category, result budget, and the corpus version it would run
// against. Two requests with the same fingerprint are the same computation,
// so concurrent misses for one fingerprint collapse into a single pipeline
// run and cached answers from before a re-ingestion can never be served
// afterwards (the bumped corpus version changes every fingerprint).
//
// TTLs come from the query's freshness category: answers to volatile queries
// expire quickly, answers about settled facts live much longer. Expiry is
// enforced twice: by the backing store's own TTL and by a logical check
// against the entry's stored-at timestamp, which keeps expiry exact on
// backends with coarse TTL granularity and makes it testable with a fake
// clock.
//
// The cache is an accelerator, never a gate: when the backing store fails,
// lookups degrade to recomputation and store failures are logged and
// swallowed.
package cache
