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

package core

import "errors"

// Failure taxonomy shared across the retrieval pipeline.
var (
	// ErrUpstreamUnavailable indicates an embedding, vector-search, or LLM
	// call failed after retries were exhausted.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrRateLimited indicates an upstream rejected the call due to rate
	// limiting. Distinguished from ErrUpstreamUnavailable so callers can
	// back off longer and surface a "try again later" response.
	ErrRateLimited = errors.New("upstream rate limited")

	// ErrCacheUnavailable indicates the result cache store could not be
	// reached. The cache is an optimization: callers degrade to direct
	// computation instead of failing the request.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrClassificationFailed indicates the query classifier failed or timed
	// out. Callers fall back to the most conservative TTL category.
	ErrClassificationFailed = errors.New("query classification failed")
)

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyQuery indicates a query string is empty after canonicalization.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidCategory indicates an invalid Category value.
	ErrInvalidCategory = errors.New("invalid category")
)
