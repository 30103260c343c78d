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

package retrieval

import (
	"errors"
	"strings"

	"github.com/ReesavGupta/ragxragas/core"
)

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrChunkRepositoryRequired is returned when a chunk repository is not provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository required")

	// ErrScorerRequired is returned when a relevance scorer is not provided.
	ErrScorerRequired = errors.New("relevance scorer required")

	// ErrAllCandidatesFailed is returned when the scorer failed on every
	// candidate, leaving the reranker with no signal at all.
	ErrAllCandidatesFailed = errors.New("scoring failed for all candidates")
)

// classifyUpstreamError maps a raw client error onto the shared failure
// taxonomy so callers can tell rate limiting apart from a plain outage.
// Vendor clients don't expose typed errors consistently, hence the string
// matching.
func classifyUpstreamError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests") {
		return core.ErrRateLimited
	}
	return core.ErrUpstreamUnavailable
}
