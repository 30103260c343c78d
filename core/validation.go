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

import (
	"fmt"
	"strings"
)

// ValidateChunk checks that a chunk is well-formed for indexing.
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return ErrInvalidChunk
	}
	if strings.TrimSpace(chunk.Content) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}
	if chunk.Id == 0 {
		return fmt.Errorf("%w: zero id", ErrInvalidChunk)
	}
	return nil
}

// ValidateCategory checks that a category is one of the known values.
func ValidateCategory(category Category) error {
	switch category {
	case CategoryVolatile, CategoryStable:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidCategory, category)
	}
}

// CanonicalQuery normalizes a query for fingerprinting: collapses runs of
// whitespace to single spaces, trims, and lowercases. Lexical and embedding
// retrieval are themselves case-insensitive in effect, so folding case does
// not change retrieval semantics.
func CanonicalQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
