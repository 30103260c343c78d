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

// Package retrieval implements the two first-stage search paths and the
// fusion stages that turn their output into one ranked candidate list.
//
// The stages, in pipeline order:
//
//   - DenseIndex: embeds the query and searches stored vectors
//   - SparseIndex: in-memory BM25 lexical ranking over the corpus
//   - Merger: normalizes both score streams and fuses them into one
//     deduplicated ranked list
//   - Reranker: optional second-pass cross-scoring of the merged list
//     against the literal query
//   - Compressor: optional relevance-floor filter bounding the final
//     candidate set
//
// Dense similarity and lexical scores live on incomparable scales, so the
// merger never combines raw scores; each stream is normalized independently
// first.
package retrieval
