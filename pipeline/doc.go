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

// Package pipeline wires the retrieval stages, the classifier, and the
// result cache into the end-to-end query path.
//
// For each query the orchestrator classifies freshness, derives the request
// fingerprint, and consults the result cache; on a miss it runs both
// retrieval sides in parallel, fuses their output, optionally reranks and
// compresses it, and caches what it produced. A single failing stage
// degrades the answer rather than failing the request: a dead retrieval
// side leaves the other side's results, a dead reranker leaves the merged
// order.
package pipeline
