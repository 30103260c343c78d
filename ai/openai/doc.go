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

// Package openai implements the ai interfaces against OpenAI-compatible APIs.
//
// The implementations work with any endpoint speaking the OpenAI wire format,
// including local services such as Ollama, LocalAI, and vLLM. The embedder
// uses the embeddings endpoint; the classifier and scorer use chat
// completions with temperature 0 so repeated calls over the same input stay
// deterministic enough for caching.
package openai
