// Package ingestion provides pipeline orchestration for adding documents to
// the corpus.
//
// The Pipeline type manages the ingestion workflow for documents, including:
//   - Splitting documents into retrievable chunks
//   - Adding chunks to storage
//   - Generating embeddings asynchronously
//   - Bumping the corpus version once a batch is committed
//
// Embedding is performed concurrently using a worker pool to maximize
// throughput. Errors during async processing are logged but do not fail the
// ingestion operation; unembedded chunks are still lexically searchable.
package ingestion
