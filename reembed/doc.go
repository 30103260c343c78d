// Package reembed provides functionality for reembedding the stored corpus
// with new or updated embedding models.
//
// This package supports batch processing of chunks, progress tracking, retry
// logic with exponential backoff, and vector normalization to ensure
// compatibility with cosine similarity search. Completing a run bumps the
// corpus version so cached results computed against the old vectors are
// never served again.
package reembed
