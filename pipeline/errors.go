package pipeline

import (
	"errors"
	"fmt"

	"github.com/ReesavGupta/ragxragas/core"
)

var (
	// ErrClassifierRequired is returned when a query classifier is not provided.
	ErrClassifierRequired = errors.New("query classifier required")

	// ErrDenseSearcherRequired is returned when a dense searcher is not provided.
	ErrDenseSearcherRequired = errors.New("dense searcher required")

	// ErrSparseSearcherRequired is returned when a sparse searcher is not provided.
	ErrSparseSearcherRequired = errors.New("sparse searcher required")

	// ErrResultCacheRequired is returned when a result cache is not provided.
	ErrResultCacheRequired = errors.New("result cache required")

	// ErrChunkRepositoryRequired is returned when a chunk repository is not provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository required")

	// ErrInvalidTopK is returned when the result budget is not positive.
	ErrInvalidTopK = errors.New("top-k must be positive")

	// ErrBothSidesFailed is returned when neither retrieval side produced a
	// result; there is nothing to degrade to.
	ErrBothSidesFailed = fmt.Errorf("both retrieval sides failed: %w", core.ErrUpstreamUnavailable)
)
