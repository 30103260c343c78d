package cache

import "errors"

// ErrStoreRequired is returned when a cache store is not provided.
var ErrStoreRequired = errors.New("cache store required")
