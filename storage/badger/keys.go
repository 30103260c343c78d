package badger

import (
	"fmt"
)

// Key prefixes for different data types
const (
	chunkPrefix      = "chunk"
	cachePrefix      = "rescache"
	corpusVersionKey = "corpusver"
)

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkPrefix, id))
}

// makeCacheKey generates a key for a cached result by fingerprint.
func makeCacheKey(fingerprint string) []byte {
	return []byte(cachePrefix + ":" + fingerprint)
}
