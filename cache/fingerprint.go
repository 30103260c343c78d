package cache

import (
	"encoding/hex"
	"fmt"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/go-crypt/x/blake2b"
)

// Fingerprint derives the cache identity of a retrieval request. The query
// is canonicalized first, so requests differing only in casing or whitespace
// share an entry. The corpus version is part of the identity: bumping it on
// re-ingestion invalidates every prior entry without touching the store.
func Fingerprint(query string, category core.Category, topK int, corpusVersion uint64) string {
	h, _ := blake2b.New(32, nil)
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00%d", core.CanonicalQuery(query), category.String(), topK, corpusVersion)
	return hex.EncodeToString(h.Sum(nil))
}
