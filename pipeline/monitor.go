package pipeline

import (
	"time"

	"github.com/ReesavGupta/ragxragas/core"
)

// Monitor provides hooks to observe the query path.
// Implement this interface to track intermediate steps and results during retrieval.
// Implementations must be safe for concurrent use; one monitor observes all requests.
type Monitor interface {
	Start(query string)
	Classified(query string, category core.Category)
	CacheHit(fingerprint string)
	CacheMiss(fingerprint string)
	SearchDegraded(side string, err error)
	AfterMerge(candidates []core.ScoredCandidate)
	RerankSkipped(err error)
	AfterRerank(candidates []core.ScoredCandidate)
	Finish(result *core.RetrievalResult, cacheHit bool, elapsed time.Duration)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                             {}
func (n *noopMonitor) Classified(_ string, _ core.Category)                       {}
func (n *noopMonitor) CacheHit(_ string)                                          {}
func (n *noopMonitor) CacheMiss(_ string)                                         {}
func (n *noopMonitor) SearchDegraded(_ string, _ error)                           {}
func (n *noopMonitor) AfterMerge(_ []core.ScoredCandidate)                        {}
func (n *noopMonitor) RerankSkipped(_ error)                                      {}
func (n *noopMonitor) AfterRerank(_ []core.ScoredCandidate)                       {}
func (n *noopMonitor) Finish(_ *core.RetrievalResult, _ bool, _ time.Duration)    {}
