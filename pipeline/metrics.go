package pipeline

import (
	"time"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMonitor implements Monitor with Prometheus metrics.
// All collectors are registered on construction; one instance observes every
// request for the lifetime of the process.
type PrometheusMonitor struct {
	requests       prometheus.Counter
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	searchDegraded *prometheus.CounterVec
	rerankSkipped  prometheus.Counter
	outcomes       *prometheus.CounterVec
	duration       prometheus.Histogram
}

var _ Monitor = (*PrometheusMonitor)(nil)

// NewPrometheusMonitor creates a monitor registering its collectors on reg.
// Pass prometheus.DefaultRegisterer for the process-wide registry.
func NewPrometheusMonitor(reg prometheus.Registerer) *PrometheusMonitor {
	factory := promauto.With(reg)
	return &PrometheusMonitor{
		requests: factory.NewCounter(prometheus.CounterOpts{
			Name: "retrieval_requests_total",
			Help: "Total retrieval requests received.",
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "retrieval_cache_hits_total",
			Help: "Requests answered from the result cache.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "retrieval_cache_misses_total",
			Help: "Requests that ran the retrieval pipeline.",
		}),
		searchDegraded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "retrieval_search_degraded_total",
			Help: "Retrieval side failures absorbed by degraded answers.",
		}, []string{"side"}),
		rerankSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "retrieval_rerank_skipped_total",
			Help: "Requests where reranking failed and the merged order was kept.",
		}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "retrieval_outcomes_total",
			Help: "Finished requests by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "retrieval_request_duration_seconds",
			Help:    "End-to-end retrieval latency, cache hits included.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *PrometheusMonitor) Start(_ string) {
	m.requests.Inc()
}

func (m *PrometheusMonitor) Classified(_ string, _ core.Category) {}

func (m *PrometheusMonitor) CacheHit(_ string) {
	m.cacheHits.Inc()
}

func (m *PrometheusMonitor) CacheMiss(_ string) {
	m.cacheMisses.Inc()
}

func (m *PrometheusMonitor) SearchDegraded(side string, _ error) {
	m.searchDegraded.WithLabelValues(side).Inc()
}

func (m *PrometheusMonitor) AfterMerge(_ []core.ScoredCandidate) {}

func (m *PrometheusMonitor) RerankSkipped(_ error) {
	m.rerankSkipped.Inc()
}

func (m *PrometheusMonitor) AfterRerank(_ []core.ScoredCandidate) {}

func (m *PrometheusMonitor) Finish(result *core.RetrievalResult, _ bool, elapsed time.Duration) {
	if result != nil {
		m.outcomes.WithLabelValues(string(result.Outcome)).Inc()
	}
	m.duration.Observe(elapsed.Seconds())
}
