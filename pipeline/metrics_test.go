package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/ReesavGupta/ragxragas/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMonitor_CountsRequestFlow(t *testing.T) {
	monitor := NewPrometheusMonitor(prometheus.NewRegistry())

	monitor.Start("query one")
	monitor.CacheMiss("fp-1")
	monitor.Finish(&core.RetrievalResult{Outcome: core.OutcomeOK}, false, 25*time.Millisecond)

	monitor.Start("query one")
	monitor.CacheHit("fp-1")
	monitor.Finish(&core.RetrievalResult{Outcome: core.OutcomeOK}, true, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(monitor.requests))
	assert.Equal(t, 1.0, testutil.ToFloat64(monitor.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(monitor.cacheMisses))
	assert.Equal(t, 2.0, testutil.ToFloat64(monitor.outcomes.WithLabelValues("ok")))
}

func TestPrometheusMonitor_CountsDegradation(t *testing.T) {
	monitor := NewPrometheusMonitor(prometheus.NewRegistry())

	monitor.SearchDegraded("dense", errors.New("embedder down"))
	monitor.SearchDegraded("dense", errors.New("embedder down"))
	monitor.SearchDegraded("sparse", errors.New("index broken"))
	monitor.RerankSkipped(errors.New("model offline"))

	assert.Equal(t, 2.0, testutil.ToFloat64(monitor.searchDegraded.WithLabelValues("dense")))
	assert.Equal(t, 1.0, testutil.ToFloat64(monitor.searchDegraded.WithLabelValues("sparse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(monitor.rerankSkipped))
}

func TestPrometheusMonitor_IsAMonitor(t *testing.T) {
	var _ Monitor = NewPrometheusMonitor(prometheus.NewRegistry())
}
