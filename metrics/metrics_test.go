package metrics_test

import (
	"testing"
	"time"

	"github.com/katalvlaran/spatialperm/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveBuild(metrics.KindPoint, 3*time.Millisecond)
	m.ObserveBuild(metrics.KindPoint, time.Millisecond)
	m.AddQueries(metrics.KindRegion, 42)
	m.ObserveBootstrap(metrics.ProcedureCombination, 500, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.IndexBuildsTotal.WithLabelValues(metrics.KindPoint)))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.NeighborQueriesTotal.WithLabelValues(metrics.KindRegion)))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.PermutationTrialsTotal.WithLabelValues(metrics.ProcedureCombination)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.IndexBuildSeconds), "one kind label observed")
	assert.Equal(t, 1, testutil.CollectAndCount(m.BootstrapSeconds))
}

// TestMetrics_NilIsNoop guards the nil-receiver contract used by library defaults.
func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveBuild(metrics.KindRegion, time.Second)
		m.AddQueries(metrics.KindRegion, 1)
		m.ObserveBootstrap(metrics.ProcedurePairwise, 1, time.Second)
	})
}

func TestMetrics_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	assert.Panics(t, func() { metrics.New(reg) })
}
