// Package metrics defines the Prometheus collectors reported by the
// neighbor indexes and the permutation engine.
//
// A nil *Metrics is valid and records nothing, so library callers that do not
// care about metrics never need to construct one.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Index kinds used as the "kind" label.
const (
	KindPoint  = "kdtree"
	KindRegion = "rtree"
)

// Procedures used as the "procedure" label.
const (
	ProcedurePairwise    = "pairwise"
	ProcedureCombination = "combination"
)

// Metrics holds all collectors.
type Metrics struct {
	IndexBuildsTotal       *prometheus.CounterVec
	IndexBuildSeconds      *prometheus.HistogramVec
	NeighborQueriesTotal   *prometheus.CounterVec
	PermutationTrialsTotal *prometheus.CounterVec
	BootstrapSeconds       *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// It panics if a collector is already registered (programmer error).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		IndexBuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spatialperm_index_builds_total",
				Help: "Spatial indexes built, by index kind.",
			},
			[]string{"kind"},
		),
		IndexBuildSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spatialperm_index_build_seconds",
				Help:    "Spatial index bulk-load latency in seconds.",
				Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"kind"},
		),
		NeighborQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spatialperm_neighbor_queries_total",
				Help: "Per-object neighbor queries answered, by index kind.",
			},
			[]string{"kind"},
		),
		PermutationTrialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spatialperm_permutation_trials_total",
				Help: "Label permutation trials executed, by procedure.",
			},
			[]string{"procedure"},
		),
		BootstrapSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spatialperm_bootstrap_seconds",
				Help:    "Wall time of a full bootstrap call in seconds.",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
			},
			[]string{"procedure"},
		),
	}

	reg.MustRegister(
		m.IndexBuildsTotal,
		m.IndexBuildSeconds,
		m.NeighborQueriesTotal,
		m.PermutationTrialsTotal,
		m.BootstrapSeconds,
	)
	return m
}

// ObserveBuild records one index build of the given kind.
func (m *Metrics) ObserveBuild(kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.IndexBuildsTotal.WithLabelValues(kind).Inc()
	m.IndexBuildSeconds.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// AddQueries records n neighbor queries against an index of the given kind.
func (m *Metrics) AddQueries(kind string, n int) {
	if m == nil {
		return
	}
	m.NeighborQueriesTotal.WithLabelValues(kind).Add(float64(n))
}

// ObserveBootstrap records a finished bootstrap call.
func (m *Metrics) ObserveBootstrap(procedure string, trials int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.PermutationTrialsTotal.WithLabelValues(procedure).Add(float64(trials))
	m.BootstrapSeconds.WithLabelValues(procedure).Observe(elapsed.Seconds())
}
