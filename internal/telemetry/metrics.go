package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the counters/histogram SPEC_FULL §4.10 names,
// registered against a private registry so tests can construct one
// per case without colliding with prometheus's global default
// registry.
type Metrics struct {
	Registry       *prometheus.Registry
	RunsTotal      *prometheus.CounterVec
	ReactionsFired prometheus.Counter
	RunDuration    prometheus.Histogram
}

// NewMetrics registers and returns a fresh Metrics bundle.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gillespie_runs_total",
			Help: "Total number of simulation runs, by outcome.",
		}, []string{"outcome"}),
		ReactionsFired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gillespie_reactions_fired_total",
			Help: "Total number of reaction firings across all runs.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gillespie_run_duration_seconds",
			Help:    "Wall-clock duration of a simulation run.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.RunsTotal, m.ReactionsFired, m.RunDuration)
	return m
}

// Outcome labels for RunsTotal, matching SPEC_FULL §4.10.
const (
	OutcomeOK              = "ok"
	OutcomeValidationError = "validation_error"
)
