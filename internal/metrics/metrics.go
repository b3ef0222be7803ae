// Package metrics exposes Prometheus instrumentation for solves.
package metrics

import (
	"time"

	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/internal/diet"
	"github.com/MillerMedia/MSDS-460-Decision-Analytics-The-Diet-Problem/pkg/lp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry holds every collector of this package plus the Go and process
	// collectors. The HTTP server exposes it on /metrics.
	Registry = prometheus.NewRegistry()

	// SolvesTotal counts completed solves by normalized status.
	SolvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diet_solves_total",
			Help: "Total number of solves by outcome status",
		},
		[]string{"status"},
	)

	// SolveDuration tracks wall time spent in the engine, after the model is built.
	SolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "diet_solve_duration_seconds",
			Help:    "Time spent solving one built scenario",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)

	// BuildErrorsTotal counts inputs rejected before solving, by kind.
	BuildErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diet_build_errors_total",
			Help: "Total number of inputs rejected by the model builder",
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(
		SolvesTotal,
		SolveDuration,
		BuildErrorsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveSolve records one finished solve.
func ObserveSolve(status lp.Status, elapsed time.Duration) {
	SolvesTotal.WithLabelValues(status.String()).Inc()
	SolveDuration.Observe(elapsed.Seconds())
}

// ObserveBuildError records one rejected input.
func ObserveBuildError(err error) {
	if err == nil {
		return
	}
	BuildErrorsTotal.WithLabelValues(diet.ErrorKind(err)).Inc()
}
