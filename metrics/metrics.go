// Package metrics defines prometheus metrics shared by the estimate
// pipeline and the HTTP frontend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveRuns counts estimate runs currently in flight, by entry point
	// ("api", "ws" or "cli").
	ActiveRuns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "smartestimator_active_runs",
			Help: "A gauge of estimate runs currently being served.",
		},
		[]string{"entry"})

	// RunCount counts completed estimate runs by mode and final status.
	RunCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartestimator_runs_total",
			Help: "Number of estimate runs served by this instance.",
		},
		[]string{"mode", "status"})

	// RunDuration tracks end-to-end pipeline latency. OCR dominates, so the
	// buckets stretch well past typical HTTP handler latencies.
	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "smartestimator_run_duration_seconds",
			Help: "A histogram of end-to-end estimate run latencies.",
			Buckets: []float64{
				.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30, 60, 120, 300},
		},
		[]string{"mode"})

	// StageErrors counts pipeline stage failures by stage name.
	StageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartestimator_stage_errors_total",
			Help: "Number of pipeline stage failures of each type.",
		},
		[]string{"stage"})

	// ArtifactBytes tracks the size of generated report artifacts.
	ArtifactBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartestimator_artifact_bytes",
			Help:    "A histogram of generated artifact sizes.",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		},
		[]string{"kind"})

	// EstimatedTotal tracks grand totals so cost drift across price-book
	// updates is visible on a dashboard.
	EstimatedTotal = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartestimator_estimate_cost",
			Help:    "A histogram of grand-total estimate amounts.",
			Buckets: prometheus.ExponentialBuckets(1000, 2.5, 12),
		},
		[]string{"currency"})
)
