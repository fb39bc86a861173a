// Package metrics defines the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BurnRequests counts finished burn requests by terminal outcome
	// (success, client_error, timeout, transcode_failed, no_output,
	// spawn_failed, infra_error, rejected).
	BurnRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subburn_requests_total",
		Help: "Total burn requests by outcome",
	}, []string{"outcome"})

	// BurnDuration tracks end-to-end pipeline duration.
	BurnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "subburn_pipeline_duration_seconds",
		Help:    "End-to-end burn pipeline duration",
		Buckets: prometheus.ExponentialBuckets(0.5, 2.0, 12), // 0.5s to ~1h
	})

	// BurnInFlight tracks transcodes currently executing.
	BurnInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "subburn_transcodes_in_flight",
		Help: "Number of ffmpeg processes currently running",
	})

	// BytesStaged counts uploaded bytes written to scratch storage.
	BytesStaged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subburn_bytes_staged_total",
		Help: "Total uploaded bytes written to scratch storage",
	}, []string{"kind"})

	// BytesProduced counts output bytes produced by successful transcodes.
	BytesProduced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "subburn_bytes_produced_total",
		Help: "Total output bytes produced by successful transcodes",
	})

	// SweepDeletions counts scratch files removed by the background sweeper.
	SweepDeletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "subburn_sweep_deletions_total",
		Help: "Scratch files removed by the background sweeper",
	})
)

// IncOutcome records the terminal outcome of one burn request.
func IncOutcome(outcome string) {
	BurnRequests.WithLabelValues(outcome).Inc()
}
