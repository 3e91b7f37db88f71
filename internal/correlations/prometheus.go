package correlations

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CorrelationsComputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "relais",
		Subsystem: "correlations",
		Name:      "compute_durations_seconds",
		Help:      "correlation computation latency distributions.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 1.5, 15),
	})

	CorrelationsComputeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "relais",
		Subsystem: "correlations",
		Name:      "compute_errors",
		Help:      "current number of correlation computation errors",
	})
)
