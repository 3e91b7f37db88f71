package bikestations

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	StationsLoadingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "relais",
		Subsystem: "bikestations",
		Name:      "load_durations_seconds",
		Help:      "bike station journal loading latency distributions.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 1.5, 15),
	})

	StationsLoadingErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "relais",
		Subsystem: "bikestations",
		Name:      "loading_errors",
		Help:      "current number of bike station journal loading errors",
	})
)
