package collector

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CollectDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "relais",
		Subsystem: "collector",
		Name:      "poll_durations_seconds",
		Help:      "feed polling latency distributions.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 1.5, 15),
	})

	CollectErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "relais",
		Subsystem: "collector",
		Name:      "poll_errors",
		Help:      "current number of feed polling errors",
	})
)
