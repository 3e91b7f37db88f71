package relays

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RelaysComputeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "relais",
		Subsystem: "relays",
		Name:      "compute_durations_seconds",
		Help:      "relay matching latency distributions.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 1.5, 15),
	})

	RelaysComputeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "relais",
		Subsystem: "relays",
		Name:      "compute_errors",
		Help:      "current number of relay matching errors",
	})
)
