package parkings

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ParkingsLoadingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "relais",
		Subsystem: "parkings",
		Name:      "load_durations_seconds",
		Help:      "car park journal loading latency distributions.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 1.5, 15),
	})

	ParkingsLoadingErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "relais",
		Subsystem: "parkings",
		Name:      "loading_errors",
		Help:      "current number of car park journal loading errors",
	})
)
