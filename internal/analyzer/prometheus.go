package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "relais",
		Subsystem: "analyzer",
		Name:      "run_durations_seconds",
		Help:      "full analysis run latency distributions.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 1.5, 15),
	})

	AnalysisErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "relais",
		Subsystem: "analyzer",
		Name:      "run_errors",
		Help:      "current number of analysis run errors",
	})
)
