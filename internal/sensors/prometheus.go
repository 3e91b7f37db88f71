package sensors

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ExcludedParkings = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "relais",
		Subsystem: "sensors",
		Name:      "excluded_parkings",
		Help:      "number of car parks currently excluded as stuck sensors",
	})
)
