package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/contrib/ginrus"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/hove-io/relais"
	"github.com/hove-io/relais/internal/analyzer"
	"github.com/hove-io/relais/internal/bikestations"
	"github.com/hove-io/relais/internal/collector"
	"github.com/hove-io/relais/internal/correlations"
	"github.com/hove-io/relais/internal/manager"
	"github.com/hove-io/relais/internal/parkings"
	"github.com/hove-io/relais/internal/relays"
	"github.com/hove-io/relais/internal/sensors"
)

const requestIdHeader = "X-Request-Id"

// StatusResponse defines the object returned by the /status endpoint
type StatusResponse struct {
	Status                string    `json:"status,omitempty"`
	Version               string    `json:"version,omitempty"`
	LastCollectorUpdate   time.Time `json:"last_collector_update"`
	LastParkingUpdate     time.Time `json:"last_parking_update"`
	LastStationUpdate     time.Time `json:"last_station_update"`
	LastSensorUpdate      time.Time `json:"last_sensor_update"`
	LastRelayUpdate       time.Time `json:"last_relay_update"`
	LastCorrelationUpdate time.Time `json:"last_correlation_update"`
}

var (
	httpDurations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "relais",
		Subsystem: "http",
		Name:      "durations_seconds",
		Help:      "http request latency distributions.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 1.5, 15),
	},
		[]string{"handler", "code"},
	)

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "relais",
		Subsystem: "http",
		Name:      "in_flight",
		Help:      "current number of http request being served",
	},
	)
)

func StatusHandler(manager *manager.DataManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lastCollectorUpdate time.Time
		if manager.GetCollectorContext() != nil {
			lastCollectorUpdate = manager.GetCollectorContext().GetLastCollectorUpdate()
		}

		var lastParkingsDataUpdate time.Time
		if manager.GetParkingsContext() != nil {
			lastParkingsDataUpdate = manager.GetParkingsContext().GetLastParkingsDataUpdate()
		}

		var lastStationsDataUpdate time.Time
		if manager.GetStationsContext() != nil {
			lastStationsDataUpdate = manager.GetStationsContext().GetLastStationsDataUpdate()
		}

		var lastSensorsDataUpdate time.Time
		if manager.GetSensorsContext() != nil {
			lastSensorsDataUpdate = manager.GetSensorsContext().GetLastSensorsDataUpdate()
		}

		var lastRelaysDataUpdate time.Time
		if manager.GetRelaysContext() != nil {
			lastRelaysDataUpdate = manager.GetRelaysContext().GetLastRelaysDataUpdate()
		}

		var lastCorrelationsDataUpdate time.Time
		if manager.GetCorrelationsContext() != nil {
			lastCorrelationsDataUpdate = manager.GetCorrelationsContext().GetLastCorrelationsDataUpdate()
		}

		c.JSON(http.StatusOK, StatusResponse{
			"ok",
			relais.RelaisVersion,
			lastCollectorUpdate,
			lastParkingsDataUpdate,
			lastStationsDataUpdate,
			lastSensorsDataUpdate,
			lastRelaysDataUpdate,
			lastCorrelationsDataUpdate,
		})
	}
}

func SetupRouter(manager *manager.DataManager, r *gin.Engine) *gin.Engine {
	if r == nil {
		r = gin.New()
	}
	r.Use(ginrus.Ginrus(logrus.StandardLogger(), time.RFC3339, false))
	r.Use(requestId())
	r.Use(instrumentGin())
	r.Use(gin.Recovery())
	pprof.Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/status", StatusHandler(manager))

	if manager.GetParkingsContext() != nil {
		parkings.AddParkingsEntryPoint(r, manager.GetParkingsContext())
	}
	if manager.GetStationsContext() != nil {
		bikestations.AddStationsEntryPoint(r, manager.GetStationsContext())
	}
	if manager.GetSensorsContext() != nil {
		sensors.AddExclusionsEntryPoint(r, manager.GetSensorsContext())
	}
	if manager.GetRelaysContext() != nil {
		relays.AddRelaysEntryPoint(r, manager.GetRelaysContext())
	}
	if manager.GetCorrelationsContext() != nil {
		correlations.AddCorrelationsEntryPoint(r, manager.GetCorrelationsContext())
	}

	return r
}

// requestId tags every request with an id, kept when the caller provides one.
func requestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIdHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Writer.Header().Set(requestIdHeader, id)
		c.Next()
	}
}

func instrumentGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		httpInFlight.Inc()
		c.Next()
		httpInFlight.Dec()
		observer := httpDurations.With(prometheus.Labels{"handler": c.HandlerName(), "code": strconv.Itoa(c.Writer.Status())})
		observer.Observe(time.Since(begin).Seconds())
	}
}

func init() {
	prometheus.MustRegister(httpDurations)
	prometheus.MustRegister(httpInFlight)
	prometheus.MustRegister(parkings.ParkingsLoadingDuration)
	prometheus.MustRegister(parkings.ParkingsLoadingErrors)
	prometheus.MustRegister(bikestations.StationsLoadingDuration)
	prometheus.MustRegister(bikestations.StationsLoadingErrors)
	prometheus.MustRegister(sensors.ExcludedParkings)
	prometheus.MustRegister(relays.RelaysComputeDuration)
	prometheus.MustRegister(relays.RelaysComputeErrors)
	prometheus.MustRegister(correlations.CorrelationsComputeDuration)
	prometheus.MustRegister(correlations.CorrelationsComputeErrors)
	prometheus.MustRegister(collector.CollectDuration)
	prometheus.MustRegister(collector.CollectErrors)
	prometheus.MustRegister(analyzer.AnalysisDuration)
	prometheus.MustRegister(analyzer.AnalysisErrors)
}
