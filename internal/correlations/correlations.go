package correlations

import (
	"sort"

	"github.com/hove-io/relais/internal/utils"
)

const (
	// MinGlobalPoints is the floor under which no correlation is published.
	MinGlobalPoints = 5

	DefaultRollingWindow = 12

	RollingTitle = "Corrélation voiture / vélo (glissante)"
)

// GlobalResult is the correlation_global.json artifact. Correlation is nil
// when too few timestamps are shared or when one series has zero variance.
type GlobalResult struct {
	Correlation *float64 `json:"correlation"`
	NPoints     int      `json:"n_points"`
	Method      string   `json:"method"`
	Aligned     string   `json:"aligned"`
}

type Point struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Series is the rolling correlation artifact consumed by the plotting site.
type Series struct {
	Title   string  `json:"title"`
	Window  int     `json:"window"`
	NPoints int     `json:"n_points"`
	Aligned string  `json:"aligned"`
	Method  string  `json:"method"`
	Points  []Point `json:"points"`
}

func alignSeries(car, bike map[string]float64) ([]string, []float64, []float64) {
	common := make([]string, 0, len(car))
	for ts := range car {
		if _, ok := bike[ts]; ok {
			common = append(common, ts)
		}
	}
	sort.Strings(common)

	x := make([]float64, len(common))
	y := make([]float64, len(common))
	for i, ts := range common {
		x[i] = car[ts]
		y[i] = bike[ts]
	}
	return common, x, y
}

// Global computes the Pearson correlation between the city car-occupancy
// series and the mean bike-dock series, aligned on exact shared timestamps.
func Global(car, bike map[string]float64) GlobalResult {
	result := GlobalResult{Method: "pearson", Aligned: "exact_timestamp"}

	_, x, y := alignSeries(car, bike)
	result.NPoints = len(x)
	if len(x) < MinGlobalPoints {
		return result
	}

	r, ok := utils.Pearson(x, y)
	if !ok {
		return result
	}
	result.Correlation = &r
	return result
}

// Rolling computes a sliding-window Pearson correlation over the aligned
// series. Each point carries the timestamp closing its window; windows where
// the correlation is undefined are skipped.
func Rolling(car, bike map[string]float64, window int) Series {
	if window <= 0 {
		window = DefaultRollingWindow
	}
	series := Series{
		Title:   RollingTitle,
		Window:  window,
		Aligned: "exact_timestamp",
		Method:  "pearson",
		Points:  []Point{},
	}

	common, x, y := alignSeries(car, bike)
	series.NPoints = len(common)

	floor := MinGlobalPoints
	if window > floor {
		floor = window
	}
	if len(common) < floor {
		return series
	}

	for end := window; end <= len(common); end++ {
		r, ok := utils.Pearson(x[end-window:end], y[end-window:end])
		if !ok {
			continue
		}
		series.Points = append(series.Points, Point{Timestamp: common[end-1], Value: r})
	}
	return series
}
