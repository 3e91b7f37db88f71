// Package relays ranks (car park, bike station) pairs whose occupancy series
// move together. The interesting pairs are the inverse ones: a car park that
// fills up while the nearby station empties suggests drivers switching to a
// bike, the "relay" effect.
package relays

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/hove-io/relais/internal/utils"
)

const (
	// SortPolicyNegative documents the composite key used in relay mode.
	SortPolicyNegative = "distance ASC, correlation ASC (plus negative), n_points DESC"
	// SortPolicyAbsolute documents the composite key used when relay mode
	// is disabled and pairs are ranked by correlation magnitude.
	SortPolicyAbsolute = "abs(correlation) DESC, distance ASC, n_points DESC"
)

// Config carries the matching thresholds. Start from NewConfig and override
// fields as needed.
type Config struct {
	// MaxDistanceM is the maximum great-circle distance between the two
	// entities of a pair.
	MaxDistanceM float64
	// MinPoints is the minimum count of exactly matching timestamps; pairs
	// below it are discarded before any correlation is computed.
	MinPoints int
	// TopN truncates the ranking in the report.
	TopN int
	// OnlyNegative restricts candidates to inverse correlations below
	// MaxCorrForRelay. When false, candidates are ranked by |correlation|.
	OnlyNegative    bool
	MaxCorrForRelay float64
}

func NewConfig() Config {
	return Config{
		MaxDistanceM:    800,
		MinPoints:       12,
		TopN:            30,
		OnlyNegative:    true,
		MaxCorrForRelay: -0.20,
	}
}

func (c Config) SortPolicy() string {
	if c.OnlyNegative {
		return SortPolicyNegative
	}
	return SortPolicyAbsolute
}

// Entity is one side of a candidate pair: a located entity with its
// occupancy series keyed by timestamp. Entities without coordinates or
// without a series must not be passed in, they are out of the matching scope.
type Entity struct {
	Name   string
	Lat    float64
	Lon    float64
	Series map[string]float64
}

// Candidate is one surviving pair of the matching run
type Candidate struct {
	Parking     string  `json:"parking"`
	Station     string  `json:"station"`
	DistanceM   float64 `json:"distance_m"`
	Correlation float64 `json:"correlation"`
	NPoints     int     `json:"n_points"`
	ParkingLat  float64 `json:"parking_lat"`
	ParkingLon  float64 `json:"parking_lon"`
	StationLat  float64 `json:"station_lat"`
	StationLon  float64 `json:"station_lon"`
}

// alignSeries intersects two series on identical timestamp strings. ISO-8601
// strings sort chronologically, so the aligned values are in time order.
func alignSeries(a, b map[string]float64) ([]float64, []float64) {
	common := make([]string, 0)
	for ts := range a {
		if _, ok := b[ts]; ok {
			common = append(common, ts)
		}
	}
	sort.Strings(common)

	x := make([]float64, len(common))
	y := make([]float64, len(common))
	for i, ts := range common {
		x[i] = a[ts]
		y[i] = b[ts]
	}
	return x, y
}

// Match generates the ranked candidate list. It fails when one of the
// catalogs is empty: a ranking computed against nothing would be
// indistinguishable from a meaningful empty result.
func Match(parkings, stations []Entity, config Config) ([]Candidate, error) {
	if len(parkings) == 0 || len(stations) == 0 {
		return nil, errors.New("nothing to match: empty parking or station catalog")
	}

	candidates := make([]Candidate, 0)
	for _, parking := range parkings {
		if len(parking.Series) == 0 {
			continue
		}
		for _, station := range stations {
			if len(station.Series) == 0 {
				continue
			}

			distance := utils.CoordDistance(parking.Lat, parking.Lon, station.Lat, station.Lon)
			if distance > config.MaxDistanceM {
				continue
			}

			x, y := alignSeries(parking.Series, station.Series)
			if len(x) < config.MinPoints {
				continue
			}

			correlation, ok := utils.Pearson(x, y)
			if !ok {
				continue
			}
			if config.OnlyNegative && correlation > config.MaxCorrForRelay {
				continue
			}

			candidates = append(candidates, Candidate{
				Parking:     parking.Name,
				Station:     station.Name,
				DistanceM:   distance,
				Correlation: correlation,
				NPoints:     len(x),
				ParkingLat:  parking.Lat,
				ParkingLon:  parking.Lon,
				StationLat:  station.Lat,
				StationLon:  station.Lon,
			})
		}
	}

	rank(candidates, config)
	return candidates, nil
}

func rank(candidates []Candidate, config Config) {
	if config.OnlyNegative {
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].DistanceM != candidates[j].DistanceM {
				return candidates[i].DistanceM < candidates[j].DistanceM
			}
			if candidates[i].Correlation != candidates[j].Correlation {
				return candidates[i].Correlation < candidates[j].Correlation
			}
			return candidates[i].NPoints > candidates[j].NPoints
		})
		return
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		absI, absJ := math.Abs(candidates[i].Correlation), math.Abs(candidates[j].Correlation)
		if absI != absJ {
			return absI > absJ
		}
		if candidates[i].DistanceM != candidates[j].DistanceM {
			return candidates[i].DistanceM < candidates[j].DistanceM
		}
		return candidates[i].NPoints > candidates[j].NPoints
	})
}
