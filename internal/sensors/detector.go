// Package sensors flags car parks whose occupancy feed is implausibly
// constant over time: a stuck counter keeps reporting the same availability
// for days and would silently skew every city-wide aggregate.
package sensors

import (
	"sort"

	"github.com/hove-io/relais/internal/utils"
)

// DetectorConfig carries the detection thresholds. The zero value is not
// usable, start from NewDetectorConfig and override fields as needed.
type DetectorConfig struct {
	// MinPoints is the minimum series length before a verdict is attempted.
	// Shorter series are never flagged: insufficient evidence, not a pass.
	MinPoints int
	// EpsStd flags a series whose population standard deviation is at or
	// below this threshold.
	EpsStd float64
	// RoundDigits absorbs floating point noise before counting distinct
	// values.
	RoundDigits int
	// MaxUniqueValues flags a series with at most this many distinct
	// rounded values.
	MaxUniqueValues int
}

func NewDetectorConfig() DetectorConfig {
	return DetectorConfig{
		MinPoints:       20,
		EpsStd:          0.001,
		RoundDigits:     3,
		MaxUniqueValues: 2,
	}
}

// Stuck judges a single series. The two triggers are independent: a frozen
// sensor trips the std branch, a sensor oscillating between a couple of
// values trips the distinct-count branch even with a std above EpsStd.
func (c DetectorConfig) Stuck(values []float64) bool {
	if len(values) < c.MinPoints {
		return false
	}

	if utils.PopulationStd(values) <= c.EpsStd {
		return true
	}

	distinct := make(map[float64]struct{}, len(values))
	for _, v := range values {
		distinct[utils.RoundTo(v, c.RoundDigits)] = struct{}{}
	}
	return len(distinct) <= c.MaxUniqueValues
}

// Detect scans every series and returns the sorted names of the flagged
// entities.
func (c DetectorConfig) Detect(series map[string][]float64) []string {
	excluded := make([]string, 0)
	for name, values := range series {
		if c.Stuck(values) {
			excluded = append(excluded, name)
		}
	}
	sort.Strings(excluded)
	return excluded
}

// ExclusionSet turns the flagged names into the lookup set consumed by the
// aggregation code.
func ExclusionSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
