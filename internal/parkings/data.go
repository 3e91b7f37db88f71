package parkings

import (
	"encoding/json"
	"fmt"

	"github.com/hove-io/relais/internal/data"
	"github.com/hove-io/relais/internal/journal"
)

const statusOpen = "Open"

// NGSI attribute envelopes used by the Montpellier open-data feed.
type stringAttribute struct {
	Value string `json:"value"`
}

type floatAttribute struct {
	Value float64 `json:"value"`
}

type locationAttribute struct {
	Value struct {
		// coordinates are [lon, lat] in the source
		Coordinates []float64 `json:"coordinates"`
	} `json:"value"`
}

// ParkingEntity is one car park as serialized by the offstreetparking endpoint
type ParkingEntity struct {
	ID        string            `json:"id"`
	Name      stringAttribute   `json:"name"`
	Status    stringAttribute   `json:"status"`
	Available floatAttribute    `json:"availableSpotNumber"`
	Total     floatAttribute    `json:"totalSpotNumber"`
	Location  locationAttribute `json:"location"`
}

// Reading is one occupancy measurement of one car park at one timestamp
type Reading struct {
	Name      string
	Timestamp string
	Available float64
	Total     float64
	Rate      float64
}

// ClampRate keeps sensor glitches (more free spots than capacity, negative
// counters) from leaking ratios outside [0,1] into every derived artifact.
func ClampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}

// NewReading builds a Reading from a raw journal entity. Closed parkings,
// nameless entities and non-positive capacities are rejected; the caller
// decides whether to skip or log.
func NewReading(raw json.RawMessage, timestamp string) (*Reading, error) {
	var entity ParkingEntity
	if err := json.Unmarshal(raw, &entity); err != nil {
		return nil, err
	}

	if entity.Status.Value != statusOpen {
		return nil, fmt.Errorf("Parking is not open")
	}
	if entity.Name.Value == "" {
		return nil, fmt.Errorf("Missing name in parking entity")
	}
	if entity.Total.Value <= 0 {
		return nil, fmt.Errorf("Parking %s has no capacity", entity.Name.Value)
	}

	return &Reading{
		Name:      entity.Name.Value,
		Timestamp: timestamp,
		Available: entity.Available.Value,
		Total:     entity.Total.Value,
		Rate:      ClampRate((entity.Total.Value - entity.Available.Value) / entity.Total.Value),
	}, nil
}

// EntityCoord extracts the WGS84 position of a raw entity, when it has one.
func EntityCoord(raw json.RawMessage) (data.Coord, bool) {
	var entity ParkingEntity
	if err := json.Unmarshal(raw, &entity); err != nil {
		return data.Coord{}, false
	}
	coords := entity.Location.Value.Coordinates
	if len(coords) < 2 {
		return data.Coord{}, false
	}
	return data.Coord{Lat: coords[1], Lon: coords[0]}, true
}

// SeriesByName rebuilds, for every car park, its chronological occupancy
// series from the snapshot journal.
func SeriesByName(snapshots []journal.Snapshot) map[string][]Reading {
	series := make(map[string][]Reading)
	for _, snapshot := range snapshots {
		for _, raw := range snapshot.Entities {
			reading, err := NewReading(raw, snapshot.Timestamp)
			if err != nil {
				continue
			}
			series[reading.Name] = append(series[reading.Name], *reading)
		}
	}
	return series
}

// Coords rebuilds the position catalog from the journal, last seen wins.
func Coords(snapshots []journal.Snapshot) map[string]data.Coord {
	coords := make(map[string]data.Coord)
	for _, snapshot := range snapshots {
		for _, raw := range snapshot.Entities {
			reading, err := NewReading(raw, snapshot.Timestamp)
			if err != nil {
				continue
			}
			if coord, ok := EntityCoord(raw); ok {
				coords[reading.Name] = coord
			}
		}
	}
	return coords
}

// CityRate is the city-wide occupancy of one snapshot: all open parkings are
// summed, excluded ones (stuck sensors) are ignored. The second return value
// is false when no capacity at all survives the filters.
func CityRate(entities []json.RawMessage, timestamp string, exclude map[string]struct{}) (float64, bool) {
	var sumAvailable, sumTotal float64
	for _, raw := range entities {
		reading, err := NewReading(raw, timestamp)
		if err != nil {
			continue
		}
		if _, excluded := exclude[reading.Name]; excluded {
			continue
		}
		sumAvailable += reading.Available
		sumTotal += reading.Total
	}
	if sumTotal <= 0 {
		return 0, false
	}
	return ClampRate((sumTotal - sumAvailable) / sumTotal), true
}

// CitySeries maps every snapshot timestamp to its city-wide occupancy rate.
func CitySeries(snapshots []journal.Snapshot, exclude map[string]struct{}) map[string]float64 {
	series := make(map[string]float64)
	for _, snapshot := range snapshots {
		if rate, ok := CityRate(snapshot.Entities, snapshot.Timestamp, exclude); ok {
			series[snapshot.Timestamp] = rate
		}
	}
	return series
}

// Latest returns the readings of the most recent snapshot.
func Latest(snapshots []journal.Snapshot) []Reading {
	if len(snapshots) == 0 {
		return nil
	}
	last := snapshots[len(snapshots)-1]
	readings := make([]Reading, 0, len(last.Entities))
	for _, raw := range last.Entities {
		reading, err := NewReading(raw, last.Timestamp)
		if err != nil {
			continue
		}
		readings = append(readings, *reading)
	}
	return readings
}
