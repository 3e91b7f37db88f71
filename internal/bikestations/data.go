package bikestations

import (
	"encoding/json"
	"fmt"

	"github.com/hove-io/relais/internal/data"
	"github.com/hove-io/relais/internal/journal"
)

type floatAttribute struct {
	Value float64 `json:"value"`
}

type addressAttribute struct {
	Value struct {
		StreetAddress string `json:"streetAddress"`
	} `json:"value"`
}

type locationAttribute struct {
	Value struct {
		// coordinates are [lon, lat] in the source
		Coordinates []float64 `json:"coordinates"`
	} `json:"value"`
}

// StationEntity is one bike-share station as serialized by the bikestation
// endpoint. Stations have no name attribute, the street address is the
// identifier used everywhere.
type StationEntity struct {
	ID        string            `json:"id"`
	Address   addressAttribute  `json:"address"`
	Bikes     floatAttribute    `json:"availableBikeNumber"`
	FreeSlots floatAttribute    `json:"freeSlotNumber"`
	Total     floatAttribute    `json:"totalSlotNumber"`
	Location  locationAttribute `json:"location"`
}

// Reading is one dock-occupancy measurement of one station at one timestamp.
// Rate is the share of occupied docks: (total - free slots) / total.
type Reading struct {
	Name      string
	Timestamp string
	Bikes     float64
	FreeSlots float64
	Total     float64
	Rate      float64
}

func clampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}

// NewReading builds a Reading from a raw journal entity
func NewReading(raw json.RawMessage, timestamp string) (*Reading, error) {
	var entity StationEntity
	if err := json.Unmarshal(raw, &entity); err != nil {
		return nil, err
	}

	if entity.Address.Value.StreetAddress == "" {
		return nil, fmt.Errorf("Missing address in station entity")
	}
	if entity.Total.Value <= 0 {
		return nil, fmt.Errorf("Station %s has no capacity", entity.Address.Value.StreetAddress)
	}

	return &Reading{
		Name:      entity.Address.Value.StreetAddress,
		Timestamp: timestamp,
		Bikes:     entity.Bikes.Value,
		FreeSlots: entity.FreeSlots.Value,
		Total:     entity.Total.Value,
		Rate:      clampRate((entity.Total.Value - entity.FreeSlots.Value) / entity.Total.Value),
	}, nil
}

// EntityCoord extracts the WGS84 position of a raw entity, when it has one.
func EntityCoord(raw json.RawMessage) (data.Coord, bool) {
	var entity StationEntity
	if err := json.Unmarshal(raw, &entity); err != nil {
		return data.Coord{}, false
	}
	coords := entity.Location.Value.Coordinates
	if len(coords) < 2 {
		return data.Coord{}, false
	}
	return data.Coord{Lat: coords[1], Lon: coords[0]}, true
}

// SeriesByName rebuilds, for every station, its chronological dock-occupancy
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

// MeanDockRate averages the dock-occupancy rates of one snapshot. Unlike the
// car side the stations are not summed, the city bike figure is a plain mean
// over stations.
func MeanDockRate(entities []json.RawMessage, timestamp string) (float64, bool) {
	var sum float64
	var n int
	for _, raw := range entities {
		reading, err := NewReading(raw, timestamp)
		if err != nil {
			continue
		}
		sum += reading.Rate
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// MeanDockSeries maps every snapshot timestamp to the mean dock-occupancy rate.
func MeanDockSeries(snapshots []journal.Snapshot) map[string]float64 {
	series := make(map[string]float64)
	for _, snapshot := range snapshots {
		if rate, ok := MeanDockRate(snapshot.Entities, snapshot.Timestamp); ok {
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
