package relays

import (
	"github.com/hove-io/relais/internal/utils"
)

// Instantaneous relay check, journaled by the collector at every poll: a
// parking offers a relay right now when it still has room and some station
// nearby has both bikes to take and docks to give back.

type AvailabilityConfig struct {
	RadiusM      float64
	MinFreeSpots float64
	MinBikes     float64
	MinFreeDocks float64
}

func NewAvailabilityConfig() AvailabilityConfig {
	return AvailabilityConfig{
		RadiusM:      300,
		MinFreeSpots: 30,
		MinBikes:     5,
		MinFreeDocks: 5,
	}
}

// ParkState is the instantaneous view of a located car park
type ParkState struct {
	Name      string
	FreeSpots float64
	Lat       float64
	Lon       float64
}

// StationState is the instantaneous view of a located bike station
type StationState struct {
	Name      string
	Bikes     float64
	FreeDocks float64
	Lat       float64
	Lon       float64
}

// Verdict is the relay availability of one parking at one instant
type Verdict struct {
	Parking string
	OK      bool
}

// CheckAvailability evaluates every parking against the stations within
// RadiusM. Order of verdicts follows the parking input order.
func CheckAvailability(parkings []ParkState, stations []StationState,
	config AvailabilityConfig) []Verdict {
	verdicts := make([]Verdict, 0, len(parkings))
	for _, parking := range parkings {
		parkingOK := parking.FreeSpots >= config.MinFreeSpots

		stationOK := false
		if parkingOK {
			for _, station := range stations {
				if utils.CoordDistance(parking.Lat, parking.Lon,
					station.Lat, station.Lon) > config.RadiusM {
					continue
				}
				if station.Bikes >= config.MinBikes && station.FreeDocks >= config.MinFreeDocks {
					stationOK = true
					break
				}
			}
		}

		verdicts = append(verdicts, Verdict{
			Parking: parking.Name,
			OK:      parkingOK && stationOK,
		})
	}
	return verdicts
}
