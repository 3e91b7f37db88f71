package bikestations

import (
	"fmt"
	"sync"
	"time"

	"github.com/hove-io/relais/internal/data"
)

type StationsContext struct {
	latest            []Reading
	series            map[string][]Reading
	coords            map[string]data.Coord
	lastStationUpdate time.Time
	stationsMutex     sync.RWMutex
}

func (d *StationsContext) UpdateStations(latest []Reading, series map[string][]Reading,
	coords map[string]data.Coord) {
	d.stationsMutex.Lock()
	defer d.stationsMutex.Unlock()

	d.latest = latest
	d.series = series
	d.coords = coords
	d.lastStationUpdate = time.Now()
}

func (d *StationsContext) GetLastStationsDataUpdate() time.Time {
	d.stationsMutex.RLock()
	defer d.stationsMutex.RUnlock()

	return d.lastStationUpdate
}

func (d *StationsContext) GetStations() ([]Reading, error) {
	d.stationsMutex.RLock()
	defer d.stationsMutex.RUnlock()

	if d.latest == nil {
		return nil, fmt.Errorf("No bike stations in the data")
	}
	readings := make([]Reading, len(d.latest))
	copy(readings, d.latest)
	return readings, nil
}

func (d *StationsContext) GetSeries() map[string][]Reading {
	d.stationsMutex.RLock()
	defer d.stationsMutex.RUnlock()

	return d.series
}

func (d *StationsContext) GetCoords() map[string]data.Coord {
	d.stationsMutex.RLock()
	defer d.stationsMutex.RUnlock()

	return d.coords
}
