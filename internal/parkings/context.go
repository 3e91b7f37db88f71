package parkings

import (
	"fmt"
	"sync"
	"time"

	"github.com/hove-io/relais/internal/data"
)

type ParkingsContext struct {
	latest            []Reading
	series            map[string][]Reading
	coords            map[string]data.Coord
	lastParkingUpdate time.Time
	parkingsMutex     sync.RWMutex
}

func (d *ParkingsContext) UpdateParkings(latest []Reading, series map[string][]Reading,
	coords map[string]data.Coord) {
	d.parkingsMutex.Lock()
	defer d.parkingsMutex.Unlock()

	d.latest = latest
	d.series = series
	d.coords = coords
	d.lastParkingUpdate = time.Now()
}

func (d *ParkingsContext) GetLastParkingsDataUpdate() time.Time {
	d.parkingsMutex.RLock()
	defer d.parkingsMutex.RUnlock()

	return d.lastParkingUpdate
}

func (d *ParkingsContext) GetParkings() ([]Reading, error) {
	d.parkingsMutex.RLock()
	defer d.parkingsMutex.RUnlock()

	if d.latest == nil {
		return nil, fmt.Errorf("No parkings in the data")
	}
	readings := make([]Reading, len(d.latest))
	copy(readings, d.latest)
	return readings, nil
}

func (d *ParkingsContext) GetSeries() map[string][]Reading {
	d.parkingsMutex.RLock()
	defer d.parkingsMutex.RUnlock()

	return d.series
}

func (d *ParkingsContext) GetCoords() map[string]data.Coord {
	d.parkingsMutex.RLock()
	defer d.parkingsMutex.RUnlock()

	return d.coords
}
