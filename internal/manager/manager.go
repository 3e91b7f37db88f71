package manager

import (
	"github.com/hove-io/relais/internal/bikestations"
	"github.com/hove-io/relais/internal/collector"
	"github.com/hove-io/relais/internal/correlations"
	"github.com/hove-io/relais/internal/parkings"
	"github.com/hove-io/relais/internal/relays"
	"github.com/hove-io/relais/internal/sensors"
)

// Data manager for all apis
type DataManager struct {
	parkingsContext     *parkings.ParkingsContext
	stationsContext     *bikestations.StationsContext
	sensorsContext      *sensors.SensorsContext
	relaysContext       *relays.RelaysContext
	correlationsContext *correlations.CorrelationsContext
	collectorContext    *collector.CollectorContext
}

func (d *DataManager) SetParkingsContext(parkingsContext *parkings.ParkingsContext) {
	d.parkingsContext = parkingsContext
}

func (d *DataManager) GetParkingsContext() *parkings.ParkingsContext {
	return d.parkingsContext
}

func (d *DataManager) SetStationsContext(stationsContext *bikestations.StationsContext) {
	d.stationsContext = stationsContext
}

func (d *DataManager) GetStationsContext() *bikestations.StationsContext {
	return d.stationsContext
}

func (d *DataManager) SetSensorsContext(sensorsContext *sensors.SensorsContext) {
	d.sensorsContext = sensorsContext
}

func (d *DataManager) GetSensorsContext() *sensors.SensorsContext {
	return d.sensorsContext
}

func (d *DataManager) SetRelaysContext(relaysContext *relays.RelaysContext) {
	d.relaysContext = relaysContext
}

func (d *DataManager) GetRelaysContext() *relays.RelaysContext {
	return d.relaysContext
}

func (d *DataManager) SetCorrelationsContext(correlationsContext *correlations.CorrelationsContext) {
	d.correlationsContext = correlationsContext
}

func (d *DataManager) GetCorrelationsContext() *correlations.CorrelationsContext {
	return d.correlationsContext
}

func (d *DataManager) SetCollectorContext(collectorContext *collector.CollectorContext) {
	d.collectorContext = collectorContext
}

func (d *DataManager) GetCollectorContext() *collector.CollectorContext {
	return d.collectorContext
}
