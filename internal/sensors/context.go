package sensors

import (
	"fmt"
	"sync"
	"time"
)

type SensorsContext struct {
	report           *Report
	lastSensorUpdate time.Time
	sensorsMutex     sync.RWMutex
}

func (d *SensorsContext) UpdateReport(report Report) {
	d.sensorsMutex.Lock()
	defer d.sensorsMutex.Unlock()

	d.report = &report
	d.lastSensorUpdate = time.Now()
	ExcludedParkings.Set(float64(report.CountExcluded))
}

func (d *SensorsContext) GetLastSensorsDataUpdate() time.Time {
	d.sensorsMutex.RLock()
	defer d.sensorsMutex.RUnlock()

	return d.lastSensorUpdate
}

func (d *SensorsContext) GetReport() (Report, error) {
	d.sensorsMutex.RLock()
	defer d.sensorsMutex.RUnlock()

	if d.report == nil {
		return Report{}, fmt.Errorf("No exclusion report in the data")
	}
	return *d.report, nil
}

// GetExclusions returns the current exclusion set, empty when no detection
// ran yet.
func (d *SensorsContext) GetExclusions() map[string]struct{} {
	d.sensorsMutex.RLock()
	defer d.sensorsMutex.RUnlock()

	if d.report == nil {
		return map[string]struct{}{}
	}
	return ExclusionSet(d.report.Excluded)
}
