package correlations

import (
	"fmt"
	"sync"
	"time"
)

type CorrelationsContext struct {
	global                *GlobalResult
	rolling               *Series
	lastCorrelationUpdate time.Time
	correlationsMutex     sync.RWMutex
}

func (d *CorrelationsContext) UpdateCorrelations(global GlobalResult, rolling Series) {
	d.correlationsMutex.Lock()
	defer d.correlationsMutex.Unlock()

	d.global = &global
	d.rolling = &rolling
	d.lastCorrelationUpdate = time.Now()
}

func (d *CorrelationsContext) GetLastCorrelationsDataUpdate() time.Time {
	d.correlationsMutex.RLock()
	defer d.correlationsMutex.RUnlock()

	return d.lastCorrelationUpdate
}

func (d *CorrelationsContext) GetGlobal() (GlobalResult, error) {
	d.correlationsMutex.RLock()
	defer d.correlationsMutex.RUnlock()

	if d.global == nil {
		return GlobalResult{}, fmt.Errorf("No correlation in the data")
	}
	return *d.global, nil
}

func (d *CorrelationsContext) GetRolling() (Series, error) {
	d.correlationsMutex.RLock()
	defer d.correlationsMutex.RUnlock()

	if d.rolling == nil {
		return Series{}, fmt.Errorf("No rolling correlation in the data")
	}
	return *d.rolling, nil
}
