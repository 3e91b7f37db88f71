package relays

import (
	"fmt"
	"sync"
	"time"
)

type RelaysContext struct {
	report          *Report
	lastRelayUpdate time.Time
	relaysMutex     sync.RWMutex
}

func (d *RelaysContext) UpdateReport(report Report) {
	d.relaysMutex.Lock()
	defer d.relaysMutex.Unlock()

	d.report = &report
	d.lastRelayUpdate = time.Now()
}

func (d *RelaysContext) GetLastRelaysDataUpdate() time.Time {
	d.relaysMutex.RLock()
	defer d.relaysMutex.RUnlock()

	return d.lastRelayUpdate
}

func (d *RelaysContext) GetReport() (Report, error) {
	d.relaysMutex.RLock()
	defer d.relaysMutex.RUnlock()

	if d.report == nil {
		return Report{}, fmt.Errorf("No relay ranking in the data")
	}
	return *d.report, nil
}
