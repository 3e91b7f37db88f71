package collector

import (
	"sync"
	"time"
)

type CollectorContext struct {
	lastPollTimestamp string
	lastCarCount      int
	lastBikeCount     int
	lastPollUpdate    time.Time
	collectorMutex    sync.RWMutex
}

func (d *CollectorContext) UpdatePoll(timestamp string, carCount, bikeCount int) {
	d.collectorMutex.Lock()
	defer d.collectorMutex.Unlock()

	d.lastPollTimestamp = timestamp
	d.lastCarCount = carCount
	d.lastBikeCount = bikeCount
	d.lastPollUpdate = time.Now()
}

func (d *CollectorContext) GetLastCollectorUpdate() time.Time {
	d.collectorMutex.RLock()
	defer d.collectorMutex.RUnlock()

	return d.lastPollUpdate
}

func (d *CollectorContext) GetLastPoll() (string, int, int) {
	d.collectorMutex.RLock()
	defer d.collectorMutex.RUnlock()

	return d.lastPollTimestamp, d.lastCarCount, d.lastBikeCount
}
