package parkings

import (
	"net/url"
	"time"

	"github.com/hove-io/relais/internal/journal"
)

// LoadJournal fetches and decodes the car park snapshot journal.
func LoadJournal(uri url.URL, connectionTimeout time.Duration) ([]journal.Snapshot, error) {
	begin := time.Now()
	snapshots, err := journal.Load(uri, connectionTimeout)
	if err != nil {
		ParkingsLoadingErrors.Inc()
		return nil, err
	}
	ParkingsLoadingDuration.Observe(time.Since(begin).Seconds())
	return snapshots, nil
}
