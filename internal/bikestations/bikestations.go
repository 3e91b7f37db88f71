package bikestations

import (
	"net/url"
	"time"

	"github.com/hove-io/relais/internal/journal"
)

// LoadJournal fetches and decodes the bike station snapshot journal.
func LoadJournal(uri url.URL, connectionTimeout time.Duration) ([]journal.Snapshot, error) {
	begin := time.Now()
	snapshots, err := journal.Load(uri, connectionTimeout)
	if err != nil {
		StationsLoadingErrors.Inc()
		return nil, err
	}
	StationsLoadingDuration.Observe(time.Since(begin).Seconds())
	return snapshots, nil
}
