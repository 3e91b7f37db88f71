// Package collector polls the two open-data feeds, journals every snapshot
// to the JSONL logs and appends the hourly rows to the daily CSV files.
package collector

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hove-io/relais/internal/journal"
	"github.com/hove-io/relais/internal/relays"
)

const (
	CarJournalFile  = "brut_voitures.jsonl"
	BikeJournalFile = "brut_velos.jsonl"
)

type Config struct {
	CarURI            url.URL
	BikeURI           url.URL
	DataDir           string
	Refresh           time.Duration
	ConnectionTimeout time.Duration
	StartDate         time.Time
	Location          *time.Location
	Availability      relays.AvailabilityConfig
}

func NewConfig() Config {
	return Config{
		Refresh:           time.Hour,
		ConnectionTimeout: 10 * time.Second,
		Location:          time.UTC,
		Availability:      relays.NewAvailabilityConfig(),
	}
}

// DayNumber is the 1-based index of a poll day relative to the campaign
// start date, used to name the daily CSV files. Calendar dates are taken in
// the campaign location but counted in UTC, so a DST transition day still
// counts as one full day.
func (c *Config) DayNumber(now time.Time) int {
	start := c.StartDate.In(c.Location)
	local := now.In(c.Location)
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return int(nowDay.Sub(startDay).Hours()/24) + 1
}

func CallHttpClient(uri string, connectionTimeout time.Duration) (*http.Response, error) {
	client := &http.Client{Timeout: connectionTimeout}
	req, err := http.NewRequest("GET", uri, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	return client.Do(req)
}

// FetchEntities downloads one feed and returns its raw entity list.
func FetchEntities(uri url.URL, connectionTimeout time.Duration) ([]json.RawMessage, error) {
	resp, err := CallHttpClient(uri.String(), connectionTimeout)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s answered %s", uri.String(), resp.Status)
	}

	entities := make([]json.RawMessage, 0)
	decoder := json.NewDecoder(resp.Body)
	if err = decoder.Decode(&entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func RefreshCollectLoop(context *CollectorContext, config Config) {
	if len(config.CarURI.String()) == 0 || config.Refresh.Seconds() <= 0 {
		logrus.Debug("Collection is disabled")
		return
	}

	for {
		err := Collect(context, config)
		if err != nil {
			CollectErrors.Inc()
			logrus.Error("Error while collecting snapshots: ", err)
		}
		logrus.Debug("Snapshot collected")
		time.Sleep(config.Refresh)
	}
}

// Collect performs one poll of both feeds: journal append + daily CSV rows.
func Collect(context *CollectorContext, config Config) error {
	begin := time.Now()
	now := begin.In(config.Location)
	timestamp := now.Format(time.RFC3339)

	carEntities, err := FetchEntities(config.CarURI, config.ConnectionTimeout)
	if err != nil {
		return err
	}
	bikeEntities, err := FetchEntities(config.BikeURI, config.ConnectionTimeout)
	if err != nil {
		return err
	}

	carSnapshot := journal.Snapshot{Timestamp: timestamp, Entities: carEntities}
	if err = journal.Append(filepath.Join(config.DataDir, CarJournalFile), carSnapshot); err != nil {
		return err
	}
	bikeSnapshot := journal.Snapshot{Timestamp: timestamp, Entities: bikeEntities}
	if err = journal.Append(filepath.Join(config.DataDir, BikeJournalFile), bikeSnapshot); err != nil {
		return err
	}

	if err = writeDailyFiles(config, now, timestamp, carEntities, bikeEntities); err != nil {
		return err
	}

	context.UpdatePoll(timestamp, len(carEntities), len(bikeEntities))
	CollectDuration.Observe(time.Since(begin).Seconds())
	return nil
}
