// Package analyzer recomputes every derived artifact from the snapshot
// journals: the stuck-sensor exclusions, the city occupancy series, the
// car/bike correlations, the relay ranking and the web exports. Each run is
// stateless and rebuilds everything from scratch.
package analyzer

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hove-io/relais/internal/bikestations"
	"github.com/hove-io/relais/internal/correlations"
	"github.com/hove-io/relais/internal/data"
	"github.com/hove-io/relais/internal/exports"
	"github.com/hove-io/relais/internal/journal"
	"github.com/hove-io/relais/internal/manager"
	"github.com/hove-io/relais/internal/parkings"
	"github.com/hove-io/relais/internal/relays"
	"github.com/hove-io/relais/internal/sensors"
)

const (
	ExclusionReportFile   = "parkings_exclus.json"
	RelayReportFile       = "relais_pertinents.json"
	GlobalCorrelationFile = "correlation_global.json"
	RollingSeriesFile     = "corr_voiture_velo.json"
	CatalogFile           = "catalog.json"

	SeriesDir       = "series"
	GlobalSeriesDir = "series_global"
)

type Config struct {
	CarJournalURI     url.URL
	BikeJournalURI    url.URL
	ReferenceURI      url.URL
	OutputDir         string
	Refresh           time.Duration
	ConnectionTimeout time.Duration
	Detector          sensors.DetectorConfig
	Relays            relays.Config
	RollingWindow     int
}

func NewConfig() Config {
	return Config{
		Refresh:           time.Hour,
		ConnectionTimeout: 10 * time.Second,
		Detector:          sensors.NewDetectorConfig(),
		Relays:            relays.NewConfig(),
		RollingWindow:     correlations.DefaultRollingWindow,
	}
}

func RefreshAnalysisLoop(dataManager *manager.DataManager, config Config) {
	if len(config.CarJournalURI.String()) == 0 || config.Refresh.Seconds() <= 0 {
		logrus.Debug("Analysis refreshing is disabled")
		return
	}

	// Let the collector journal its first snapshot before analysing
	time.Sleep(10 * time.Second)
	for {
		err := RunAnalysis(dataManager, config)
		if err != nil {
			AnalysisErrors.Inc()
			logrus.Error("Error while refreshing the analysis: ", err)
		}
		logrus.Debug("Analysis artifacts updated")
		time.Sleep(config.Refresh)
	}
}

// rateValues projects a reading series onto its chronological rate values.
func rateValues(readings []parkings.Reading) []float64 {
	values := make([]float64, 0, len(readings))
	for _, reading := range readings {
		values = append(values, reading.Rate)
	}
	return values
}

func parkingRateByTimestamp(readings []parkings.Reading) map[string]float64 {
	series := make(map[string]float64, len(readings))
	for _, reading := range readings {
		series[reading.Timestamp] = reading.Rate
	}
	return series
}

func stationRateByTimestamp(readings []bikestations.Reading) map[string]float64 {
	series := make(map[string]float64, len(readings))
	for _, reading := range readings {
		series[reading.Timestamp] = reading.Rate
	}
	return series
}

// RunAnalysis performs one full recomputation and refreshes every context.
func RunAnalysis(dataManager *manager.DataManager, config Config) error {
	begin := time.Now()

	carSnapshots, err := parkings.LoadJournal(config.CarJournalURI, config.ConnectionTimeout)
	if err != nil {
		return err
	}
	bikeSnapshots, err := bikestations.LoadJournal(config.BikeJournalURI, config.ConnectionTimeout)
	if err != nil {
		return err
	}

	carSeries := parkings.SeriesByName(carSnapshots)
	carCoords := parkings.Coords(carSnapshots)
	if len(config.ReferenceURI.String()) > 0 {
		reference, err := parkings.LoadReference(config.ReferenceURI, config.ConnectionTimeout)
		if err != nil {
			return err
		}
		// the curated reference file wins over journal positions
		for name, coord := range reference {
			carCoords[name] = coord
		}
	}

	bikeSeries := bikestations.SeriesByName(bikeSnapshots)
	bikeCoords := bikestations.Coords(bikeSnapshots)

	if err = os.MkdirAll(filepath.Join(config.OutputDir, SeriesDir), 0755); err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Join(config.OutputDir, GlobalSeriesDir), 0755); err != nil {
		return err
	}

	// 1. stuck sensors, first so the exclusions shape every aggregate below
	detectorInput := make(map[string][]float64, len(carSeries))
	for name, readings := range carSeries {
		detectorInput[name] = rateValues(readings)
	}
	excluded := config.Detector.Detect(detectorInput)
	exclusionReport := sensors.NewReport(config.Detector, excluded)
	if err = sensors.WriteReport(filepath.Join(config.OutputDir, ExclusionReportFile), exclusionReport); err != nil {
		return err
	}
	exclusions := sensors.ExclusionSet(excluded)

	// 2. city series and correlations
	citySeries := parkings.CitySeries(carSnapshots, exclusions)
	dockSeries := bikestations.MeanDockSeries(bikeSnapshots)

	correlationsBegin := time.Now()
	global := correlations.Global(citySeries, dockSeries)
	rolling := correlations.Rolling(citySeries, dockSeries, config.RollingWindow)
	correlations.CorrelationsComputeDuration.Observe(time.Since(correlationsBegin).Seconds())
	if err = correlations.WriteGlobal(filepath.Join(config.OutputDir, GlobalCorrelationFile), global); err != nil {
		correlations.CorrelationsComputeErrors.Inc()
		return err
	}
	if err = correlations.WriteSeries(filepath.Join(config.OutputDir, GlobalSeriesDir, RollingSeriesFile), rolling); err != nil {
		correlations.CorrelationsComputeErrors.Inc()
		return err
	}

	// 3. relay ranking
	relaysBegin := time.Now()
	relayReport, err := computeRelays(carSeries, carCoords, bikeSeries, bikeCoords, config.Relays)
	if err != nil {
		relays.RelaysComputeErrors.Inc()
		return err
	}
	relays.RelaysComputeDuration.Observe(time.Since(relaysBegin).Seconds())
	if err = relays.WriteReport(filepath.Join(config.OutputDir, RelayReportFile), *relayReport); err != nil {
		relays.RelaysComputeErrors.Inc()
		return err
	}

	// 4. web exports
	if err = writeExports(config, carSeries, carCoords, bikeSeries, bikeCoords); err != nil {
		return err
	}

	updateContexts(dataManager, carSnapshots, carSeries, carCoords,
		bikeSnapshots, bikeSeries, bikeCoords, exclusionReport, *relayReport, global, rolling)

	AnalysisDuration.Observe(time.Since(begin).Seconds())
	return nil
}

func computeRelays(carSeries map[string][]parkings.Reading, carCoords map[string]data.Coord,
	bikeSeries map[string][]bikestations.Reading, bikeCoords map[string]data.Coord,
	config relays.Config) (*relays.Report, error) {

	parkEntities := make([]relays.Entity, 0, len(carSeries))
	for name, readings := range carSeries {
		coord, ok := carCoords[name]
		if !ok {
			continue
		}
		parkEntities = append(parkEntities, relays.Entity{
			Name:   name,
			Lat:    coord.Lat,
			Lon:    coord.Lon,
			Series: parkingRateByTimestamp(readings),
		})
	}

	stationEntities := make([]relays.Entity, 0, len(bikeSeries))
	for name, readings := range bikeSeries {
		coord, ok := bikeCoords[name]
		if !ok {
			continue
		}
		stationEntities = append(stationEntities, relays.Entity{
			Name:   name,
			Lat:    coord.Lat,
			Lon:    coord.Lon,
			Series: stationRateByTimestamp(readings),
		})
	}

	candidates, err := relays.Match(parkEntities, stationEntities, config)
	if err != nil {
		return nil, err
	}
	report := relays.NewReport(config, candidates)
	return &report, nil
}

func writeExports(config Config, carSeries map[string][]parkings.Reading, carCoords map[string]data.Coord,
	bikeSeries map[string][]bikestations.Reading, bikeCoords map[string]data.Coord) error {

	seriesDir := filepath.Join(config.OutputDir, SeriesDir)
	catalog := exports.Catalog{Parkings: []exports.CatalogEntry{}, Stations: []exports.CatalogEntry{}}

	for name, readings := range carSeries {
		coord, ok := carCoords[name]
		if !ok {
			continue
		}
		filename, err := exports.WriteEntitySeries(seriesDir, "parking", name, parkingRateByTimestamp(readings))
		if err != nil {
			return err
		}
		if filename == "" {
			continue
		}
		catalog.Parkings = append(catalog.Parkings, exports.CatalogEntry{
			Name:   name,
			Lat:    coord.Lat,
			Lon:    coord.Lon,
			Series: filepath.Join(SeriesDir, filename),
		})
	}

	for name, readings := range bikeSeries {
		coord, ok := bikeCoords[name]
		if !ok {
			continue
		}
		filename, err := exports.WriteEntitySeries(seriesDir, "velo", name, stationRateByTimestamp(readings))
		if err != nil {
			return err
		}
		if filename == "" {
			continue
		}
		catalog.Stations = append(catalog.Stations, exports.CatalogEntry{
			Name:   name,
			Lat:    coord.Lat,
			Lon:    coord.Lon,
			Series: filepath.Join(SeriesDir, filename),
		})
	}

	if err := exports.WriteCatalog(filepath.Join(config.OutputDir, CatalogFile), catalog); err != nil {
		return err
	}

	if err := exports.ExportDaily(config.OutputDir, "_voiture.csv",
		filepath.Join(config.OutputDir, "export_voitures.json")); err != nil {
		return err
	}
	if err := exports.ExportDaily(config.OutputDir, "_velo.csv",
		filepath.Join(config.OutputDir, "export_velos.json")); err != nil {
		return err
	}
	return exports.ExportDaily(config.OutputDir, "_relais.csv",
		filepath.Join(config.OutputDir, "export_relais.json"))
}

func updateContexts(dataManager *manager.DataManager,
	carSnapshots []journal.Snapshot, carSeries map[string][]parkings.Reading, carCoords map[string]data.Coord,
	bikeSnapshots []journal.Snapshot, bikeSeries map[string][]bikestations.Reading, bikeCoords map[string]data.Coord,
	exclusionReport sensors.Report, relayReport relays.Report,
	global correlations.GlobalResult, rolling correlations.Series) {

	if context := dataManager.GetParkingsContext(); context != nil {
		context.UpdateParkings(parkings.Latest(carSnapshots), carSeries, carCoords)
	}
	if context := dataManager.GetStationsContext(); context != nil {
		context.UpdateStations(bikestations.Latest(bikeSnapshots), bikeSeries, bikeCoords)
	}
	if context := dataManager.GetSensorsContext(); context != nil {
		context.UpdateReport(exclusionReport)
	}
	if context := dataManager.GetRelaysContext(); context != nil {
		context.UpdateReport(relayReport)
	}
	if context := dataManager.GetCorrelationsContext(); context != nil {
		context.UpdateCorrelations(global, rolling)
	}
}
