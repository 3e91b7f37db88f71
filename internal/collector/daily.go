package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hove-io/relais/internal/bikestations"
	"github.com/hove-io/relais/internal/parkings"
	"github.com/hove-io/relais/internal/relays"
)

const (
	carHeader   = "date,heure,type,nom,libres,total,taux_occupation"
	bikeHeader  = "date,heure,type,nom,velos_dispo,bornes_libres,total,taux_occupation_places"
	relayHeader = "date,heure,parking,relais_ok"
)

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'g', -1, 64)
}

// appendDailyRows opens (or creates with its header) one daily CSV and
// appends the rows of the current poll.
func appendDailyRows(path, header string, rows []string) error {
	info, err := os.Stat(path)
	needHeader := err != nil || info.Size() == 0

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	if needHeader {
		if _, err = fmt.Fprintln(file, header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if _, err = fmt.Fprintln(file, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDailyFiles(config Config, now time.Time, timestamp string,
	carEntities, bikeEntities []json.RawMessage) error {
	day := config.DayNumber(now)
	dateStr := now.Format("2006-01-02")
	hourStr := now.Format("15:04:05")

	carRows := make([]string, 0, len(carEntities)+1)
	if cityRate, ok := parkings.CityRate(carEntities, timestamp, nil); ok {
		carRows = append(carRows, fmt.Sprintf("%s,%s,VILLE,VILLE,0,0,%s", dateStr, hourStr, formatRate(cityRate)))
	}

	parkStates := make([]relays.ParkState, 0, len(carEntities))
	carReadings := make([]parkings.Reading, 0, len(carEntities))
	for _, raw := range carEntities {
		reading, err := parkings.NewReading(raw, timestamp)
		if err != nil {
			continue
		}
		carReadings = append(carReadings, *reading)
		carRows = append(carRows, fmt.Sprintf("%s,%s,PARKING,%s,%d,%d,%s",
			dateStr, hourStr, reading.Name, int(reading.Available), int(reading.Total),
			formatRate(reading.Rate)))
		if coord, ok := parkings.EntityCoord(raw); ok {
			parkStates = append(parkStates, relays.ParkState{
				Name:      reading.Name,
				FreeSpots: reading.Available,
				Lat:       coord.Lat,
				Lon:       coord.Lon,
			})
		}
	}

	bikeRows := make([]string, 0, len(bikeEntities))
	stationStates := make([]relays.StationState, 0, len(bikeEntities))
	for _, raw := range bikeEntities {
		reading, err := bikestations.NewReading(raw, timestamp)
		if err != nil {
			continue
		}
		bikeRows = append(bikeRows, fmt.Sprintf("%s,%s,STATION,%s,%d,%d,%d,%s",
			dateStr, hourStr, reading.Name, int(reading.Bikes), int(reading.FreeSlots),
			int(reading.Total), formatRate(reading.Rate)))
		if coord, ok := bikestations.EntityCoord(raw); ok {
			stationStates = append(stationStates, relays.StationState{
				Name:      reading.Name,
				Bikes:     reading.Bikes,
				FreeDocks: reading.FreeSlots,
				Lat:       coord.Lat,
				Lon:       coord.Lon,
			})
		}
	}

	verdictByName := make(map[string]bool, len(parkStates))
	for _, verdict := range relays.CheckAvailability(parkStates, stationStates, config.Availability) {
		verdictByName[verdict.Parking] = verdict.OK
	}

	relayRows := make([]string, 0, len(carReadings)+1)
	relayOK := 0
	for _, reading := range carReadings {
		ok := verdictByName[reading.Name]
		flag := 0
		if ok {
			relayOK++
			flag = 1
		}
		relayRows = append(relayRows, fmt.Sprintf("%s,%s,%s,%d", dateStr, hourStr, reading.Name, flag))
	}
	if len(relayRows) > 0 {
		ratio := float64(relayOK) / float64(len(relayRows))
		relayRows = append(relayRows, fmt.Sprintf("%s,%s,RESUME,%s", dateStr, hourStr, formatRate(ratio)))
	}

	carPath := filepath.Join(config.DataDir, fmt.Sprintf("jour_%d_voiture.csv", day))
	if err := appendDailyRows(carPath, carHeader, carRows); err != nil {
		return err
	}
	bikePath := filepath.Join(config.DataDir, fmt.Sprintf("jour_%d_velo.csv", day))
	if err := appendDailyRows(bikePath, bikeHeader, bikeRows); err != nil {
		return err
	}
	relayPath := filepath.Join(config.DataDir, fmt.Sprintf("jour_%d_relais.csv", day))
	return appendDailyRows(relayPath, relayHeader, relayRows)
}
