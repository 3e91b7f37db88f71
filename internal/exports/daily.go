package exports

import (
	"encoding/csv"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ExportDaily merges every jour_*<suffix> CSV from dataDir into one JSON
// array at outPath. Each record keeps its column values as strings plus a
// fichier_source field naming the CSV it came from. An empty array is
// written when no daily file exists yet.
func ExportDaily(dataDir, suffix, outPath string) error {
	entries, err := ioutil.ReadDir(dataDir)
	if err != nil {
		return errors.Wrapf(err, "Impossible to list the daily files in %s", dataDir)
	}

	files := make([]string, 0)
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "jour_") && strings.HasSuffix(name, suffix) {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	records := make([]map[string]string, 0)
	for _, name := range files {
		fileRecords, err := readDailyCsv(filepath.Join(dataDir, name))
		if err != nil {
			logrus.Warnf("skipping unreadable daily file %s: %v", name, err)
			continue
		}
		for _, record := range fileRecords {
			record["fichier_source"] = name
			records = append(records, record)
		}
	}

	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Impossible to serialize the daily export")
	}
	if err = ioutil.WriteFile(outPath, content, 0644); err != nil {
		return errors.Wrapf(err, "Impossible to write the daily export to %s", outPath)
	}
	return nil
}

func readDailyCsv(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// the relais file carries a shorter RESUME row
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, value := range row {
			if i >= len(header) {
				break
			}
			record[header[i]] = value
		}
		records = append(records, record)
	}
	return records, nil
}
