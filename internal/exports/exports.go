// Package exports materializes the artifacts consumed by the static web
// pages: per-entity occupancy series, the entity catalog, and the merged
// daily CSV exports.
package exports

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type Point struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

type EntitySeries struct {
	Title  string  `json:"title"`
	Points []Point `json:"points"`
}

type CatalogEntry struct {
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Series string  `json:"series"`
}

// Catalog indexes every exported series so the detail pages can find them.
type Catalog struct {
	Parkings []CatalogEntry `json:"parkings"`
	Stations []CatalogEntry `json:"stations"`
}

var forbiddenFilenameChars = []string{"/", "\\", ":", "?", "*", "\"", "'"}

// SlugName sanitizes an entity name into a safe filename fragment.
func SlugName(name string) string {
	for _, ch := range forbiddenFilenameChars {
		name = strings.ReplaceAll(name, ch, "_")
	}
	return name
}

// WriteEntitySeries writes one {title, points} file for an entity series and
// returns the filename, or "" when the series is empty.
func WriteEntitySeries(dir, prefix, name string, series map[string]float64) (string, error) {
	if len(series) == 0 {
		return "", nil
	}

	timestamps := make([]string, 0, len(series))
	for ts := range series {
		timestamps = append(timestamps, ts)
	}
	sort.Strings(timestamps)

	points := make([]Point, 0, len(timestamps))
	for _, ts := range timestamps {
		points = append(points, Point{Timestamp: ts, Value: series[ts]})
	}

	content, err := json.MarshalIndent(EntitySeries{Title: name, Points: points}, "", "  ")
	if err != nil {
		return "", errors.Wrapf(err, "Impossible to serialize the series of %s", name)
	}

	filename := fmt.Sprintf("%s_%s.json", prefix, SlugName(name))
	if err = ioutil.WriteFile(filepath.Join(dir, filename), content, 0644); err != nil {
		return "", errors.Wrapf(err, "Impossible to write the series of %s", name)
	}
	return filename, nil
}

func WriteCatalog(path string, catalog Catalog) error {
	if catalog.Parkings == nil {
		catalog.Parkings = []CatalogEntry{}
	}
	if catalog.Stations == nil {
		catalog.Stations = []CatalogEntry{}
	}
	content, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Impossible to serialize the catalog")
	}
	if err = ioutil.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, "Impossible to write the catalog to %s", path)
	}
	return nil
}
