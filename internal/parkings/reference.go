package parkings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/hove-io/relais/internal/data"
	"github.com/hove-io/relais/internal/utils"
)

// The city also publishes a static reference file for car parks
// (name;lat;lon), ISO8859-1 encoded like most of its legacy CSV exports.
// It complements the positions found in the journal for parkings that never
// carried a location attribute.

// NewReferenceCoord builds a catalog entry from one reference record
func NewReferenceCoord(record []string) (string, data.Coord, error) {
	if len(record) < 3 {
		return "", data.Coord{}, fmt.Errorf("Missing field in parking reference record")
	}
	if record[0] == "" {
		return "", data.Coord{}, fmt.Errorf("Missing name in parking reference record")
	}
	lat, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return "", data.Coord{}, err
	}
	lon, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return "", data.Coord{}, err
	}
	return record[0], data.Coord{Lat: lat, Lon: lon}, nil
}

// ReferenceLineConsumer accumulates reference coordinates from a csv file
type ReferenceLineConsumer struct {
	coords map[string]data.Coord
}

func makeReferenceLineConsumer() *ReferenceLineConsumer {
	return &ReferenceLineConsumer{
		coords: make(map[string]data.Coord),
	}
}

func (c *ReferenceLineConsumer) Consume(line []string, loc *time.Location) error {
	name, coord, err := NewReferenceCoord(line)
	if err != nil {
		return err
	}
	c.coords[name] = coord
	return nil
}

func (c *ReferenceLineConsumer) Terminate() {}

// LoadReference fetches and parses the reference file. An empty uri means no
// reference file is configured.
func LoadReference(uri url.URL, connectionTimeout time.Duration) (map[string]data.Coord, error) {
	if len(uri.String()) == 0 {
		return map[string]data.Coord{}, nil
	}

	file, err := utils.GetFile(uri, connectionTimeout)
	if err != nil {
		return nil, err
	}

	consumer := makeReferenceLineConsumer()
	err = utils.LoadDataWithOptions(file, consumer, utils.LoadDataOptions{
		Delimiter:     ';',
		NbFields:      0,
		SkipFirstLine: true, // First line is a header
		Latin1:        true,
	})
	if err != nil {
		return nil, err
	}
	return consumer.coords, nil
}
