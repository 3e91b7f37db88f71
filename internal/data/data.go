package data

import "time"

// A LineConsumer builds domain objects from the records of a csv file
type LineConsumer interface {
	Consume(line []string, loc *time.Location) error
	Terminate()
}

// Coord is a WGS84 position shared by every entity catalog
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
