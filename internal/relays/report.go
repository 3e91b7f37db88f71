package relays

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
)

// Report is the relais_pertinents.json artifact: the thresholds, the
// documented sort policy, and the truncated ranking.
type Report struct {
	MaxDistanceM  float64     `json:"max_distance_m"`
	MinPoints     int         `json:"min_points"`
	TopN          int         `json:"top_n"`
	OnlyNegative  bool        `json:"only_negative"`
	MinRelaisCorr float64     `json:"min_relais_corr"`
	Sort          string      `json:"sort"`
	CountTotal    int         `json:"count_total"`
	Items         []Candidate `json:"items"`
}

func NewReport(config Config, candidates []Candidate) Report {
	items := candidates
	if len(items) > config.TopN {
		items = items[:config.TopN]
	}
	return Report{
		MaxDistanceM:  config.MaxDistanceM,
		MinPoints:     config.MinPoints,
		TopN:          config.TopN,
		OnlyNegative:  config.OnlyNegative,
		MinRelaisCorr: config.MaxCorrForRelay,
		Sort:          config.SortPolicy(),
		CountTotal:    len(candidates),
		Items:         items,
	}
}

func WriteReport(path string, report Report) error {
	content, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Impossible to serialize the relay report")
	}
	if err = ioutil.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, "Impossible to write the relay report to %s", path)
	}
	return nil
}
