package sensors

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
)

// The exclusion report is the audit record of a detection run: the rule
// parameters used and the flagged identifiers, exported verbatim. It carries
// nothing run-dependent so that reruns on an unchanged journal are
// byte-identical.

type Rule struct {
	MinPoints       int     `json:"min_points"`
	EpsStd          float64 `json:"eps_std"`
	RoundForUnique  int     `json:"round_for_unique"`
	MaxUniqueValues int     `json:"max_unique_values"`
}

type Report struct {
	Rule          Rule     `json:"rule"`
	CountExcluded int      `json:"count_excluded"`
	Excluded      []string `json:"excluded"`
}

func NewReport(config DetectorConfig, excluded []string) Report {
	return Report{
		Rule: Rule{
			MinPoints:       config.MinPoints,
			EpsStd:          config.EpsStd,
			RoundForUnique:  config.RoundDigits,
			MaxUniqueValues: config.MaxUniqueValues,
		},
		CountExcluded: len(excluded),
		Excluded:      excluded,
	}
}

func WriteReport(path string, report Report) error {
	content, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Impossible to serialize the exclusion report")
	}
	if err = ioutil.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, "Impossible to write the exclusion report to %s", path)
	}
	return nil
}
