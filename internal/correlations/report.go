package correlations

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
)

func WriteGlobal(path string, result GlobalResult) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Impossible to serialize the global correlation")
	}
	if err = ioutil.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, "Impossible to write the global correlation to %s", path)
	}
	return nil
}

func WriteSeries(path string, series Series) error {
	content, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Impossible to serialize the rolling correlation series")
	}
	if err = ioutil.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, "Impossible to write the rolling correlation series to %s", path)
	}
	return nil
}
