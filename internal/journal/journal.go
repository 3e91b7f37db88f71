// Package journal reads and appends the JSONL snapshot logs produced by the
// collector. One line is one poll of an upstream feed:
//
//	{"timestamp": "2026-01-05T08:00:00+01:00", "donnees": [entity, ...]}
//
// The log is append-only with a single writer; readers skip malformed lines
// so a torn last line never breaks an analysis run.
package journal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hove-io/relais/internal/utils"
)

// A snapshot line can carry several hundred entities, way above the default
// bufio.Scanner limit.
const maxLineSize = 16 * 1024 * 1024

// Snapshot is one collected poll. Entities stay raw so that a single
// malformed entity can be dropped without losing the whole snapshot.
type Snapshot struct {
	Timestamp string            `json:"timestamp"`
	Entities  []json.RawMessage `json:"donnees"`
}

// Read decodes every well-formed snapshot line, silently skipping broken ones.
func Read(reader io.Reader) []Snapshot {
	snapshots := make([]Snapshot, 0)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var snapshot Snapshot
		if err := json.Unmarshal(line, &snapshot); err != nil {
			logrus.Debugf("Skipping malformed journal line: %s", err)
			continue
		}
		if snapshot.Timestamp == "" {
			continue
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := scanner.Err(); err != nil {
		// an oversized line or a read error truncates the journal here
		logrus.Warnf("Journal read stopped after %d snapshots: %s", len(snapshots), err)
	}
	return snapshots
}

// Load fetches a journal from a file or sftp uri. A missing local file is
// "no data yet", not an error.
func Load(uri url.URL, connectionTimeout time.Duration) ([]Snapshot, error) {
	if uri.Scheme == "file" {
		if _, err := os.Stat(uri.Path); os.IsNotExist(err) {
			return []Snapshot{}, nil
		}
	}
	file, err := utils.GetFile(uri, connectionTimeout)
	if err != nil {
		return nil, err
	}
	return Read(file), nil
}

// Append writes one snapshot line at the end of the journal, creating it if
// needed.
func Append(path string, snapshot Snapshot) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	line, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	_, err = file.Write(line)
	return err
}
