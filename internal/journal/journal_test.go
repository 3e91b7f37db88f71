package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSkipsMalformedLines(t *testing.T) {
	assert := assert.New(t)

	log := strings.Join([]string{
		`{"timestamp": "2026-01-05T08:00:00+01:00", "donnees": [{"name": {"value": "Comédie"}}]}`,
		``,
		`{"timestamp": "2026-01-05T09:00:00+01:00", "donnees": [`,
		`not json at all`,
		`{"donnees": []}`,
		`{"timestamp": "2026-01-05T10:00:00+01:00", "donnees": []}`,
	}, "\n")

	snapshots := Read(strings.NewReader(log))
	assert.Len(snapshots, 2)
	assert.Equal("2026-01-05T08:00:00+01:00", snapshots[0].Timestamp)
	assert.Equal("2026-01-05T10:00:00+01:00", snapshots[1].Timestamp)
	assert.Len(snapshots[0].Entities, 1)
}

func TestReadKeepsSnapshotsBeforeReadError(t *testing.T) {
	assert := assert.New(t)

	line := `{"timestamp": "2026-01-05T08:00:00+01:00", "donnees": []}` + "\n"
	reader := io.MultiReader(strings.NewReader(line), iotest.ErrReader(errors.New("connection reset")))

	snapshots := Read(reader)
	assert.Len(snapshots, 1)
	assert.Equal("2026-01-05T08:00:00+01:00", snapshots[0].Timestamp)
}

func TestReadEmpty(t *testing.T) {
	assert := assert.New(t)

	snapshots := Read(strings.NewReader(""))
	assert.Empty(snapshots)
}

func TestLoadMissingFileIsNoData(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	uri, err := url.Parse(fmt.Sprintf("file://%s/does_not_exist.jsonl", t.TempDir()))
	require.Nil(err)

	snapshots, err := Load(*uri, time.Second)
	require.Nil(err)
	assert.Empty(snapshots)
}

func TestAppendThenLoad(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "brut_voitures.jsonl")

	first := Snapshot{
		Timestamp: "2026-01-05T08:00:00+01:00",
		Entities:  []json.RawMessage{json.RawMessage(`{"name": {"value": "Gare"}}`)},
	}
	second := Snapshot{
		Timestamp: "2026-01-05T09:00:00+01:00",
		Entities:  []json.RawMessage{},
	}
	require.Nil(Append(path, first))
	require.Nil(Append(path, second))

	uri, err := url.Parse("file://" + path)
	require.Nil(err)
	snapshots, err := Load(*uri, time.Second)
	require.Nil(err)

	require.Len(snapshots, 2)
	assert.Equal(first.Timestamp, snapshots[0].Timestamp)
	require.Len(snapshots[0].Entities, 1)
	assert.JSONEq(`{"name": {"value": "Gare"}}`, string(snapshots[0].Entities[0]))
	assert.Equal(second.Timestamp, snapshots[1].Timestamp)
}

func TestAppendSurvivesTornLastLine(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "brut_voitures.jsonl")
	require.Nil(Append(path, Snapshot{Timestamp: "2026-01-05T08:00:00+01:00"}))

	// simulate a crash in the middle of a write
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.Nil(err)
	_, err = f.WriteString(`{"timestamp": "2026-01-05T09:`)
	require.Nil(err)
	require.Nil(f.Close())

	uri, err := url.Parse("file://" + path)
	require.Nil(err)
	snapshots, err := Load(*uri, time.Second)
	require.Nil(err)
	assert.Len(snapshots, 1)
}
