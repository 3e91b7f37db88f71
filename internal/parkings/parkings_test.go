package parkings

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hove-io/relais/internal/journal"
)

func parkingEntity(name, status string, available, total float64, coords []float64) json.RawMessage {
	entity := map[string]interface{}{
		"name":                map[string]interface{}{"value": name},
		"status":              map[string]interface{}{"value": status},
		"availableSpotNumber": map[string]interface{}{"value": available},
		"totalSpotNumber":     map[string]interface{}{"value": total},
	}
	if coords != nil {
		entity["location"] = map[string]interface{}{
			"value": map[string]interface{}{"type": "Point", "coordinates": coords},
		}
	}
	raw, _ := json.Marshal(entity)
	return raw
}

func TestNewReading(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	raw := parkingEntity("Comédie", "Open", 60, 240, []float64{3.879, 43.608})
	r, err := NewReading(raw, "2026-01-05T08:00:00+01:00")
	require.Nil(err)
	require.NotNil(r)

	assert.Equal("Comédie", r.Name)
	assert.Equal("2026-01-05T08:00:00+01:00", r.Timestamp)
	assert.Equal(60.0, r.Available)
	assert.Equal(240.0, r.Total)
	assert.InDelta(0.75, r.Rate, 1e-12)
}

func TestNewReadingRejectsBadEntities(t *testing.T) {
	assert := assert.New(t)

	badEntities := []json.RawMessage{
		parkingEntity("Comédie", "Closed", 60, 240, nil),
		parkingEntity("", "Open", 60, 240, nil),
		parkingEntity("Comédie", "Open", 60, 0, nil),
		parkingEntity("Comédie", "Open", 60, -3, nil),
		json.RawMessage(`{"name": {"value": "Comédie"}, "status": {"value": "Open"},` +
			` "availableSpotNumber": {"value": "not_a_number"}, "totalSpotNumber": {"value": 240}}`),
	}

	for _, raw := range badEntities {
		r, err := NewReading(raw, "2026-01-05T08:00:00+01:00")
		assert.Error(err)
		assert.Nil(r)
	}
}

func TestNewReadingClampsGlitchedSensors(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	// more free spots than capacity
	r, err := NewReading(parkingEntity("Comédie", "Open", 300, 240, nil), "ts")
	require.Nil(err)
	assert.Equal(0.0, r.Rate)

	// negative availability counter
	r, err = NewReading(parkingEntity("Comédie", "Open", -10, 240, nil), "ts")
	require.Nil(err)
	assert.Equal(1.0, r.Rate)
}

func testSnapshots() []journal.Snapshot {
	return []journal.Snapshot{
		{
			Timestamp: "2026-01-05T08:00:00+01:00",
			Entities: []json.RawMessage{
				parkingEntity("Comédie", "Open", 60, 240, []float64{3.879, 43.608}),
				parkingEntity("Gare", "Open", 100, 200, []float64{3.880, 43.604}),
				parkingEntity("Fermé", "Closed", 10, 100, nil),
			},
		},
		{
			Timestamp: "2026-01-05T09:00:00+01:00",
			Entities: []json.RawMessage{
				parkingEntity("Comédie", "Open", 20, 240, []float64{3.879, 43.608}),
				parkingEntity("Gare", "Open", 50, 200, nil),
			},
		},
	}
}

func TestSeriesByName(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	series := SeriesByName(testSnapshots())
	require.Len(series, 2)
	require.Len(series["Comédie"], 2)
	assert.Equal("2026-01-05T08:00:00+01:00", series["Comédie"][0].Timestamp)
	assert.InDelta(0.75, series["Comédie"][0].Rate, 1e-12)
	assert.InDelta((240.0-20.0)/240.0, series["Comédie"][1].Rate, 1e-12)
	assert.NotContains(series, "Fermé")
}

func TestCoords(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	coords := Coords(testSnapshots())
	require.Contains(coords, "Comédie")
	require.Contains(coords, "Gare")
	assert.Equal(43.608, coords["Comédie"].Lat)
	assert.Equal(3.879, coords["Comédie"].Lon)
}

func TestCityRateWithExclusions(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	snapshot := testSnapshots()[0]

	rate, ok := CityRate(snapshot.Entities, snapshot.Timestamp, nil)
	require.True(ok)
	// (240+200 - 60-100) / (240+200)
	assert.InDelta(280.0/440.0, rate, 1e-12)

	rate, ok = CityRate(snapshot.Entities, snapshot.Timestamp, map[string]struct{}{"Gare": {}})
	require.True(ok)
	assert.InDelta(180.0/240.0, rate, 1e-12)

	_, ok = CityRate(snapshot.Entities, snapshot.Timestamp,
		map[string]struct{}{"Gare": {}, "Comédie": {}})
	assert.False(ok)
}

func TestCitySeries(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	series := CitySeries(testSnapshots(), nil)
	require.Len(series, 2)
	assert.InDelta(280.0/440.0, series["2026-01-05T08:00:00+01:00"], 1e-12)
	assert.InDelta(370.0/440.0, series["2026-01-05T09:00:00+01:00"], 1e-12)
}

func TestLatest(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	readings := Latest(testSnapshots())
	require.Len(readings, 2)
	assert.Equal("2026-01-05T09:00:00+01:00", readings[0].Timestamp)

	assert.Nil(Latest(nil))
}

func TestNewReferenceCoord(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	name, coord, err := NewReferenceCoord([]string{"Comédie", "43.608", "3.879"})
	require.Nil(err)
	assert.Equal("Comédie", name)
	assert.Equal(43.608, coord.Lat)
	assert.Equal(3.879, coord.Lon)

	malformedRecords := [][]string{
		{"Comédie", "43.608"},
		{"", "43.608", "3.879"},
		{"Comédie", "not_a_float", "3.879"},
		{"Comédie", "43.608", "not_a_float"},
	}
	for _, record := range malformedRecords {
		_, _, err := NewReferenceCoord(record)
		assert.Error(err)
	}
}

func TestLoadReferenceLatin1(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	// "Comédie" with a latin-1 encoded é, as published by the city
	content := []byte("nom;lat;lon\nCom\xe9die;43.608;3.879\nGare;43.604;3.880\n")
	path := filepath.Join(t.TempDir(), "reference.csv")
	require.Nil(os.WriteFile(path, content, 0644))

	uri, err := url.Parse("file://" + path)
	require.Nil(err)

	coords, err := LoadReference(*uri, time.Second)
	require.Nil(err)
	require.Len(coords, 2)
	require.Contains(coords, "Comédie")
	assert.Equal(43.608, coords["Comédie"].Lat)
}

func TestLoadReferenceEmptyURI(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	coords, err := LoadReference(url.URL{}, time.Second)
	require.Nil(err)
	assert.Empty(coords)
}

func TestLoadJournal(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "brut_voitures.jsonl")
	for _, snapshot := range testSnapshots() {
		require.Nil(journal.Append(path, snapshot))
	}

	uri, err := url.Parse(fmt.Sprintf("file://%s", path))
	require.Nil(err)
	snapshots, err := LoadJournal(*uri, time.Second)
	require.Nil(err)
	assert.Len(snapshots, 2)
}

func TestParkingsAPI(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	var parkingsContext ParkingsContext
	snapshots := testSnapshots()
	parkingsContext.UpdateParkings(Latest(snapshots), SeriesByName(snapshots), Coords(snapshots))

	c, router := gin.CreateTestContext(httptest.NewRecorder())
	AddParkingsEntryPoint(router, &parkingsContext)

	c.Request = httptest.NewRequest("GET", "/parkings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, c.Request)
	require.Equal(http.StatusOK, w.Code)

	response := ParkingsResponse{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.Nil(err)

	require.Len(response.Parkings, 2)
	require.Len(response.Errors, 0)
	assert.Equal("Comédie", response.Parkings[0].Name)
	assert.Equal("Gare", response.Parkings[1].Name)
}

func TestParkingsAPIWithoutData(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	var parkingsContext ParkingsContext

	c, router := gin.CreateTestContext(httptest.NewRecorder())
	AddParkingsEntryPoint(router, &parkingsContext)

	c.Request = httptest.NewRequest("GET", "/parkings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, c.Request)
	require.Equal(http.StatusOK, w.Code)

	response := ParkingsResponse{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.Nil(err)
	require.Len(response.Errors, 1)
	assert.Contains(response.Errors[0], "No parkings")
}
