package bikestations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hove-io/relais/internal/journal"
)

func stationEntity(address string, bikes, freeSlots, total float64, coords []float64) json.RawMessage {
	entity := map[string]interface{}{
		"address":             map[string]interface{}{"value": map[string]interface{}{"streetAddress": address}},
		"availableBikeNumber": map[string]interface{}{"value": bikes},
		"freeSlotNumber":      map[string]interface{}{"value": freeSlots},
		"totalSlotNumber":     map[string]interface{}{"value": total},
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

	raw := stationEntity("Rue de la Loge", 8, 4, 12, []float64{3.877, 43.610})
	r, err := NewReading(raw, "2026-01-05T08:00:00+01:00")
	require.Nil(err)

	assert.Equal("Rue de la Loge", r.Name)
	assert.Equal(8.0, r.Bikes)
	assert.Equal(4.0, r.FreeSlots)
	assert.Equal(12.0, r.Total)
	assert.InDelta((12.0-4.0)/12.0, r.Rate, 1e-12)
}

func TestNewReadingRejectsBadEntities(t *testing.T) {
	assert := assert.New(t)

	badEntities := []json.RawMessage{
		stationEntity("", 8, 4, 12, nil),
		stationEntity("Rue de la Loge", 8, 4, 0, nil),
		json.RawMessage(`{"address": {"value": {"streetAddress": "Rue de la Loge"}},` +
			` "totalSlotNumber": {"value": "twelve"}}`),
	}
	for _, raw := range badEntities {
		r, err := NewReading(raw, "ts")
		assert.Error(err)
		assert.Nil(r)
	}
}

func testSnapshots() []journal.Snapshot {
	return []journal.Snapshot{
		{
			Timestamp: "2026-01-05T08:00:00+01:00",
			Entities: []json.RawMessage{
				stationEntity("Rue de la Loge", 8, 4, 12, []float64{3.877, 43.610}),
				stationEntity("Place Albert 1er", 2, 8, 10, []float64{3.874, 43.613}),
			},
		},
		{
			Timestamp: "2026-01-05T09:00:00+01:00",
			Entities: []json.RawMessage{
				stationEntity("Rue de la Loge", 10, 2, 12, []float64{3.877, 43.610}),
			},
		},
	}
}

func TestSeriesByName(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	series := SeriesByName(testSnapshots())
	require.Len(series, 2)
	require.Len(series["Rue de la Loge"], 2)
	assert.InDelta((12.0-4.0)/12.0, series["Rue de la Loge"][0].Rate, 1e-12)
	assert.InDelta((12.0-2.0)/12.0, series["Rue de la Loge"][1].Rate, 1e-12)
	require.Len(series["Place Albert 1er"], 1)
}

func TestCoords(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	coords := Coords(testSnapshots())
	require.Len(coords, 2)
	assert.Equal(43.610, coords["Rue de la Loge"].Lat)
	assert.Equal(3.877, coords["Rue de la Loge"].Lon)
}

func TestMeanDockSeries(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	series := MeanDockSeries(testSnapshots())
	require.Len(series, 2)
	// mean of 8/12 and 2/10
	assert.InDelta((8.0/12.0+2.0/10.0)/2.0, series["2026-01-05T08:00:00+01:00"], 1e-12)
	assert.InDelta(10.0/12.0, series["2026-01-05T09:00:00+01:00"], 1e-12)
}

func TestMeanDockRateNoValidStation(t *testing.T) {
	assert := assert.New(t)

	_, ok := MeanDockRate([]json.RawMessage{stationEntity("x", 1, 1, 0, nil)}, "ts")
	assert.False(ok)
	_, ok = MeanDockRate(nil, "ts")
	assert.False(ok)
}

func TestStationsAPI(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	var stationsContext StationsContext
	snapshots := testSnapshots()
	stationsContext.UpdateStations(Latest(snapshots), SeriesByName(snapshots), Coords(snapshots))

	c, router := gin.CreateTestContext(httptest.NewRecorder())
	AddStationsEntryPoint(router, &stationsContext)

	c.Request = httptest.NewRequest("GET", "/bikestations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, c.Request)
	require.Equal(http.StatusOK, w.Code)

	response := StationsResponse{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.Nil(err)

	require.Len(response.Stations, 1)
	assert.Equal("Rue de la Loge", response.Stations[0].Name)
	assert.Equal(10.0, response.Stations[0].Bikes)
}
