package bikestations

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// StationResponse defines how a station reading is represented in a response
type StationResponse struct {
	Name      string  `json:"name"`
	Timestamp string  `json:"timestamp"`
	Bikes     float64 `json:"available_bikes"`
	FreeSlots float64 `json:"free_slots"`
	Total     float64 `json:"total_slots"`
	Rate      float64 `json:"dock_occupancy_rate"`
}

func StationModelToResponse(r Reading) StationResponse {
	return StationResponse{
		Name:      r.Name,
		Timestamp: r.Timestamp,
		Bikes:     r.Bikes,
		FreeSlots: r.FreeSlots,
		Total:     r.Total,
		Rate:      r.Rate,
	}
}

type ByStationResponseName []StationResponse

func (s ByStationResponseName) Len() int           { return len(s) }
func (s ByStationResponseName) Less(i, j int) bool { return s[i].Name < s[j].Name }
func (s ByStationResponseName) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// StationsResponse defines the structure returned by the /bikestations endpoint
type StationsResponse struct {
	Stations []StationResponse `json:"records,omitempty"`
	Errors   []string          `json:"errors,omitempty"`
}

func StationsApiHandler(context *StationsContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		var errStr []string

		stations, err := context.GetStations()
		if err != nil {
			errStr = append(errStr, err.Error())
		}

		stationsResp := make([]StationResponse, len(stations))
		for i, s := range stations {
			stationsResp[i] = StationModelToResponse(s)
		}
		sort.Sort(ByStationResponseName(stationsResp))
		c.JSON(http.StatusOK, StationsResponse{
			Stations: stationsResp,
			Errors:   errStr,
		})
	}
}

func AddStationsEntryPoint(r *gin.Engine, context *StationsContext) {
	if r == nil {
		r = gin.New()
	}
	r.GET("/bikestations", StationsApiHandler(context))
}
