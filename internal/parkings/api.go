package parkings

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// ParkingResponse defines how a parking reading is represented in a response
type ParkingResponse struct {
	Name      string  `json:"name"`
	Timestamp string  `json:"timestamp"`
	Available float64 `json:"available"`
	Total     float64 `json:"total"`
	Rate      float64 `json:"occupancy_rate"`
}

// ParkingModelToResponse converts the model of a Reading into its view in the response
func ParkingModelToResponse(r Reading) ParkingResponse {
	return ParkingResponse{
		Name:      r.Name,
		Timestamp: r.Timestamp,
		Available: r.Available,
		Total:     r.Total,
		Rate:      r.Rate,
	}
}

type ByParkingResponseName []ParkingResponse

func (p ByParkingResponseName) Len() int           { return len(p) }
func (p ByParkingResponseName) Less(i, j int) bool { return p[i].Name < p[j].Name }
func (p ByParkingResponseName) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

// ParkingsResponse defines the structure returned by the /parkings endpoint
type ParkingsResponse struct {
	Parkings []ParkingResponse `json:"records,omitempty"`
	Errors   []string          `json:"errors,omitempty"`
}

func ParkingsApiHandler(context *ParkingsContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		var errStr []string

		parkings, err := context.GetParkings()
		if err != nil {
			errStr = append(errStr, err.Error())
		}

		parkingsResp := make([]ParkingResponse, len(parkings))
		for i, p := range parkings {
			parkingsResp[i] = ParkingModelToResponse(p)
		}
		sort.Sort(ByParkingResponseName(parkingsResp))
		c.JSON(http.StatusOK, ParkingsResponse{
			Parkings: parkingsResp,
			Errors:   errStr,
		})
	}
}

func AddParkingsEntryPoint(r *gin.Engine, context *ParkingsContext) {
	if r == nil {
		r = gin.New()
	}
	r.GET("/parkings", ParkingsApiHandler(context))
}
