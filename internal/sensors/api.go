package sensors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExclusionsResponse defines the structure returned by the
// /parkings/exclusions endpoint
type ExclusionsResponse struct {
	Report *Report  `json:"report,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func ExclusionsApiHandler(context *SensorsContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := context.GetReport()
		if err != nil {
			c.JSON(http.StatusOK, ExclusionsResponse{Errors: []string{err.Error()}})
			return
		}
		c.JSON(http.StatusOK, ExclusionsResponse{Report: &report})
	}
}

func AddExclusionsEntryPoint(r *gin.Engine, context *SensorsContext) {
	if r == nil {
		r = gin.New()
	}
	r.GET("/parkings/exclusions", ExclusionsApiHandler(context))
}
