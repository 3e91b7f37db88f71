package relays

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RelaysResponse defines the structure returned by the /relays endpoint
type RelaysResponse struct {
	Report *Report  `json:"report,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func RelaysApiHandler(context *RelaysContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := context.GetReport()
		if err != nil {
			c.JSON(http.StatusOK, RelaysResponse{Errors: []string{err.Error()}})
			return
		}
		c.JSON(http.StatusOK, RelaysResponse{Report: &report})
	}
}

func AddRelaysEntryPoint(r *gin.Engine, context *RelaysContext) {
	if r == nil {
		r = gin.New()
	}
	r.GET("/relays", RelaysApiHandler(context))
}
