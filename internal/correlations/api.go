package correlations

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type GlobalResponse struct {
	Result *GlobalResult `json:"result,omitempty"`
	Errors []string      `json:"errors,omitempty"`
}

type RollingResponse struct {
	Series *Series  `json:"series,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func GlobalApiHandler(context *CorrelationsContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := context.GetGlobal()
		if err != nil {
			c.JSON(http.StatusOK, GlobalResponse{Errors: []string{err.Error()}})
			return
		}
		c.JSON(http.StatusOK, GlobalResponse{Result: &result})
	}
}

func RollingApiHandler(context *CorrelationsContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		series, err := context.GetRolling()
		if err != nil {
			c.JSON(http.StatusOK, RollingResponse{Errors: []string{err.Error()}})
			return
		}
		c.JSON(http.StatusOK, RollingResponse{Series: &series})
	}
}

func AddCorrelationsEntryPoint(r *gin.Engine, context *CorrelationsContext) {
	if r == nil {
		r = gin.New()
	}
	r.GET("/correlation", GlobalApiHandler(context))
	r.GET("/correlation/rolling", RollingApiHandler(context))
}
