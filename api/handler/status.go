package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status returns the handler for GET /api/v1/status.
//
// Reports the enhancement engine's enabled/fallback state and model
// identifier, independent of any specific scrape.
func Status(enh Enhancer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, enh.Status())
	}
}
