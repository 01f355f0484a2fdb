package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brandsift/brandsift/models"
)

// Pinger is the minimal health-check surface of the database handle.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health returns the handler for GET /api/v1/health.
//
// Degrades status when the database is unreachable; the process itself is
// still serving, so this never returns a non-200.
func Health(db Pinger, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		database := "ok"

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			status = "degraded"
			database = "unreachable"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:   status,
			Uptime:   time.Since(startTime).Round(time.Second).String(),
			Database: database,
			Version:  "0.1.0",
		})
	}
}
