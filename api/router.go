package api

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brandsift/brandsift/api/handler"
	"github.com/brandsift/brandsift/api/middleware"
	"github.com/brandsift/brandsift/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     RateLimit
//
// Health and status endpoints are outside the rate limiter so monitoring
// probes always work. Each route is registered exactly once.
func NewRouter(ext handler.Extractor, enh handler.Enhancer, brands handler.BrandStore, db *sql.DB, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Monitoring — no rate limit.
	v1.GET("/health", handler.Health(db, startTime))
	v1.GET("/status", handler.Status(enh))

	// Protected group — rate limited.
	protected := v1.Group("")
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Analyze: scrape → enhance → persist.
	protected.POST("/analyze", handler.Analyze(ext, enh, brands))

	// Brand CRUD.
	protected.GET("/brands", handler.ListBrands(brands))
	protected.GET("/brands/:id", handler.GetBrand(brands))
	protected.PUT("/brands/:id", handler.UpdateBrand(brands))
	protected.DELETE("/brands/:id", handler.DeleteBrand(brands))

	return r
}
