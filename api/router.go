// Package api wires the HTTP surface: routes, middleware, and handlers.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nicholaihel7/hype-intelligence-backend/api/handler"
	"github.com/nicholaihel7/hype-intelligence-backend/api/middleware"
	"github.com/nicholaihel7/hype-intelligence-backend/config"
	"github.com/nicholaihel7/hype-intelligence-backend/platforms"
	"github.com/nicholaihel7/hype-intelligence-backend/search"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → CORS
//	API:     Auth (if enabled) → RateLimit
//
// The banner, health, and metrics endpoints are intentionally outside auth
// so monitoring probes always work.
func NewRouter(svc *search.Service, registry *platforms.Registry, stats handler.StatsFunc, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(cors.Default())

	r.GET("/", handler.Root(registry.Regions()))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")

	// Health — no auth required.
	apiGroup.GET("/health", handler.Health(stats, startTime))

	// Protected group — auth + rate limit.
	protected := apiGroup.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.GET("/search", handler.Search(svc))
	protected.GET("/platforms", handler.Platforms(registry))
	protected.GET("/history", handler.History(svc))

	return r
}
