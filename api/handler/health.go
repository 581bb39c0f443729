package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// StatsFunc reports browser page pool utilisation. A nil StatsFunc means
// the service runs HTTP-only.
type StatsFunc func() models.PoolStats

// Health returns a handler for GET /api/health.
//
// Reports pool utilisation and degrades status when > 80% of pages are active.
func Health(stats StatsFunc, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pool models.PoolStats
		if stats != nil {
			pool = stats()
		}

		status := "healthy"
		if pool.MaxPages > 0 && pool.ActivePages > int(float64(pool.MaxPages)*0.8) {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			PoolStats: pool,
			Version:   Version,
		})
	}
}

// Root returns a handler for GET /, the service banner.
func Root(regions []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ServiceInfo{
			Name:             "Hype Intelligence Price API",
			Version:          Version,
			Status:           "running",
			SupportedRegions: regions,
		})
	}
}
