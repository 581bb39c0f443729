package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
	"github.com/nicholaihel7/hype-intelligence-backend/platforms"
)

// Platforms returns a handler for GET /api/platforms.
//
// With ?region=<r> it lists that region's platforms; without it, all
// platforms grouped by region.
func Platforms(registry *platforms.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := strings.ToLower(c.Query("region"))

		if region != "" {
			scrapers, ok := registry.Platforms(region)
			if !ok {
				badRequest(c, "unsupported region: "+region)
				return
			}
			c.JSON(http.StatusOK, models.RegionPlatformsResponse{
				Region:    region,
				Platforms: platformInfos(scrapers),
			})
			return
		}

		regions := make(map[string][]models.PlatformInfo)
		for _, r := range registry.Regions() {
			scrapers, _ := registry.Platforms(r)
			regions[r] = platformInfos(scrapers)
		}
		c.JSON(http.StatusOK, models.AllPlatformsResponse{Regions: regions})
	}
}

func platformInfos(scrapers []platforms.Scraper) []models.PlatformInfo {
	infos := make([]models.PlatformInfo, len(scrapers))
	for i, s := range scrapers {
		infos[i] = models.PlatformInfo{ID: s.ID(), Name: s.Name()}
	}
	return infos
}
