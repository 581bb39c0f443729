package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nicholaihel7/hype-intelligence-backend/search"
)

// maxResultsCeiling caps the per-platform result count a client may ask for.
const maxResultsCeiling = 20

// Search returns a handler for GET /api/search.
//
// Query parameters:
//
//	q           search query (required)
//	region      "us", "eu", "tr"; default "us"
//	platforms   comma-separated platform IDs; default all in region
//	max_results per-platform cap, 1-20; default from config
func Search(svc *search.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			badRequest(c, "missing required query parameter: q")
			return
		}

		region := strings.ToLower(c.DefaultQuery("region", "us"))

		var platformIDs []string
		if raw := c.Query("platforms"); raw != "" {
			for _, id := range strings.Split(raw, ",") {
				if id = strings.TrimSpace(id); id != "" {
					platformIDs = append(platformIDs, strings.ToLower(id))
				}
			}
		}

		maxResults := 0
		if raw := c.Query("max_results"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > maxResultsCeiling {
				badRequest(c, "max_results must be an integer between 1 and 20")
				return
			}
			maxResults = n
		}

		resp, err := svc.Search(c.Request.Context(), search.Request{
			Query:      query,
			Region:     region,
			Platforms:  platformIDs,
			MaxResults: maxResults,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
