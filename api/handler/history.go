package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
	"github.com/nicholaihel7/hype-intelligence-backend/search"
	"github.com/nicholaihel7/hype-intelligence-backend/storage"
)

// History returns a handler for GET /api/history, serving stored price
// observations from past searches.
//
// Query parameters:
//
//	query     filter by original search query
//	platform  filter by platform ID
//	limit     max observations, 1-500; default 100
func History(svc *search.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !svc.HistoryEnabled() {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "price history storage is not configured",
				},
			})
			return
		}

		f := storage.Filter{
			Query:    strings.TrimSpace(c.Query("query")),
			Platform: strings.ToLower(strings.TrimSpace(c.Query("platform"))),
		}
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 500 {
				badRequest(c, "limit must be an integer between 1 and 500")
				return
			}
			f.Limit = n
		}

		observations, err := svc.History(c.Request.Context(), f)
		if err != nil {
			respondError(c, err)
			return
		}
		if observations == nil {
			observations = []models.PriceObservation{}
		}

		c.JSON(http.StatusOK, models.HistoryResponse{
			Results: observations,
			Total:   len(observations),
		})
	}
}
