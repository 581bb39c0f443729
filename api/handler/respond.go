package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// Version is reported by the root and health endpoints.
const Version = "0.1.0"

// respondError maps an internal error to an HTTP status and a structured
// error body.
func respondError(c *gin.Context, err error) {
	var se *models.ScrapeError
	if !errors.As(err, &se) {
		se = models.NewScrapeError(models.ErrCodeInternal, "internal error", err)
	}

	status := http.StatusInternalServerError
	switch se.Code {
	case models.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case models.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case models.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case models.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	c.JSON(status, models.ErrorResponse{Error: se.ToDetail()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeInvalidInput,
			Message: message,
		},
	})
}
