// Package storage defines the optional price-history persistence backend.
// When no driver is configured the service runs without history.
package storage

import (
	"context"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// Filter narrows a history query. Zero-value fields are ignored.
type Filter struct {
	// Query matches the original search query (case-insensitive).
	Query string

	// Platform matches the platform identifier.
	Platform string

	// Limit caps the number of returned observations. Zero means the
	// backend default.
	Limit int
}

// Backend persists scraped prices and serves the history endpoint.
type Backend interface {
	// SaveResults records the results of one search.
	SaveResults(ctx context.Context, query, region string, results []models.PriceResult) error

	// Query returns stored observations, newest first.
	Query(ctx context.Context, f Filter) ([]models.PriceObservation, error)

	Close() error
}
