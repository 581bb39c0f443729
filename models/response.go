package models

// SearchResponse is the response for GET /api/search.
type SearchResponse struct {
	// Query echoes the search query.
	Query string `json:"query"`

	// Region is the region that was searched.
	Region string `json:"region"`

	// PlatformsSearched lists the platform IDs that were queried.
	PlatformsSearched []string `json:"platforms_searched"`

	// Results holds the aggregated results from all platforms.
	Results []PriceResult `json:"results"`

	// TotalResults is len(Results).
	TotalResults int `json:"total_results"`

	// SearchTimeMs is the end-to-end search duration in milliseconds.
	SearchTimeMs int64 `json:"search_time_ms"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching disabled).
	CacheStatus string `json:"cache_status,omitempty"`
}

// ErrorResponse is the body of every non-200 API response.
type ErrorResponse struct {
	Error *ErrorDetail `json:"error"`
}

// PlatformInfo describes one registered platform.
type PlatformInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RegionPlatformsResponse is the response for GET /api/platforms?region=<r>.
type RegionPlatformsResponse struct {
	Region    string         `json:"region"`
	Platforms []PlatformInfo `json:"platforms"`
}

// AllPlatformsResponse is the response for GET /api/platforms without a
// region filter: platforms grouped by region.
type AllPlatformsResponse struct {
	Regions map[string][]PlatformInfo `json:"regions"`
}

// ServiceInfo is the response for GET /.
type ServiceInfo struct {
	Name             string   `json:"name"`
	Version          string   `json:"version"`
	Status           string   `json:"status"`
	SupportedRegions []string `json:"supported_regions"`
}

// HealthResponse is the response for GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"` // "healthy" or "degraded"
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool_stats"`
	Version   string    `json:"version"`
}

// PoolStats reports the state of the browser page pool. All fields are
// zero when the service runs HTTP-only (browser disabled or failed to
// launch).
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}

// HistoryResponse is the response for GET /api/history.
type HistoryResponse struct {
	Results []PriceObservation `json:"results"`
	Total   int                `json:"total"`
}

// PriceObservation is a stored price point from a past search.
type PriceObservation struct {
	ID          string   `json:"id"`
	Query       string   `json:"query"`
	Region      string   `json:"region"`
	Platform    string   `json:"platform"`
	ProductName string   `json:"product_name"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	URL         string   `json:"url"`
	Seller      string   `json:"seller,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"review_count,omitempty"`
	InStock     bool     `json:"in_stock"`
	ScrapedAt   string   `json:"scraped_at"`
}
