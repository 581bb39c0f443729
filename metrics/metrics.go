package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hype_search_requests_total",
			Help: "Total number of search requests handled",
		},
		[]string{"region", "status"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hype_search_duration_seconds",
			Help:    "End-to-end duration of search requests in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"region"},
	)

	PlatformScrapesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hype_platform_scrapes_total",
			Help: "Total number of per-platform scrape attempts",
		},
		[]string{"platform", "status"},
	)

	PlatformScrapeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hype_platform_scrape_duration_seconds",
			Help:    "Duration of per-platform scrapes in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"platform"},
	)

	PlatformResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hype_platform_results_total",
			Help: "Total number of price results returned per platform",
		},
		[]string{"platform"},
	)

	EngineWinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hype_engine_wins_total",
			Help: "Fetch engine race wins by engine name",
		},
		[]string{"engine"},
	)

	BlockedResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hype_blocked_responses_total",
			Help: "Responses identified as bot-protection blocks, by vendor",
		},
		[]string{"source"},
	)
)

// RecordSearch updates the search-level metrics for one request.
func RecordSearch(region, status string, dur time.Duration) {
	SearchRequestsTotal.WithLabelValues(region, status).Inc()
	SearchDuration.WithLabelValues(region).Observe(dur.Seconds())
}

// RecordPlatformScrape updates the per-platform metrics for one scrape.
func RecordPlatformScrape(platform string, results int, dur time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	PlatformScrapesTotal.WithLabelValues(platform, status).Inc()
	PlatformScrapeDuration.WithLabelValues(platform).Observe(dur.Seconds())
	if results > 0 {
		PlatformResultsTotal.WithLabelValues(platform).Add(float64(results))
	}
}
