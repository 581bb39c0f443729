// Package search runs product searches across the selected platform
// scrapers concurrently and aggregates their results.
package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nicholaihel7/hype-intelligence-backend/cache"
	"github.com/nicholaihel7/hype-intelligence-backend/config"
	"github.com/nicholaihel7/hype-intelligence-backend/metrics"
	"github.com/nicholaihel7/hype-intelligence-backend/models"
	"github.com/nicholaihel7/hype-intelligence-backend/platforms"
	"github.com/nicholaihel7/hype-intelligence-backend/simhash"
	"github.com/nicholaihel7/hype-intelligence-backend/storage"
)

// simhashThreshold is the max Hamming distance at which two product
// titles on the same platform count as the same listing.
const simhashThreshold = 3

// Request is one resolved search request.
type Request struct {
	Query      string
	Region     string
	Platforms  []string // empty means all of the region's platforms
	MaxResults int      // per platform
}

// Service fans a search out to the region's scrapers and merges the
// results. Platform failures are logged and dropped; a search only fails
// as a whole on invalid input.
type Service struct {
	registry *platforms.Registry
	cache    *cache.Cache
	store    storage.Backend // nil when history is disabled
	cfg      config.SearchConfig
	log      *slog.Logger
}

// New creates a search Service. cache and store may be nil.
func New(registry *platforms.Registry, c *cache.Cache, store storage.Backend, cfg config.SearchConfig, log *slog.Logger) *Service {
	return &Service{
		registry: registry,
		cache:    c,
		store:    store,
		cfg:      cfg,
		log:      log,
	}
}

// Search runs the request against every selected platform concurrently.
// It returns an INVALID_INPUT ScrapeError for an unsupported region or a
// platform filter that matches nothing in the region.
func (s *Service) Search(ctx context.Context, req Request) (*models.SearchResponse, error) {
	scrapers, ok := s.registry.Select(req.Region, req.Platforms)
	if !ok {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput,
			"unsupported region: "+req.Region, nil)
	}
	if len(scrapers) == 0 {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput,
			"no valid platforms for region "+req.Region, nil)
	}

	if req.MaxResults <= 0 {
		req.MaxResults = s.cfg.DefaultMaxResults
	}

	searched := make([]string, len(scrapers))
	for i, sc := range scrapers {
		searched[i] = sc.ID()
	}

	var key string
	if s.cache != nil {
		key = cache.Key(req.Query, req.Region, searched, req.MaxResults)
		if resp, hit := s.cache.Get(key); hit {
			cached := *resp
			cached.CacheStatus = "hit"
			metrics.RecordSearch(req.Region, "ok", 0)
			return &cached, nil
		}
	}

	timeout := s.cfg.Timeout
	if s.cfg.MaxTimeout > 0 && timeout > s.cfg.MaxTimeout {
		timeout = s.cfg.MaxTimeout
	}

	start := time.Now()
	searchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// One slot per scraper keeps the merged output in registration order
	// regardless of which platform answers first.
	perPlatform := make([][]models.PriceResult, len(scrapers))

	var wg sync.WaitGroup
	for i, sc := range scrapers {
		wg.Add(1)
		go func(i int, sc platforms.Scraper) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("platform scraper panicked",
						"platform", sc.ID(),
						"query", req.Query,
						"panic", r)
				}
			}()

			scrapeStart := time.Now()
			results, err := sc.Search(searchCtx, req.Query, req.MaxResults)
			metrics.RecordPlatformScrape(sc.ID(), len(results), time.Since(scrapeStart), err)
			if err != nil {
				s.log.Warn("platform scrape failed",
					"platform", sc.ID(),
					"query", req.Query,
					"error", err)
				return
			}
			perPlatform[i] = results
		}(i, sc)
	}
	wg.Wait()

	var results []models.PriceResult
	for _, batch := range perPlatform {
		if s.cfg.Dedupe {
			batch = dedupe(batch)
		}
		results = append(results, batch...)
	}
	if results == nil {
		results = []models.PriceResult{}
	}

	resp := &models.SearchResponse{
		Query:             req.Query,
		Region:            req.Region,
		PlatformsSearched: searched,
		Results:           results,
		TotalResults:      len(results),
		SearchTimeMs:      time.Since(start).Milliseconds(),
	}
	if s.cache != nil {
		resp.CacheStatus = "miss"
	}

	status := "ok"
	if len(results) == 0 {
		status = "empty"
	}
	metrics.RecordSearch(req.Region, status, time.Since(start))

	if s.cache != nil && len(results) > 0 {
		s.cache.Set(key, resp)
	}
	if s.store != nil && len(results) > 0 {
		go s.record(req.Query, req.Region, results)
	}

	return resp, nil
}

// History serves stored price observations from the configured backend.
func (s *Service) History(ctx context.Context, f storage.Filter) ([]models.PriceObservation, error) {
	if s.store == nil {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput,
			"price history storage is not configured", nil)
	}
	return s.store.Query(ctx, f)
}

// HistoryEnabled reports whether a storage backend is configured.
func (s *Service) HistoryEnabled() bool {
	return s.store != nil
}

// record persists results off the request path.
func (s *Service) record(query, region string, results []models.PriceResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.store.SaveResults(ctx, query, region, results); err != nil {
		s.log.Warn("failed to persist results", "query", query, "error", err)
	}
}

// dedupe drops near-duplicate listings within one platform's batch. Retail
// search pages repeat the same product in multiple placements; a small
// Hamming distance between title fingerprints marks a repeat.
func dedupe(batch []models.PriceResult) []models.PriceResult {
	if len(batch) < 2 {
		return batch
	}

	kept := batch[:0:0]
	seen := make([]uint64, 0, len(batch))
	for _, r := range batch {
		fp := simhash.Fingerprint(r.ProductName)
		dup := false
		for _, prev := range seen {
			if simhash.Similar(fp, prev, simhashThreshold) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen = append(seen, fp)
		kept = append(kept, r)
	}
	return kept
}
