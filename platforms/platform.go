// Package platforms implements the per-retailer search scrapers and the
// region registry that maps platform identifiers to them.
package platforms

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/nicholaihel7/hype-intelligence-backend/engine"
	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// Fetcher retrieves a search results page. Satisfied by the engine
// dispatcher in production and by stubs in tests.
type Fetcher interface {
	Dispatch(ctx context.Context, req *engine.FetchRequest) (*engine.FetchResult, error)
}

// Scraper is one platform's search implementation.
type Scraper interface {
	// ID returns the platform identifier (e.g. "amazon_us").
	ID() string

	// Name returns the human-readable platform name (e.g. "Amazon US").
	Name() string

	// Search runs a product search and returns up to maxResults
	// normalized results. Individual unparsable listings are skipped,
	// never reported as errors.
	Search(ctx context.Context, query string, maxResults int) ([]models.PriceResult, error)
}

// Registry groups scrapers by region and preserves registration order
// within a region.
type Registry struct {
	regions map[string][]Scraper
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{regions: make(map[string][]Scraper)}
}

// Register adds a scraper to a region. Registering the same ID twice
// replaces the earlier entry.
func (r *Registry) Register(region string, s Scraper) {
	for i, existing := range r.regions[region] {
		if existing.ID() == s.ID() {
			r.regions[region][i] = s
			return
		}
	}
	r.regions[region] = append(r.regions[region], s)
}

// Regions returns the supported region identifiers, sorted.
func (r *Registry) Regions() []string {
	out := make([]string, 0, len(r.regions))
	for region := range r.regions {
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}

// Platforms returns the scrapers of a region in registration order.
// ok is false for an unknown region.
func (r *Registry) Platforms(region string) (scrapers []Scraper, ok bool) {
	scrapers, ok = r.regions[region]
	return scrapers, ok
}

// Select resolves the scrapers to run for a search: all of a region's
// scrapers when ids is empty, otherwise the region's scrapers whose ID is
// in ids. Unknown IDs are ignored; the caller treats an empty selection as
// an input error.
func (r *Registry) Select(region string, ids []string) ([]Scraper, bool) {
	all, ok := r.regions[region]
	if !ok {
		return nil, false
	}
	if len(ids) == 0 {
		return all, true
	}

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			want[trimmed] = struct{}{}
		}
	}

	selected := make([]Scraper, 0, len(all))
	for _, s := range all {
		if _, hit := want[s.ID()]; hit {
			selected = append(selected, s)
		}
	}
	return selected, true
}

// DefaultRegistry registers every built-in platform scraper against the
// given fetcher.
func DefaultRegistry(f Fetcher) *Registry {
	r := NewRegistry()
	r.Register("us", NewAmazonUS(f))
	r.Register("us", NewWalmart(f))
	r.Register("us", NewBestBuy(f))
	r.Register("tr", NewTrendyol(f))
	r.Register("tr", NewHepsiburada(f))
	r.Register("eu", NewAmazonDE(f))
	return r
}

// fetchDoc retrieves a search page through the fetcher and parses it into
// a goquery document. The request timeout is derived from the context
// deadline so the browser fallback honors the per-search budget.
func fetchDoc(ctx context.Context, f Fetcher, rawURL string, headers map[string]string) (*goquery.Document, error) {
	req := &engine.FetchRequest{
		URL:     rawURL,
		Headers: headers,
	}
	if deadline, ok := ctx.Deadline(); ok {
		req.Timeout = time.Until(deadline)
	}

	result, err := f.Dispatch(ctx, req)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeNavigation, "failed to fetch search page", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeParse, "failed to parse search page", err)
	}
	return doc, nil
}

// absoluteURL resolves a listing href against the platform base URL.
func absoluteURL(base, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return href
}

// scrapedNow returns the UTC scrape timestamp in RFC3339 format.
func scrapedNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}
