package platforms

import (
	"context"
	"errors"
	"testing"

	"github.com/nicholaihel7/hype-intelligence-backend/engine"
	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// stubFetcher serves canned HTML to the scrapers under test and records
// the last request for header/URL assertions.
type stubFetcher struct {
	html    string
	err     error
	lastReq *engine.FetchRequest
}

func (s *stubFetcher) Dispatch(_ context.Context, req *engine.FetchRequest) (*engine.FetchResult, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &engine.FetchResult{HTML: s.html, StatusCode: 200, EngineName: "stub"}, nil
}

type namedScraper struct {
	id string
}

func (n *namedScraper) ID() string   { return n.id }
func (n *namedScraper) Name() string { return n.id }
func (n *namedScraper) Search(context.Context, string, int) ([]models.PriceResult, error) {
	return nil, nil
}

func TestRegistryRegions(t *testing.T) {
	r := DefaultRegistry(&stubFetcher{})

	regions := r.Regions()
	want := []string{"eu", "tr", "us"}
	if len(regions) != len(want) {
		t.Fatalf("Regions() = %v, want %v", regions, want)
	}
	for i := range want {
		if regions[i] != want[i] {
			t.Fatalf("Regions() = %v, want %v", regions, want)
		}
	}
}

func TestRegistryPlatforms(t *testing.T) {
	r := DefaultRegistry(&stubFetcher{})

	us, ok := r.Platforms("us")
	if !ok || len(us) != 3 {
		t.Fatalf("Platforms(us) = %d scrapers, ok=%v; want 3, true", len(us), ok)
	}
	if us[0].ID() != "amazon_us" {
		t.Errorf("first us scraper = %q, want amazon_us", us[0].ID())
	}

	if _, ok := r.Platforms("jp"); ok {
		t.Error("Platforms(jp) ok, want unknown region")
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register("us", &namedScraper{id: "a"})
	r.Register("us", &namedScraper{id: "b"})
	r.Register("us", &namedScraper{id: "a"})

	scrapers, _ := r.Platforms("us")
	if len(scrapers) != 2 {
		t.Fatalf("got %d scrapers after duplicate register, want 2", len(scrapers))
	}
}

func TestRegistrySelect(t *testing.T) {
	r := DefaultRegistry(&stubFetcher{})

	all, ok := r.Select("us", nil)
	if !ok || len(all) != 3 {
		t.Fatalf("Select(us, nil) = %d, ok=%v; want 3, true", len(all), ok)
	}

	some, ok := r.Select("us", []string{"walmart", "nonexistent"})
	if !ok || len(some) != 1 || some[0].ID() != "walmart" {
		t.Fatalf("Select(us, [walmart nonexistent]) = %v, ok=%v", some, ok)
	}

	none, ok := r.Select("us", []string{"trendyol"})
	if !ok || len(none) != 0 {
		t.Fatalf("Select(us, [trendyol]) = %d scrapers, want 0", len(none))
	}

	if _, ok := r.Select("jp", nil); ok {
		t.Error("Select(jp) ok, want unknown region")
	}
}

func TestFetchDocNavigationError(t *testing.T) {
	f := &stubFetcher{err: errors.New("connection refused")}

	_, err := fetchDoc(context.Background(), f, "https://example.com/s", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var se *models.ScrapeError
	if !errors.As(err, &se) || se.Code != models.ErrCodeNavigation {
		t.Fatalf("err = %v, want ScrapeError with code %s", err, models.ErrCodeNavigation)
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://www.amazon.com", "/dp/B0TEST", "https://www.amazon.com/dp/B0TEST"},
		{"https://www.amazon.com", "https://other.example/x", "https://other.example/x"},
		{"https://www.amazon.com", "", ""},
	}
	for _, tt := range tests {
		if got := absoluteURL(tt.base, tt.href); got != tt.want {
			t.Errorf("absoluteURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}
