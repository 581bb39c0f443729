package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
	"github.com/nicholaihel7/hype-intelligence-backend/storage"
)

func newTestBackend(t *testing.T) storage.Backend {
	t.Helper()
	b, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestSaveAndQuery(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	rating := 4.6
	reviews := 1234
	results := []models.PriceResult{
		{
			Platform:    "amazon_us",
			ProductName: "Wireless Headphones",
			Price:       199.99,
			Currency:    "$",
			URL:         "https://www.amazon.com/dp/B0TEST",
			Seller:      "Acme Audio",
			Rating:      &rating,
			ReviewCount: &reviews,
			InStock:     true,
			ScrapedAt:   "2026-08-26T10:00:00Z",
		},
		{
			Platform:    "walmart",
			ProductName: "Budget Headphones",
			Price:       39.99,
			Currency:    "$",
			URL:         "https://www.walmart.com/ip/123",
			InStock:     true,
			ScrapedAt:   "2026-08-26T10:00:01Z",
		},
	}

	if err := b.SaveResults(ctx, "headphones", "us", results); err != nil {
		t.Fatalf("SaveResults: %v", err)
	}

	got, err := b.Query(ctx, storage.Filter{Query: "headphones"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d observations, want 2", len(got))
	}

	// Newest first.
	if got[0].Platform != "walmart" {
		t.Errorf("first observation = %q, want walmart", got[0].Platform)
	}

	obs := got[1]
	if obs.ID == "" {
		t.Error("observation ID is empty")
	}
	if obs.Query != "headphones" || obs.Region != "us" {
		t.Errorf("query/region = %q/%q", obs.Query, obs.Region)
	}
	if obs.Seller != "Acme Audio" {
		t.Errorf("seller = %q", obs.Seller)
	}
	if obs.Rating == nil || *obs.Rating != 4.6 {
		t.Errorf("rating = %v, want 4.6", obs.Rating)
	}
	if obs.ReviewCount == nil || *obs.ReviewCount != 1234 {
		t.Errorf("review count = %v, want 1234", obs.ReviewCount)
	}

	// Nullable fields stay nil when absent.
	if got[0].Rating != nil || got[0].ReviewCount != nil || got[0].Seller != "" {
		t.Errorf("optional fields populated unexpectedly: %+v", got[0])
	}
}

func TestQueryFilters(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	save := func(query, platform string, price float64) {
		t.Helper()
		err := b.SaveResults(ctx, query, "us", []models.PriceResult{{
			Platform:    platform,
			ProductName: query,
			Price:       price,
			Currency:    "$",
			InStock:     true,
			ScrapedAt:   "2026-08-26T10:00:00Z",
		}})
		if err != nil {
			t.Fatalf("SaveResults: %v", err)
		}
	}
	save("laptop", "amazon_us", 999)
	save("laptop", "bestbuy", 949)
	save("mouse", "amazon_us", 25)

	byPlatform, err := b.Query(ctx, storage.Filter{Platform: "amazon_us"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byPlatform) != 2 {
		t.Errorf("platform filter: got %d, want 2", len(byPlatform))
	}

	byBoth, err := b.Query(ctx, storage.Filter{Query: "LAPTOP", Platform: "bestbuy"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byBoth) != 1 || byBoth[0].Price != 949 {
		t.Errorf("combined filter: %+v", byBoth)
	}

	limited, err := b.Query(ctx, storage.Filter{Limit: 1})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit: got %d, want 1", len(limited))
	}
}

func TestSaveEmptyIsNoop(t *testing.T) {
	b := newTestBackend(t)
	if err := b.SaveResults(context.Background(), "q", "us", nil); err != nil {
		t.Fatalf("SaveResults(nil): %v", err)
	}
}
