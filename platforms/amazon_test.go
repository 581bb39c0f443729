package platforms

import (
	"context"
	"strings"
	"testing"
)

const amazonFixture = `
<html><body>
<div data-component-type="s-search-result">
  <h2><a href="/dp/B0SPONSOR"><span>Sponsored Gadget Pro Max 2000</span></a></h2>
  <span class="s-label-popover-default">Sponsored</span>
  <div class="a-price"><span class="a-offscreen">$9.99</span></div>
</div>
<div data-component-type="s-search-result">
  <h2><a href="/dp/B0HEADPHONE"><span>Sony WH-1000XM5 Wireless Noise Canceling Headphones</span></a></h2>
  <div class="a-price a-text-price"><span class="a-offscreen">$399.99</span></div>
  <div class="a-price"><span class="a-offscreen">$1,049.99</span></div>
  <span aria-label="4.6 out of 5 stars">4.6</span>
  <span aria-label="12,345 ratings">12,345</span>
  <div class="a-row a-size-base a-color-secondary"><span class="a-size-base">Sony Official Store</span></div>
</div>
<div data-component-type="s-search-result">
  <h2><span>Budget Earbuds With Case</span></h2>
  <div class="a-price">
    <span class="a-price-whole">29</span><span class="a-price-fraction">95</span>
  </div>
</div>
<div data-component-type="s-search-result">
  <h2><a href="/dp/B0NOPRICE"><span>Currently Unavailable Headset Stand</span></a></h2>
</div>
<div data-component-type="s-search-result">
  <h2><a href="/dp/B0SHORT"><span>Hub</span></a></h2>
  <div class="a-price"><span class="a-offscreen">$19.99</span></div>
</div>
</body></html>`

func TestAmazonParseResults(t *testing.T) {
	f := &stubFetcher{html: amazonFixture}
	s := NewAmazonUS(f)

	results, err := s.Search(context.Background(), "headphones", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	// Sponsored, priceless and too-short titles are all skipped.
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	r := results[0]
	if r.Platform != "amazon_us" || r.PlatformName != "Amazon US" {
		t.Errorf("platform = %q/%q", r.Platform, r.PlatformName)
	}
	if r.ProductName != "Sony WH-1000XM5 Wireless Noise Canceling Headphones" {
		t.Errorf("product name = %q", r.ProductName)
	}
	// Strike-through list price must not win over the real price.
	if r.Price != 1049.99 {
		t.Errorf("price = %v, want 1049.99", r.Price)
	}
	if r.Currency != "$" {
		t.Errorf("currency = %q, want $", r.Currency)
	}
	if r.URL != "https://www.amazon.com/dp/B0HEADPHONE" {
		t.Errorf("url = %q", r.URL)
	}
	if r.Rating == nil || *r.Rating != 4.6 {
		t.Errorf("rating = %v, want 4.6", r.Rating)
	}
	if r.ReviewCount == nil || *r.ReviewCount != 12345 {
		t.Errorf("review count = %v, want 12345", r.ReviewCount)
	}
	if r.Seller != "Sony Official Store" {
		t.Errorf("seller = %q", r.Seller)
	}
	if !r.InStock {
		t.Error("in_stock = false, want true")
	}
	if r.ScrapedAt == "" {
		t.Error("scraped_at is empty")
	}

	// Whole+fraction span fallback.
	if results[1].Price != 29.95 {
		t.Errorf("fallback price = %v, want 29.95", results[1].Price)
	}
}

func TestAmazonMaxResults(t *testing.T) {
	f := &stubFetcher{html: amazonFixture}
	s := NewAmazonUS(f)

	results, err := s.Search(context.Background(), "headphones", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}

func TestAmazonSearchURL(t *testing.T) {
	f := &stubFetcher{html: "<html></html>"}
	s := NewAmazonUS(f)

	if _, err := s.Search(context.Background(), "usb c hub", 5); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if f.lastReq == nil {
		t.Fatal("no request dispatched")
	}
	if !strings.HasPrefix(f.lastReq.URL, "https://www.amazon.com/s?") {
		t.Errorf("url = %q", f.lastReq.URL)
	}
	if !strings.Contains(f.lastReq.URL, "k=usb+c+hub") {
		t.Errorf("query not encoded: %q", f.lastReq.URL)
	}
	if got := f.lastReq.Headers["Accept-Language"]; got != "en-US,en;q=0.9" {
		t.Errorf("Accept-Language = %q", got)
	}
}

func TestAmazonDEEuropeanPrices(t *testing.T) {
	const fixture = `
<div data-component-type="s-search-result">
  <h2><a href="/dp/B0DE"><span>Kabellose Kopfhörer mit Geräuschunterdrückung</span></a></h2>
  <div class="a-price"><span class="a-offscreen">1.199,00 €</span></div>
</div>`
	f := &stubFetcher{html: fixture}
	s := NewAmazonDE(f)

	results, err := s.Search(context.Background(), "kopfhörer", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.Platform != "amazon_de" {
		t.Errorf("platform = %q", r.Platform)
	}
	if r.Price != 1199 {
		t.Errorf("price = %v, want 1199", r.Price)
	}
	if r.Currency != "€" {
		t.Errorf("currency = %q, want €", r.Currency)
	}
	if r.URL != "https://www.amazon.de/dp/B0DE" {
		t.Errorf("url = %q", r.URL)
	}
	if got := f.lastReq.Headers["Accept-Language"]; !strings.HasPrefix(got, "de-DE") {
		t.Errorf("Accept-Language = %q", got)
	}
}
