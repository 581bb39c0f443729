package platforms

import (
	"context"
	"strings"
	"testing"
)

const walmartFixture = `
<html><body>
<div data-item-id="123">
  <a href="/ip/apple-airpods-pro/123"><span data-automation-id="product-title">Apple AirPods Pro (2nd Generation)</span></a>
  <div data-automation-id="product-price"><span class="f2">$189.00</span></div>
</div>
<div data-item-id="456">
  <a href="/ip/generic-earbuds/456"><span>Generic Bluetooth Earbuds 40 Hour Battery</span></a>
  <span itemprop="price">$24.88</span>
</div>
<div data-item-id="789">
  <a href="/ip/no-price/789"><span data-automation-id="product-title">Listing Without A Price Tag</span></a>
</div>
</body></html>`

func TestWalmartParseResults(t *testing.T) {
	f := &stubFetcher{html: walmartFixture}
	s := NewWalmart(f)

	results, err := s.Search(context.Background(), "airpods", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	r := results[0]
	if r.Platform != "walmart" || r.PlatformName != "Walmart" {
		t.Errorf("platform = %q/%q", r.Platform, r.PlatformName)
	}
	if r.ProductName != "Apple AirPods Pro (2nd Generation)" {
		t.Errorf("product name = %q", r.ProductName)
	}
	if r.Price != 189 {
		t.Errorf("price = %v, want 189", r.Price)
	}
	if r.URL != "https://www.walmart.com/ip/apple-airpods-pro/123" {
		t.Errorf("url = %q", r.URL)
	}

	// itemprop price fallback and a span title fallback.
	if results[1].Price != 24.88 {
		t.Errorf("fallback price = %v, want 24.88", results[1].Price)
	}
	if results[1].ProductName != "Generic Bluetooth Earbuds 40 Hour Battery" {
		t.Errorf("fallback title = %q", results[1].ProductName)
	}
}

func TestWalmartSearchURL(t *testing.T) {
	f := &stubFetcher{html: "<html></html>"}
	s := NewWalmart(f)

	if _, err := s.Search(context.Background(), "ssd drive", 5); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !strings.HasPrefix(f.lastReq.URL, "https://www.walmart.com/search?") {
		t.Errorf("url = %q", f.lastReq.URL)
	}
	if !strings.Contains(f.lastReq.URL, "q=ssd+drive") {
		t.Errorf("query not encoded: %q", f.lastReq.URL)
	}
}
