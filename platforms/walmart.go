package platforms

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// Walmart scrapes walmart.com search result pages.
type Walmart struct {
	fetcher Fetcher
	baseURL string
}

// NewWalmart creates the walmart.com scraper.
func NewWalmart(f Fetcher) *Walmart {
	return &Walmart{fetcher: f, baseURL: "https://www.walmart.com"}
}

func (w *Walmart) ID() string   { return "walmart" }
func (w *Walmart) Name() string { return "Walmart" }

func (w *Walmart) Search(ctx context.Context, query string, maxResults int) ([]models.PriceResult, error) {
	params := url.Values{}
	params.Set("q", query)
	searchURL := w.baseURL + "/search?" + params.Encode()

	doc, err := fetchDoc(ctx, w.fetcher, searchURL, map[string]string{
		"Accept":          "text/html",
		"Accept-Language": "en-US,en;q=0.9",
	})
	if err != nil {
		return nil, err
	}
	return w.parseResults(doc, maxResults), nil
}

func (w *Walmart) parseResults(doc *goquery.Document, maxResults int) []models.PriceResult {
	results := make([]models.PriceResult, 0, maxResults)

	// Product cards carry a data-item-id attribute.
	doc.Find("[data-item-id]").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if r, ok := w.parseItem(item); ok {
			results = append(results, r)
		}
		return len(results) < maxResults
	})

	return results
}

func (w *Walmart) parseItem(item *goquery.Selection) (models.PriceResult, bool) {
	title := strings.TrimSpace(item.Find(`[data-automation-id="product-title"]`).First().Text())
	if title == "" {
		title = strings.TrimSpace(item.Find("a span").First().Text())
	}
	if len(title) < 5 {
		return models.PriceResult{}, false
	}

	priceEl := item.Find(`[data-automation-id="product-price"] .f2`).First()
	if priceEl.Length() == 0 {
		priceEl = item.Find(`[itemprop="price"]`).First()
	}
	if priceEl.Length() == 0 {
		return models.PriceResult{}, false
	}
	price, ok := parsePrice(priceEl.Text())
	if !ok {
		return models.PriceResult{}, false
	}

	productURL := ""
	if href, exists := item.Find(`a[href*="/ip/"]`).First().Attr("href"); exists {
		productURL = absoluteURL(w.baseURL, href)
	}

	return models.PriceResult{
		Platform:     w.ID(),
		PlatformName: w.Name(),
		ProductName:  title,
		Price:        price,
		Currency:     "$",
		URL:          productURL,
		InStock:      true,
		ScrapedAt:    scrapedNow(),
	}, true
}
