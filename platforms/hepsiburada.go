package platforms

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// Hepsiburada scrapes hepsiburada.com search result pages.
type Hepsiburada struct {
	fetcher Fetcher
	baseURL string
}

// NewHepsiburada creates the hepsiburada.com scraper.
func NewHepsiburada(f Fetcher) *Hepsiburada {
	return &Hepsiburada{fetcher: f, baseURL: "https://www.hepsiburada.com"}
}

func (h *Hepsiburada) ID() string   { return "hepsiburada" }
func (h *Hepsiburada) Name() string { return "Hepsiburada" }

func (h *Hepsiburada) Search(ctx context.Context, query string, maxResults int) ([]models.PriceResult, error) {
	params := url.Values{}
	params.Set("q", query)
	searchURL := h.baseURL + "/ara?" + params.Encode()

	doc, err := fetchDoc(ctx, h.fetcher, searchURL, map[string]string{
		"Accept":          "text/html",
		"Accept-Language": "tr-TR,tr;q=0.9",
	})
	if err != nil {
		return nil, err
	}
	return h.parseResults(doc, maxResults), nil
}

func (h *Hepsiburada) parseResults(doc *goquery.Document, maxResults int) []models.PriceResult {
	results := make([]models.PriceResult, 0, maxResults)

	items := doc.Find(`[data-test-id="product-card-item"]`)
	if items.Length() == 0 {
		items = doc.Find(".productListContent-item")
	}
	items.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if r, ok := h.parseItem(item); ok {
			results = append(results, r)
		}
		return len(results) < maxResults
	})

	return results
}

func (h *Hepsiburada) parseItem(item *goquery.Selection) (models.PriceResult, bool) {
	titleEl := item.Find(`[data-test-id="product-card-name"]`).First()
	if titleEl.Length() == 0 {
		titleEl = item.Find("h3").First()
	}
	name := strings.TrimSpace(titleEl.Text())
	if name == "" {
		return models.PriceResult{}, false
	}

	priceEl := item.Find(`[data-test-id="price-current-price"]`).First()
	if priceEl.Length() == 0 {
		priceEl = item.Find(".product-price").First()
	}
	if priceEl.Length() == 0 {
		return models.PriceResult{}, false
	}
	price, ok := parsePriceEU(priceEl.Text())
	if !ok {
		return models.PriceResult{}, false
	}

	productURL := ""
	if href, exists := item.Find("a").First().Attr("href"); exists {
		productURL = absoluteURL(h.baseURL, href)
	}

	return models.PriceResult{
		Platform:     h.ID(),
		PlatformName: h.Name(),
		ProductName:  name,
		Price:        price,
		Currency:     "₺",
		URL:          productURL,
		InStock:      true,
		ScrapedAt:    scrapedNow(),
	}, true
}
