package platforms

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// Trendyol scrapes trendyol.com search result pages. Prices use the
// Turkish format (42.999,00 TL).
type Trendyol struct {
	fetcher Fetcher
	baseURL string
}

// NewTrendyol creates the trendyol.com scraper.
func NewTrendyol(f Fetcher) *Trendyol {
	return &Trendyol{fetcher: f, baseURL: "https://www.trendyol.com"}
}

func (t *Trendyol) ID() string   { return "trendyol" }
func (t *Trendyol) Name() string { return "Trendyol" }

func (t *Trendyol) Search(ctx context.Context, query string, maxResults int) ([]models.PriceResult, error) {
	params := url.Values{}
	params.Set("q", query)
	searchURL := t.baseURL + "/sr?" + params.Encode()

	doc, err := fetchDoc(ctx, t.fetcher, searchURL, map[string]string{
		"Accept":          "text/html",
		"Accept-Language": "tr-TR,tr;q=0.9,en;q=0.8",
	})
	if err != nil {
		return nil, err
	}
	return t.parseResults(doc, maxResults), nil
}

func (t *Trendyol) parseResults(doc *goquery.Document, maxResults int) []models.PriceResult {
	results := make([]models.PriceResult, 0, maxResults)

	items := doc.Find(".p-card-wrppr")
	if items.Length() == 0 {
		items = doc.Find(`[class*="prdct-cntnr"]`)
	}
	items.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if r, ok := t.parseItem(item); ok {
			results = append(results, r)
		}
		return len(results) < maxResults
	})

	return results
}

func (t *Trendyol) parseItem(item *goquery.Selection) (models.PriceResult, bool) {
	// Listings split the product name into a brand span and a title span.
	brand := strings.TrimSpace(item.Find(".prdct-desc-cntnr-ttl").First().Text())
	title := strings.TrimSpace(item.Find(".prdct-desc-cntnr-name").First().Text())
	name := strings.TrimSpace(brand + " " + title)
	if len(name) < 3 {
		return models.PriceResult{}, false
	}

	priceEl := item.Find(".prc-box-dscntd").First()
	if priceEl.Length() == 0 {
		priceEl = item.Find(".prc-box-sllng").First()
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
		productURL = absoluteURL(t.baseURL, href)
	}

	return models.PriceResult{
		Platform:     t.ID(),
		PlatformName: t.Name(),
		ProductName:  name,
		Price:        price,
		Currency:     "₺",
		URL:          productURL,
		InStock:      true,
		ScrapedAt:    scrapedNow(),
	}, true
}
