package platforms

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// BestBuy scrapes bestbuy.com search result pages.
type BestBuy struct {
	fetcher Fetcher
	baseURL string
}

// NewBestBuy creates the bestbuy.com scraper.
func NewBestBuy(f Fetcher) *BestBuy {
	return &BestBuy{fetcher: f, baseURL: "https://www.bestbuy.com"}
}

func (b *BestBuy) ID() string   { return "bestbuy" }
func (b *BestBuy) Name() string { return "Best Buy" }

func (b *BestBuy) Search(ctx context.Context, query string, maxResults int) ([]models.PriceResult, error) {
	params := url.Values{}
	params.Set("st", query)
	searchURL := b.baseURL + "/site/searchpage.jsp?" + params.Encode()

	doc, err := fetchDoc(ctx, b.fetcher, searchURL, map[string]string{
		"Accept":          "text/html",
		"Accept-Language": "en-US,en;q=0.9",
	})
	if err != nil {
		return nil, err
	}
	return b.parseResults(doc, maxResults), nil
}

func (b *BestBuy) parseResults(doc *goquery.Document, maxResults int) []models.PriceResult {
	results := make([]models.PriceResult, 0, maxResults)

	doc.Find(".sku-item").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if r, ok := b.parseItem(item); ok {
			results = append(results, r)
		}
		return len(results) < maxResults
	})

	return results
}

func (b *BestBuy) parseItem(item *goquery.Selection) (models.PriceResult, bool) {
	titleEl := item.Find(".sku-title a").First()
	if titleEl.Length() == 0 {
		titleEl = item.Find("h4 a").First()
	}
	title := strings.TrimSpace(titleEl.Text())
	if len(title) < 5 {
		return models.PriceResult{}, false
	}

	priceEl := item.Find(".priceView-customer-price span").First()
	if priceEl.Length() == 0 {
		priceEl = item.Find(`[data-testid="customer-price"] span`).First()
	}
	if priceEl.Length() == 0 {
		return models.PriceResult{}, false
	}
	price, ok := parsePrice(priceEl.Text())
	if !ok {
		return models.PriceResult{}, false
	}

	productURL := ""
	if href, exists := titleEl.Attr("href"); exists {
		productURL = absoluteURL(b.baseURL, href)
	}

	return models.PriceResult{
		Platform:     b.ID(),
		PlatformName: b.Name(),
		ProductName:  title,
		Price:        price,
		Currency:     "$",
		URL:          productURL,
		InStock:      true,
		ScrapedAt:    scrapedNow(),
	}, true
}
