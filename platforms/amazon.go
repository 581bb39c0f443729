package platforms

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nicholaihel7/hype-intelligence-backend/models"
)

// Amazon scrapes Amazon search result pages. One implementation serves
// every marketplace; the marketplace-specific pieces (base URL, currency
// symbol, locale, price format) are configuration.
type Amazon struct {
	fetcher  Fetcher
	id       string
	name     string
	baseURL  string
	currency string
	lang     string
	euPrices bool
}

// NewAmazonUS creates the amazon.com scraper.
func NewAmazonUS(f Fetcher) *Amazon {
	return &Amazon{
		fetcher:  f,
		id:       "amazon_us",
		name:     "Amazon US",
		baseURL:  "https://www.amazon.com",
		currency: "$",
		lang:     "en-US,en;q=0.9",
	}
}

// NewAmazonDE creates the amazon.de scraper. Prices are in the European
// format (1.199,00 €).
func NewAmazonDE(f Fetcher) *Amazon {
	return &Amazon{
		fetcher:  f,
		id:       "amazon_de",
		name:     "Amazon DE",
		baseURL:  "https://www.amazon.de",
		currency: "€",
		lang:     "de-DE,de;q=0.9,en;q=0.8",
		euPrices: true,
	}
}

func (a *Amazon) ID() string   { return a.id }
func (a *Amazon) Name() string { return a.name }

func (a *Amazon) Search(ctx context.Context, query string, maxResults int) ([]models.PriceResult, error) {
	params := url.Values{}
	params.Set("k", query)
	params.Set("ref", "nb_sb_noss")
	searchURL := a.baseURL + "/s?" + params.Encode()

	doc, err := fetchDoc(ctx, a.fetcher, searchURL, map[string]string{
		"Accept-Language": a.lang,
	})
	if err != nil {
		return nil, err
	}
	return a.parseResults(doc, maxResults), nil
}

// parseResults walks the search result cards and returns up to maxResults
// parsed listings. Cards that fail to parse are skipped.
func (a *Amazon) parseResults(doc *goquery.Document, maxResults int) []models.PriceResult {
	results := make([]models.PriceResult, 0, maxResults)

	doc.Find(`[data-component-type="s-search-result"]`).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if r, ok := a.parseItem(item); ok {
			results = append(results, r)
		}
		return len(results) < maxResults
	})

	return results
}

var (
	reAmazonRating  = regexp.MustCompile(`(\d+\.?\d*)\s+out of\s+5`)
	reLeadingDigits = regexp.MustCompile(`(\d+)`)
)

// parseItem parses a single search result card.
func (a *Amazon) parseItem(item *goquery.Selection) (models.PriceResult, bool) {
	// Skip sponsored/ad results.
	if label := item.Find(".s-label-popover-default"); label.Length() > 0 {
		if strings.Contains(label.Text(), "Sponsored") {
			return models.PriceResult{}, false
		}
	}

	title := strings.TrimSpace(item.Find("h2 a span").First().Text())
	if title == "" {
		title = strings.TrimSpace(item.Find("h2 span").First().Text())
	}
	if len(title) < 5 {
		return models.PriceResult{}, false
	}

	price, ok := a.extractPrice(item)
	if !ok {
		return models.PriceResult{}, false
	}

	productURL := ""
	if href, exists := item.Find("h2 a").First().Attr("href"); exists {
		productURL = absoluteURL(a.baseURL, href)
	}

	result := models.PriceResult{
		Platform:     a.id,
		PlatformName: a.name,
		ProductName:  title,
		Price:        price,
		Currency:     a.currency,
		URL:          productURL,
		InStock:      true,
		ScrapedAt:    scrapedNow(),
	}

	// Rating: "4.6 out of 5 stars" in an aria-label.
	if ratingEl := item.Find(`[aria-label*='out of 5 stars']`).First(); ratingEl.Length() > 0 {
		if label, exists := ratingEl.Attr("aria-label"); exists {
			if m := reAmazonRating.FindStringSubmatch(label); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					result.Rating = &v
				}
			}
		}
	}

	// Review count.
	reviewEl := item.Find(`[aria-label*='ratings']`).First()
	if reviewEl.Length() == 0 {
		reviewEl = item.Find(".s-link-style .s-underline-text").First()
	}
	if reviewEl.Length() > 0 {
		text := strings.ReplaceAll(strings.TrimSpace(reviewEl.Text()), ",", "")
		if m := reLeadingDigits.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				result.ReviewCount = &n
			}
		}
	}

	// Seller line below the title, when present.
	if seller := strings.TrimSpace(item.Find(".a-row.a-size-base.a-color-secondary .a-size-base").First().Text()); seller != "" {
		result.Seller = seller
	}

	return result, true
}

// extractPrice handles Amazon's price markup variants in order of
// reliability: the screen-reader price, the whole+fraction spans, then the
// visible price container text. Strike-through list prices
// (.a-text-price) are excluded.
func (a *Amazon) extractPrice(item *goquery.Selection) (float64, bool) {
	parse := parsePrice
	if a.euPrices {
		parse = parsePriceEU
	}

	if el := item.Find(".a-price:not(.a-text-price) .a-offscreen").First(); el.Length() > 0 {
		if v, ok := parse(el.Text()); ok {
			return v, true
		}
	}

	whole := item.Find(".a-price:not(.a-text-price) .a-price-whole").First()
	if whole.Length() > 0 {
		wholeText := strings.NewReplacer(",", "", ".", "").Replace(strings.TrimSpace(whole.Text()))
		fracText := "00"
		if frac := item.Find(".a-price:not(.a-text-price) .a-price-fraction").First(); frac.Length() > 0 {
			fracText = strings.TrimSpace(frac.Text())
		}
		if v, err := strconv.ParseFloat(wholeText+"."+fracText, 64); err == nil {
			return v, true
		}
	}

	if el := item.Find(".a-price").First(); el.Length() > 0 {
		if v, ok := parse(el.Text()); ok {
			return v, true
		}
	}

	return 0, false
}
