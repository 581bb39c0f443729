package models

// PriceResult is a single normalized product offer scraped from a platform.
type PriceResult struct {
	// Platform is the platform identifier (e.g. "amazon_us", "trendyol").
	Platform string `json:"platform"`

	// PlatformName is the human-readable platform name (e.g. "Amazon US").
	PlatformName string `json:"platform_name"`

	// ProductName is the listing title as shown on the results page.
	ProductName string `json:"product_name"`

	// Price is the numeric price in the platform's local currency.
	Price float64 `json:"price"`

	// Currency is the display symbol for the price ("$", "€", "₺").
	Currency string `json:"currency"`

	// URL is the absolute product page URL.
	URL string `json:"url"`

	// Seller is the merchant name when the platform exposes it.
	Seller string `json:"seller,omitempty"`

	// Rating is the average customer rating on a 0-5 scale, if present.
	Rating *float64 `json:"rating,omitempty"`

	// ReviewCount is the number of customer reviews, if present.
	ReviewCount *int `json:"review_count,omitempty"`

	// InStock reports listing availability. Search result pages only show
	// purchasable items, so this defaults to true.
	InStock bool `json:"in_stock"`

	// ScrapedAt is the UTC scrape timestamp in RFC3339 format.
	ScrapedAt string `json:"scraped_at"`
}
