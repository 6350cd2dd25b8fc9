package models

import (
	"fmt"
	"strings"
	"time"
)

// PlaceholderImageURL is substituted when a page yields no usable image.
const PlaceholderImageURL = "https://via.placeholder.com/400x300?text=No+Image"

// ProductRecord is the canonical output of a scrape. It is fully populated
// before it leaves the assembler and is not mutated afterwards.
type ProductRecord struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Brand        string       `json:"brand"`
	Price        Price        `json:"price"`
	Description  string       `json:"description"`
	Images       []Image      `json:"images"`
	Availability Availability `json:"availability"`
	Reviews      Reviews      `json:"reviews"`
	Source       Source       `json:"source"`
}

type Price struct {
	Current            float64 `json:"current"`
	Original           float64 `json:"original"`
	Currency           string  `json:"currency"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

type Image struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"is_primary"`
}

type Availability struct {
	InStock       bool         `json:"in_stock"`
	StockQuantity int          `json:"stock_quantity"`
	ShippingInfo  ShippingInfo `json:"shipping_info"`
}

// ShippingCost is a string so one field can carry both a numeric cost and
// the "N/A" marker used when no shipping data was found.
type ShippingInfo struct {
	FreeShipping      bool   `json:"free_shipping"`
	EstimatedDelivery string `json:"estimated_delivery"`
	ShippingCost      string `json:"shipping_cost"`
}

type Reviews struct {
	AverageRating float64  `json:"average_rating"`
	TotalReviews  int      `json:"total_reviews"`
	RecentReviews []Review `json:"recent_reviews"`
}

type Review struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
	Author  string  `json:"author"`
}

type Source struct {
	URL       string `json:"url"`
	Platform  string `json:"platform"`
	ScrapedAt string `json:"scraped_at"`
	Error     string `json:"error,omitempty"`
}

// ZeroPrice is the default when no price could be extracted.
func ZeroPrice() Price {
	return Price{Currency: "USD"}
}

// PlaceholderImage returns the single-entry image list used when extraction
// finds nothing. Images must never be empty.
func PlaceholderImage() []Image {
	return []Image{{URL: PlaceholderImageURL, Alt: "No Image", IsPrimary: true}}
}

// RecordID derives a per-attempt identifier from the platform tag and the
// scrape timestamp.
func RecordID(platform string, ts time.Time) string {
	return fmt.Sprintf("%s_%d", strings.ToLower(platform), ts.UnixMilli())
}

// Timestamp formats a scrape time as ISO-8601 UTC with millisecond precision.
func Timestamp(ts time.Time) string {
	return ts.UTC().Format("2006-01-02T15:04:05.000Z")
}

func (p Price) IsZero() bool {
	return p.Current == 0 && p.Original == 0 && p.DiscountPercentage == 0
}

// Validate reports schema violations. The assembler is expected to produce
// records that never trip these.
func (r *ProductRecord) Validate() []string {
	var problems []string

	if r.ID == "" {
		problems = append(problems, "id is empty")
	}
	if r.Title == "" {
		problems = append(problems, "title is empty")
	}
	if len(r.Images) == 0 {
		problems = append(problems, "images is empty")
	} else {
		primaries := 0
		for _, img := range r.Images {
			if img.IsPrimary {
				primaries++
			}
		}
		if primaries != 1 {
			problems = append(problems, fmt.Sprintf("expected exactly one primary image, got %d", primaries))
		} else if !r.Images[0].IsPrimary {
			problems = append(problems, "primary image is not first")
		}
	}
	if len(r.Price.Currency) != 3 {
		problems = append(problems, "currency is not a 3-letter code")
	}
	if r.Price.Current < 0 || r.Price.Original < 0 {
		problems = append(problems, "negative price")
	}
	if r.Reviews.TotalReviews < 0 {
		problems = append(problems, "negative review count")
	}
	if r.Source.ScrapedAt == "" {
		problems = append(problems, "scraped_at is empty")
	}

	return problems
}
