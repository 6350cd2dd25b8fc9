// Package scraper assembles canonical product records from fetched pages.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/pagespark/pagespark/internal/document"
	"github.com/pagespark/pagespark/internal/models"
	"github.com/pagespark/pagespark/internal/normalize"
	"github.com/pagespark/pagespark/internal/platform"
	"github.com/pagespark/pagespark/internal/rules"
)

// outOfStockMarkers in availability text flip in_stock off.
var outOfStockMarkers = []string{"out of stock", "sold out", "unavailable", "currently not available"}

// Scraper drives field extraction for a resolved platform. It holds no
// per-scrape state, so one instance serves concurrent scrapes as long as
// the Source is concurrency-safe.
type Scraper struct {
	source document.Source
	logger *slog.Logger
	now    func() time.Time
}

func New(source document.Source) *Scraper {
	return &Scraper{
		source: source,
		logger: slog.Default().With("component", "scraper"),
		now:    time.Now,
	}
}

// Scrape fetches a product page and returns a fully populated record. It
// never returns an error: fetch failures, backend crashes, and unparsable
// markup all degrade to a fallback record carrying the failure in
// source.error.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) models.ProductRecord {
	p := platform.Resolve(rawURL)
	ts := s.now()

	record, err := s.assemble(ctx, rawURL, p, ts)
	if err != nil {
		s.logger.Warn("scrape degraded to fallback", "url", rawURL, "platform", p.String(), "error", err)
		return Fallback(rawURL, p, ts, err.Error())
	}

	s.logger.Info("scraped product", "url", rawURL, "platform", p.String(), "title", record.Title)
	return record
}

func (s *Scraper) assemble(ctx context.Context, rawURL string, p platform.Platform, ts time.Time) (record models.ProductRecord, err error) {
	// A rendering backend crash surfaces as a panic from the driver; that
	// is routed to the fallback path like any fetch failure.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rendering backend failure: %v", r)
		}
	}()

	mode := document.ModeStatic
	if p.RequiresRendering() {
		mode = document.ModeRendered
	}

	doc, err := s.source.Fetch(ctx, rawURL, mode)
	if err != nil {
		return models.ProductRecord{}, err
	}

	set := rules.For(p)

	// Field order is fixed for reproducibility: title, price, description,
	// images, availability, reviews.
	title := set.Defaults.Title
	if v, ok := extractText(doc, set.Title); ok {
		title = v
	}

	price := models.ZeroPrice()
	if raw, ok := extractText(doc, set.Price); ok {
		if parsed, ok := normalize.Price(raw); ok {
			price = parsed
		}
	}

	description := set.Defaults.Description
	if raw, ok := extractText(doc, set.Description); ok {
		if v, ok := normalize.Description(raw); ok {
			description = v
		}
	}

	images := extractImages(doc, set.Images, rawURL, title)
	if len(images) == 0 {
		images = models.PlaceholderImage()
	}

	availability := set.Defaults.Availability
	if raw, ok := extractText(doc, set.Stock); ok {
		lowered := strings.ToLower(raw)
		for _, marker := range outOfStockMarkers {
			if strings.Contains(lowered, marker) {
				availability.InStock = false
				availability.StockQuantity = 0
				break
			}
		}
	}

	reviews := models.Reviews{RecentReviews: []models.Review{}}
	if raw, ok := extractText(doc, set.Rating); ok {
		if rating, ok := normalize.Rating(raw); ok && rating <= 5 {
			reviews.AverageRating = rating
		}
	}
	if raw, ok := extractText(doc, set.ReviewCount); ok {
		if count, ok := normalize.Count(raw); ok {
			reviews.TotalReviews = count
		}
	}
	if recent := extractReviews(doc, set.Reviews); len(recent) > 0 {
		reviews.RecentReviews = recent
		if reviews.TotalReviews == 0 {
			reviews.TotalReviews = len(recent)
		}
	}

	return models.ProductRecord{
		ID:           models.RecordID(p.String(), ts),
		Title:        title,
		Brand:        brandFor(p, rawURL),
		Price:        price,
		Description:  description,
		Images:       images,
		Availability: availability,
		Reviews:      reviews,
		Source: models.Source{
			URL:       rawURL,
			Platform:  p.String(),
			ScrapedAt: models.Timestamp(ts),
		},
	}, nil
}

// Fallback builds the safe record returned when fetching or extraction
// fails catastrophically. Every field carries the platform default and the
// error lands in source.error; callers never see the failure directly.
func Fallback(rawURL string, p platform.Platform, ts time.Time, errMsg string) models.ProductRecord {
	set := rules.For(p)
	return models.ProductRecord{
		ID:           models.RecordID(p.String(), ts),
		Title:        set.Defaults.Title,
		Brand:        p.String(),
		Price:        models.ZeroPrice(),
		Description:  fmt.Sprintf("Product from %s. Scraping error: %s", p.String(), errMsg),
		Images:       models.PlaceholderImage(),
		Availability: set.Defaults.Availability,
		Reviews:      models.Reviews{RecentReviews: []models.Review{}},
		Source: models.Source{
			URL:       rawURL,
			Platform:  p.String(),
			ScrapedAt: models.Timestamp(ts),
			Error:     errMsg,
		},
	}
}

// brandFor uses the platform name as brand; generic pages fall back to the
// page host.
func brandFor(p platform.Platform, rawURL string) string {
	if p != platform.Generic {
		return p.String()
	}
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	return p.String()
}
