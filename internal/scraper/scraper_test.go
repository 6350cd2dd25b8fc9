package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagespark/pagespark/internal/document"
	"github.com/pagespark/pagespark/internal/models"
)

// stubSource serves a canned document and records the requested mode.
type stubSource struct {
	html     string
	err      error
	panics   bool
	lastMode document.FetchMode
}

func (s *stubSource) Fetch(_ context.Context, _ string, mode document.FetchMode) (document.Document, error) {
	s.lastMode = mode
	if s.panics {
		panic("browser process exited")
	}
	if s.err != nil {
		return nil, s.err
	}
	return document.ParseString(s.html)
}

func newTestScraper(source document.Source) *Scraper {
	s := New(source)
	s.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestScrapeFetchFailureYieldsFallback(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://www.amazon.com/dp/XYZ")

	assert.Equal(t, "Amazon", record.Brand)
	assert.Equal(t, "Amazon", record.Source.Platform)
	assert.Equal(t, "Amazon Product", record.Title)
	assert.Zero(t, record.Price.Current)
	assert.NotEmpty(t, record.Source.Error)
	assert.Contains(t, record.Source.Error, "connection refused")
	require.Len(t, record.Images, 1)
	assert.True(t, record.Images[0].IsPrimary)
	assert.Empty(t, record.Validate())
}

func TestScrapeBackendPanicYieldsFallback(t *testing.T) {
	source := &stubSource{panics: true}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://www.aliexpress.com/item/1.html")

	assert.Equal(t, "AliExpress", record.Source.Platform)
	assert.Contains(t, record.Source.Error, "browser process exited")
	assert.Empty(t, record.Validate())
}

func TestScrapeGenericDocument(t *testing.T) {
	source := &stubSource{html: `<html><head><title>Widget</title></head><body><img src="/a.jpg"></body></html>`}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://shop.example.com/p/1")

	assert.Equal(t, "Widget", record.Title)
	assert.Equal(t, "shop.example.com", record.Brand)
	require.NotEmpty(t, record.Images)
	assert.Equal(t, "https://shop.example.com/a.jpg", record.Images[0].URL)
	assert.True(t, record.Images[0].IsPrimary)
	assert.Empty(t, record.Source.Error)
	assert.Empty(t, record.Validate())
}

func TestScrapeParsesPrice(t *testing.T) {
	source := &stubSource{html: `<html><body><h1>Widget</h1><span class="price">$1,299.99</span></body></html>`}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://shop.example.com/p/1")

	assert.Equal(t, 1299.99, record.Price.Current)
	assert.Equal(t, 1299.99, record.Price.Original)
	assert.Equal(t, "USD", record.Price.Currency)
	assert.Zero(t, record.Price.DiscountPercentage)
}

func TestScrapeUsesRenderedModeForAliExpress(t *testing.T) {
	source := &stubSource{html: `<html><body><h1>Thing</h1></body></html>`}
	s := newTestScraper(source)

	s.Scrape(context.Background(), "https://www.aliexpress.com/item/1.html")
	assert.Equal(t, document.ModeRendered, source.lastMode)

	s.Scrape(context.Background(), "https://www.amazon.com/dp/X")
	assert.Equal(t, document.ModeStatic, source.lastMode)
}

func TestScrapeCapsImagesAndMarksPrimary(t *testing.T) {
	html := `<html><body><div class="product-image">` +
		`<img src="/1.jpg"><img src="/2.jpg"><img src="/3.jpg">` +
		`<img src="/4.jpg"><img src="/5.jpg"><img src="/6.jpg"><img src="/7.jpg">` +
		`</div></body></html>`
	source := &stubSource{html: html}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://shop.example.com/p/1")

	require.Len(t, record.Images, 5)
	primaries := 0
	for _, img := range record.Images {
		if img.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
	assert.True(t, record.Images[0].IsPrimary)
	assert.Equal(t, "https://shop.example.com/1.jpg", record.Images[0].URL)
}

func TestScrapeSkipsUnusableImageURLs(t *testing.T) {
	html := `<html><body><div class="product-image">` +
		`<img src="data:image/png;base64,AAAA"><img src="/real.jpg">` +
		`</div></body></html>`
	source := &stubSource{html: html}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://shop.example.com/p/1")

	require.Len(t, record.Images, 1)
	assert.Equal(t, "https://shop.example.com/real.jpg", record.Images[0].URL)
}

func TestScrapeFallsBackToPlaceholderImage(t *testing.T) {
	source := &stubSource{html: `<html><body><h1>No pictures here</h1></body></html>`}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://shop.example.com/p/1")

	require.Len(t, record.Images, 1)
	assert.Equal(t, models.PlaceholderImageURL, record.Images[0].URL)
	assert.True(t, record.Images[0].IsPrimary)
}

func TestScrapeExtractsReviews(t *testing.T) {
	html := `<html><body><h1>Widget</h1>
		<div class="review"><span class="rating">5</span><p class="review-text">Great value</p><span class="author">ana</span></div>
		<div class="review"><span class="rating">3</span><p class="review-text">Decent</p><span class="author">bo</span></div>
		<div class="review"><span class="rating">4</span><p class="review-text">Solid build</p><span class="author">cy</span></div>
		<div class="review"><span class="rating">1</span><p class="review-text">Broke fast</p><span class="author">dee</span></div>
	</body></html>`
	source := &stubSource{html: html}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://shop.example.com/p/1")

	require.Len(t, record.Reviews.RecentReviews, 3)
	assert.Equal(t, "Great value", record.Reviews.RecentReviews[0].Comment)
	assert.Equal(t, "ana", record.Reviews.RecentReviews[0].Author)
	assert.Equal(t, 5.0, record.Reviews.RecentReviews[0].Rating)
	assert.Equal(t, 3, record.Reviews.TotalReviews)
}

func TestScrapeDetectsOutOfStock(t *testing.T) {
	html := `<html><body><span id="productTitle">Gadget</span>
		<div id="availability"><span>Currently unavailable.</span></div></body></html>`
	source := &stubSource{html: html}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://www.amazon.com/dp/X")

	assert.False(t, record.Availability.InStock)
	assert.Zero(t, record.Availability.StockQuantity)
}

func TestScrapeDescriptionFromMetaTag(t *testing.T) {
	html := `<html><head><title>Widget</title>
		<meta name="description" content="A rather long description of the widget and its many virtues.">
		</head><body></body></html>`
	source := &stubSource{html: html}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://shop.example.com/p/1")

	assert.Equal(t, "A rather long description of the widget and its many virtues.", record.Description)
}

func TestScrapeShortDescriptionFallsToDefault(t *testing.T) {
	html := `<html><body><h1>Widget</h1><div class="description">tiny</div></body></html>`
	source := &stubSource{html: html}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://shop.example.com/p/1")

	assert.Equal(t, "No description available", record.Description)
}

func TestScrapeIsIdempotent(t *testing.T) {
	source := &stubSource{html: `<html><head><title>Widget</title></head><body><img src="/a.jpg"></body></html>`}
	s := newTestScraper(source)

	first := s.Scrape(context.Background(), "https://shop.example.com/p/1")
	second := s.Scrape(context.Background(), "https://shop.example.com/p/1")

	assert.Equal(t, first, second)
}

func TestScrapeAlwaysReturnsValidRecord(t *testing.T) {
	sources := map[string]*stubSource{
		"fetch error":    {err: errors.New("boom")},
		"empty document": {html: ""},
		"garbage":        {html: "<<<<not html at all"},
		"full page":      {html: `<html><body><h1>X</h1><span class="price">$5.00</span></body></html>`},
	}

	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			record := newTestScraper(source).Scrape(context.Background(), "https://shop.example.com/p/1")
			assert.Empty(t, record.Validate())
			assert.NotEmpty(t, record.ID)
			assert.NotEmpty(t, record.Source.ScrapedAt)
		})
	}
}

func TestScrapedAtFormat(t *testing.T) {
	source := &stubSource{html: `<html><body><h1>Widget</h1></body></html>`}
	s := newTestScraper(source)

	record := s.Scrape(context.Background(), "https://shop.example.com/p/1")

	assert.Equal(t, "2025-06-01T12:00:00.000Z", record.Source.ScrapedAt)
	assert.Equal(t, "generic_1748779200000", record.ID)
}
