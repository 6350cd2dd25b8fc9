package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/pagespark/pagespark/internal/cache"
	"github.com/pagespark/pagespark/internal/models"
	"github.com/pagespark/pagespark/internal/salespage"
	"github.com/pagespark/pagespark/internal/scraper"
	"github.com/pagespark/pagespark/internal/storage"
)

const maxBatchSize = 20

type Handlers struct {
	scraper    *scraper.Scraper
	pages      *salespage.Generator
	store      *storage.Store      // optional
	cache      *cache.RecordCache  // optional
	batchLimit int
	logger     *slog.Logger
}

func NewHandlers(s *scraper.Scraper, pages *salespage.Generator, store *storage.Store, recordCache *cache.RecordCache, batchLimit int, logger *slog.Logger) *Handlers {
	if batchLimit < 1 {
		batchLimit = 4
	}
	return &Handlers{
		scraper:    s,
		pages:      pages,
		store:      store,
		cache:      recordCache,
		batchLimit: batchLimit,
		logger:     logger,
	}
}

// ScrapeResponse wraps a scraped record. Success is true whenever a record
// came back without a scrape error; a fallback record still returns 200.
type ScrapeResponse struct {
	Success bool                 `json:"success"`
	Data    models.ProductRecord `json:"data"`
}

// Scrape handles GET /api/v1/scrape?url=…
func (h *Handlers) Scrape(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		h.respondError(w, http.StatusBadRequest, "url parameter is required")
		return
	}
	if !validURL(rawURL) {
		h.respondError(w, http.StatusBadRequest, "invalid url format")
		return
	}

	record := h.scrapeThroughCache(r.Context(), rawURL)

	h.respondJSON(w, http.StatusOK, ScrapeResponse{
		Success: record.Source.Error == "",
		Data:    record,
	})
}

type BatchScrapeRequest struct {
	URLs []string `json:"urls"`
}

type BatchScrapeResponse struct {
	Results []models.ProductRecord `json:"results"`
}

// BatchScrape handles POST /api/v1/scrape/batch. Scrapes run concurrently
// with a bounded worker count; every URL yields a record, so the response
// keeps input order and length.
func (h *Handlers) BatchScrape(w http.ResponseWriter, r *http.Request) {
	var req BatchScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.URLs) == 0 {
		h.respondError(w, http.StatusBadRequest, "urls is required")
		return
	}
	if len(req.URLs) > maxBatchSize {
		h.respondError(w, http.StatusBadRequest, "too many urls in one batch")
		return
	}
	for _, rawURL := range req.URLs {
		if !validURL(rawURL) {
			h.respondError(w, http.StatusBadRequest, "invalid url format: "+rawURL)
			return
		}
	}

	results := make([]models.ProductRecord, len(req.URLs))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(h.batchLimit)

	for i, rawURL := range req.URLs {
		i, rawURL := i, rawURL
		g.Go(func() error {
			results[i] = h.scrapeThroughCache(ctx, rawURL)
			return nil
		})
	}
	// Workers never return errors; Wait just joins them.
	_ = g.Wait()

	h.respondJSON(w, http.StatusOK, BatchScrapeResponse{Results: results})
}

type CreatePageRequest struct {
	URL string `json:"url"`
}

type CreatePageResponse struct {
	Page salespage.Page       `json:"page"`
	Data models.ProductRecord `json:"data"`
}

// CreatePage handles POST /api/v1/pages: scrape, then render a sales page.
func (h *Handlers) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validURL(req.URL) {
		h.respondError(w, http.StatusBadRequest, "invalid url format")
		return
	}

	record := h.scrapeThroughCache(r.Context(), req.URL)

	page, err := h.pages.Generate(record)
	if err != nil {
		h.logger.Error("failed to generate sales page", "url", req.URL, "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to generate page")
		return
	}

	h.respondJSON(w, http.StatusCreated, CreatePageResponse{Page: page, Data: record})
}

// ListRecords handles GET /api/v1/records?limit=…
func (h *Handlers) ListRecords(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.respondError(w, http.StatusServiceUnavailable, "scrape history is not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			h.respondError(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = parsed
	}

	records, err := h.store.RecentRecords(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list records", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list records")
		return
	}
	if records == nil {
		records = []models.ProductRecord{}
	}

	h.respondJSON(w, http.StatusOK, records)
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// scrapeThroughCache consults the record cache before scraping and stores
// both cache entry and history row afterwards. Storage trouble is logged
// and swallowed; the caller always gets a record.
func (h *Handlers) scrapeThroughCache(ctx context.Context, rawURL string) models.ProductRecord {
	if h.cache != nil {
		if record, ok := h.cache.Get(ctx, rawURL); ok {
			h.logger.Debug("cache hit", "url", rawURL)
			return record
		}
	}

	record := h.scraper.Scrape(ctx, rawURL)

	if h.cache != nil {
		if err := h.cache.Set(ctx, record); err != nil {
			h.logger.Warn("failed to cache record", "url", rawURL, "error", err)
		}
	}
	if h.store != nil {
		if err := h.store.SaveRecord(ctx, record); err != nil {
			h.logger.Warn("failed to persist record", "url", rawURL, "error", err)
		}
	}

	return record
}

func validURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
