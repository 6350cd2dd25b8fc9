// Package cache keeps recently scraped records in Redis so repeat requests
// for the same URL skip the fetch entirely.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pagespark/pagespark/internal/models"
)

const keyPrefix = "pagespark:record:"

type RecordCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *redis.Client, ttl time.Duration) *RecordCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RecordCache{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "record_cache"),
	}
}

// Get returns the cached record for a URL. A miss or a broken payload
// reports ok=false; cache trouble never fails a scrape.
func (c *RecordCache) Get(ctx context.Context, url string) (models.ProductRecord, bool) {
	payload, err := c.client.Get(ctx, keyPrefix+url).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", "url", url, "error", err)
		}
		return models.ProductRecord{}, false
	}

	var record models.ProductRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		c.logger.Warn("cache payload corrupt", "url", url, "error", err)
		return models.ProductRecord{}, false
	}

	return record, true
}

// Set stores a record under its source URL. Fallback records are not cached
// so a transient fetch failure does not stick for the TTL.
func (c *RecordCache) Set(ctx context.Context, record models.ProductRecord) error {
	if record.Source.Error != "" {
		return nil
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+record.Source.URL, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache record: %w", err)
	}
	return nil
}
