package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pagespark/pagespark/internal/browser"
)

// Client is the production Source. Static fetches go through a pooled HTTP
// client; rendered fetches launch one browser instance for the call and tear
// it down before returning, so concurrent scrapes never share a browser.
type Client struct {
	static      *StaticClient
	browserOpts *browser.Options
	renderWait  time.Duration
	logger      *slog.Logger
}

type ClientOptions struct {
	FetchTimeout  time.Duration
	RenderTimeout time.Duration
	UserAgent     string
	Headless      bool
}

func NewClient(opts ClientOptions) *Client {
	if opts.FetchTimeout == 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.RenderTimeout == 0 {
		opts.RenderTimeout = 10 * time.Second
	}

	browserOpts := browser.DefaultOptions()
	browserOpts.Headless = opts.Headless
	browserOpts.Timeout = opts.RenderTimeout
	if opts.UserAgent != "" {
		browserOpts.UserAgent = opts.UserAgent
	}

	return &Client{
		static: NewStaticClient(StaticOptions{
			Timeout:   opts.FetchTimeout,
			UserAgent: opts.UserAgent,
		}),
		browserOpts: browserOpts,
		renderWait:  opts.RenderTimeout,
		logger:      slog.Default().With("component", "document_client"),
	}
}

func (c *Client) Fetch(ctx context.Context, url string, mode FetchMode) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if mode == ModeRendered {
		return c.fetchRendered(url)
	}
	return c.static.Get(url)
}

func (c *Client) fetchRendered(url string) (Document, error) {
	b, err := browser.New(c.browserOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start rendering backend: %w", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			c.logger.Warn("browser teardown failed", "error", err)
		}
	}()

	html, err := b.Snapshot(url, c.renderWait)
	if err != nil {
		return nil, err
	}

	return ParseString(html)
}
