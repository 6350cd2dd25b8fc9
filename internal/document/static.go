package document

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// browserHeaders are sent with every static fetch so the request looks like
// an ordinary browser session.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"Connection":      "keep-alive",
}

// StaticClient fetches pages over plain HTTP. It is safe for concurrent use;
// the underlying http.Client pools connections.
type StaticClient struct {
	client    *http.Client
	userAgent string
}

type StaticOptions struct {
	Timeout   time.Duration
	UserAgent string
}

func NewStaticClient(opts StaticOptions) *StaticClient {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = browserHeaders["User-Agent"]
	}
	return &StaticClient{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: ua,
	}
}

// Get fetches the URL and parses the response body. Non-2xx statuses are
// errors.
func (c *StaticClient) Get(url string) (Document, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for name, value := range browserHeaders {
		req.Header.Set(name, value)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	return Parse(resp.Body)
}

// Parse builds a queryable document from raw HTML.
func Parse(r io.Reader) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &htmlDocument{doc: doc}, nil
}

// ParseString is Parse over a string, mostly for tests and snapshots.
func ParseString(html string) (Document, error) {
	return Parse(strings.NewReader(html))
}

type htmlDocument struct {
	doc *goquery.Document
}

func (d *htmlDocument) Query(selector string) []Node {
	var nodes []Node
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &htmlNode{sel: s})
	})
	return nodes
}

type htmlNode struct {
	sel *goquery.Selection
}

func (n *htmlNode) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

func (n *htmlNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n *htmlNode) Find(selector string) []Node {
	var nodes []Node
	n.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &htmlNode{sel: s})
	})
	return nodes
}
