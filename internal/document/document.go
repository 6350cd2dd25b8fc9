package document

import "context"

// FetchMode selects how a page is obtained.
type FetchMode int

const (
	// ModeStatic fetches the raw HTML response over HTTP.
	ModeStatic FetchMode = iota
	// ModeRendered loads the page in a headless browser and snapshots the
	// DOM after scripts have run.
	ModeRendered
)

func (m FetchMode) String() string {
	if m == ModeRendered {
		return "rendered"
	}
	return "static"
}

// Source fetches a page and returns it as a queryable document.
type Source interface {
	Fetch(ctx context.Context, url string, mode FetchMode) (Document, error)
}

// Document is a parsed page. Query returns every node matching a CSS
// selector; an unknown selector simply returns no nodes.
type Document interface {
	Query(selector string) []Node
}

// Node is one matched element. Find scopes a query to the node's subtree,
// which collection extraction (reviews) relies on.
type Node interface {
	Text() string
	Attr(name string) (string, bool)
	Find(selector string) []Node
}
