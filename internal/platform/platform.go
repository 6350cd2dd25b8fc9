package platform

import (
	"net/url"
	"strings"
)

// Platform identifies which rule table and fetch mode a URL gets.
type Platform string

const (
	AliExpress Platform = "AliExpress"
	Amazon     Platform = "Amazon"
	EBay       Platform = "eBay"
	Generic    Platform = "Generic"
)

// matchers is checked in order; the first host fragment that matches wins.
// AliExpress before Amazon before eBay, everything else is Generic.
var matchers = []struct {
	fragment string
	platform Platform
}{
	{"aliexpress", AliExpress},
	{"amazon", Amazon},
	{"ebay", EBay},
}

// Resolve classifies a URL by host. Unparsable URLs and unknown hosts
// resolve to Generic.
func Resolve(rawURL string) Platform {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.ToLower(host)

	for _, m := range matchers {
		if strings.Contains(host, m.fragment) {
			return m.platform
		}
	}
	return Generic
}

// RequiresRendering reports whether the platform's content only shows up
// after script execution, so a browser snapshot is needed instead of a
// static fetch.
func (p Platform) RequiresRendering() bool {
	return p == AliExpress
}

func (p Platform) String() string {
	return string(p)
}
