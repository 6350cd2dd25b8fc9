package normalize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pagespark/pagespark/internal/models"
)

const (
	// DescriptionLimit caps description length before the marker.
	DescriptionLimit = 500
	// TruncationMarker is appended when a description is cut.
	TruncationMarker = "..."
	// MinMeaningfulLength is the shortest description worth keeping when a
	// richer default exists for the field.
	MinMeaningfulLength = 20
)

// pricePattern matches an optional currency symbol followed by an amount
// with optional thousands separators and decimals.
var pricePattern = regexp.MustCompile(`([$€£¥₹])?\s*(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)`)

var (
	ratingPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	countPattern  = regexp.MustCompile(`\d+`)
)

var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
	"₹": "INR",
}

// Price parses the first currency-amount substring in raw text. The symbol
// maps to its ISO code, defaulting to USD when absent or unrecognized.
// Unparsable text reports ok=false with the zero price.
func Price(raw string) (models.Price, bool) {
	matches := pricePattern.FindStringSubmatch(raw)
	if matches == nil {
		return models.ZeroPrice(), false
	}

	amountText := strings.ReplaceAll(matches[2], ",", "")
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil || amount <= 0 {
		return models.ZeroPrice(), false
	}

	currency := "USD"
	if code, ok := currencySymbols[matches[1]]; ok {
		currency = code
	}

	return models.Price{
		Current:  amount,
		Original: amount,
		Currency: currency,
	}, true
}

// AbsoluteURL resolves a possibly-relative link against the page URL.
// Protocol-relative links get https, root-relative links get the base
// scheme and host, and everything else resolves per standard relative URL
// rules. Non-HTTP(S) results report ok=false.
func AbsoluteURL(raw, baseURL string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	if !ref.IsAbs() {
		base, err := url.Parse(baseURL)
		if err != nil || base.Host == "" {
			return "", false
		}
		ref = base.ResolveReference(ref)
	}

	if ref.Scheme != "http" && ref.Scheme != "https" {
		return "", false
	}

	return ref.String(), true
}

// Description trims and bounds description text. Text shorter than
// MinMeaningfulLength reports ok=false so the caller can fall through to a
// richer default.
func Description(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < MinMeaningfulLength {
		return "", false
	}
	return Truncate(trimmed, DescriptionLimit), true
}

// Truncate cuts text at max runes and appends the truncation marker.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + TruncationMarker
}

// Rating pulls a decimal rating out of text like "4.5 out of 5 stars".
func Rating(raw string) (float64, bool) {
	match := ratingPattern.FindString(raw)
	if match == "" {
		return 0, false
	}
	rating, err := strconv.ParseFloat(match, 64)
	if err != nil || rating < 0 {
		return 0, false
	}
	return rating, true
}

// Count pulls an integer out of text like "1,234 ratings".
func Count(raw string) (int, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	match := countPattern.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	count, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return count, true
}
