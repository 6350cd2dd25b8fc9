package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		amount   float64
		currency string
		ok       bool
	}{
		{"Dollar with thousands separator", "$1,299.99", 1299.99, "USD", true},
		{"Plain dollar", "$19.99", 19.99, "USD", true},
		{"No symbol defaults to USD", "49.50", 49.50, "USD", true},
		{"Euro symbol", "€89.00", 89.00, "EUR", true},
		{"Pound symbol", "£12.49", 12.49, "GBP", true},
		{"Yen symbol", "¥1500", 1500, "JPY", true},
		{"Rupee symbol", "₹2,499", 2499, "INR", true},
		{"Symbol with space", "$ 25.00", 25.00, "USD", true},
		{"Embedded in text", "Now only $7.99 today", 7.99, "USD", true},
		{"Integer amount", "1299", 1299, "USD", true},
		{"No digits", "Contact us for pricing", 0, "USD", false},
		{"Empty", "", 0, "USD", false},
		{"Zero amount", "$0.00", 0, "USD", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := Price(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.amount, price.Current)
			assert.Equal(t, tt.currency, price.Currency)
		})
	}
}

// Without a detected discount the current and original amounts are the same
// and the discount is zero.
func TestPriceNoDiscount(t *testing.T) {
	price, ok := Price("$42.00")
	require.True(t, ok)
	assert.Equal(t, price.Current, price.Original)
	assert.Zero(t, price.DiscountPercentage)
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://shop.example.com/products/widget"

	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"Already absolute", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg", true},
		{"Protocol relative", "//cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg", true},
		{"Root relative", "/images/a.jpg", "https://shop.example.com/images/a.jpg", true},
		{"Relative path", "a.jpg", "https://shop.example.com/products/a.jpg", true},
		{"Dotted relative path", "../img/a.jpg", "https://shop.example.com/img/a.jpg", true},
		{"Data URI discarded", "data:image/png;base64,AAAA", "", false},
		{"Javascript discarded", "javascript:void(0)", "", false},
		{"Empty", "", "", false},
		{"Whitespace only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := AbsoluteURL(tt.input, base)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAbsoluteURLBadBase(t *testing.T) {
	_, ok := AbsoluteURL("/a.jpg", "not a base")
	assert.False(t, ok)
}

func TestDescription(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		desc, ok := Description("  A perfectly reasonable product description.  ")
		require.True(t, ok)
		assert.Equal(t, "A perfectly reasonable product description.", desc)
	})

	t.Run("rejects short text", func(t *testing.T) {
		_, ok := Description("Too short")
		assert.False(t, ok)
	})

	t.Run("truncates long text", func(t *testing.T) {
		long := strings.Repeat("a", DescriptionLimit+100)
		desc, ok := Description(long)
		require.True(t, ok)
		assert.Len(t, desc, DescriptionLimit+len(TruncationMarker))
		assert.True(t, strings.HasSuffix(desc, TruncationMarker))
	})

	t.Run("keeps text at the limit untouched", func(t *testing.T) {
		exact := strings.Repeat("b", DescriptionLimit)
		desc, ok := Description(exact)
		require.True(t, ok)
		assert.Equal(t, exact, desc)
	})
}

func TestRating(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"Out of five", "4.5 out of 5 stars", 4.5, true},
		{"Bare number", "4.8", 4.8, true},
		{"Integer", "5", 5, true},
		{"No number", "No rating", 0, false},
		{"Empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, ok := Rating(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, rating)
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		ok       bool
	}{
		{"With separator", "1,234 ratings", 1234, true},
		{"Plain", "87 reviews", 87, true},
		{"No digits", "no reviews yet", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, ok := Count(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, count)
		})
	}
}
