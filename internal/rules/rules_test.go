package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagespark/pagespark/internal/platform"
)

var allPlatforms = []platform.Platform{
	platform.AliExpress,
	platform.Amazon,
	platform.EBay,
	platform.Generic,
}

// Every platform needs a full table: one missing cascade means a field
// silently never extracts.
func TestEveryPlatformHasCompleteTable(t *testing.T) {
	for _, p := range allPlatforms {
		t.Run(p.String(), func(t *testing.T) {
			set := For(p)

			assert.NotEmpty(t, set.Title, "title rules")
			assert.NotEmpty(t, set.Price, "price rules")
			assert.NotEmpty(t, set.Description, "description rules")
			assert.NotEmpty(t, set.Images, "image rules")
			assert.NotEmpty(t, set.Stock, "stock rules")
			assert.NotEmpty(t, set.Rating, "rating rules")
			assert.NotEmpty(t, set.ReviewCount, "review count rules")
			assert.NotEmpty(t, set.Reviews, "review rules")

			assert.NotEmpty(t, set.Defaults.Title, "default title")
			assert.NotEmpty(t, set.Defaults.Description, "default description")
			assert.NotEmpty(t, set.Defaults.Availability.ShippingInfo.EstimatedDelivery, "default delivery")
		})
	}
}

func TestImageRulesCarryAttributes(t *testing.T) {
	for _, p := range allPlatforms {
		for _, rule := range For(p).Images {
			require.NotEmpty(t, rule.Attrs, "image rule %q on %s must read an attribute", rule.Selector, p)
			assert.Equal(t, "src", rule.Attrs[0], "src is always the first candidate attribute")
		}
	}
}

func TestNoEmptySelectors(t *testing.T) {
	for _, p := range allPlatforms {
		set := For(p)
		cascades := [][]Rule{set.Title, set.Price, set.Description, set.Images, set.Stock, set.Rating, set.ReviewCount}
		for _, cascade := range cascades {
			for _, rule := range cascade {
				assert.NotEmpty(t, rule.Selector)
			}
		}
		for _, rule := range set.Reviews {
			assert.NotEmpty(t, rule.Container)
		}
	}
}

func TestForUnknownPlatformFallsBackToGeneric(t *testing.T) {
	set := For(platform.Platform("Shopify"))
	assert.Equal(t, For(platform.Generic).Defaults.Title, set.Defaults.Title)
}
