// Package rules holds the per-platform selector tables. Each field has an
// ordered candidate list, most specific first; extraction tries them in
// order and stops at the first usable value. Adding a platform is a data
// addition here, not new control flow.
package rules

import (
	"github.com/pagespark/pagespark/internal/models"
	"github.com/pagespark/pagespark/internal/platform"
)

// Rule is one candidate selector. With Attrs empty the element's trimmed
// text is taken; otherwise the first non-empty listed attribute wins.
type Rule struct {
	Selector string
	Attrs    []string
}

// ReviewRule locates review containers and the sub-elements inside each.
type ReviewRule struct {
	Container string
	Rating    string
	Comment   string
	Author    string
}

// Defaults are the field values substituted when every selector misses.
type Defaults struct {
	Title        string
	Description  string
	Availability models.Availability
}

// Set is the complete rule table for one platform.
type Set struct {
	Title       []Rule
	Price       []Rule
	Description []Rule
	Images      []Rule
	Stock       []Rule
	Rating      []Rule
	ReviewCount []Rule
	Reviews     []ReviewRule
	Defaults    Defaults
}

// imageAttrs are tried in order on matched <img> elements. Lazy-loading
// markup often keeps the real URL out of src.
var imageAttrs = []string{"src", "data-src", "data-lazy"}

var tables = map[platform.Platform]Set{
	platform.AliExpress: {
		Title: []Rule{
			{Selector: `h1[data-pl="product-title"]`},
			{Selector: ".product-title-text"},
			{Selector: "h1.product-title"},
			{Selector: "h1"},
			{Selector: ".title-text"},
		},
		Price: []Rule{
			{Selector: ".notranslate"},
			{Selector: `[data-pl="product-price"]`},
			{Selector: ".price-current"},
			{Selector: ".price"},
			{Selector: ".product-price"},
		},
		Description: []Rule{
			{Selector: ".product-description"},
			{Selector: `[data-pl="product-description"]`},
			{Selector: ".product-detail-description"},
			{Selector: ".description"},
			{Selector: `meta[name="description"]`, Attrs: []string{"content"}},
		},
		Images: []Rule{
			{Selector: ".images-view-item img", Attrs: imageAttrs},
			{Selector: ".product-image img", Attrs: imageAttrs},
			{Selector: ".gallery-image img", Attrs: imageAttrs},
			{Selector: `img[src*="alicdn"]`, Attrs: imageAttrs},
		},
		Stock: []Rule{
			{Selector: ".quantity--info"},
			{Selector: ".product-quantity-tip"},
		},
		Rating: []Rule{
			{Selector: ".overview-rating-average"},
			{Selector: ".rating-average"},
			{Selector: `[data-pl="rating-average"]`},
		},
		ReviewCount: []Rule{
			{Selector: ".overview-rating-total"},
			{Selector: ".rating-total"},
			{Selector: `[data-pl="rating-total"]`},
		},
		Reviews: []ReviewRule{
			{
				Container: ".review-item, .feedback-item",
				Rating:    ".star-view, .rating",
				Comment:   ".buyer-feedback, .review-content, .feedback-content",
				Author:    ".buyer-name, .user-name",
			},
		},
		Defaults: Defaults{
			Title:       "AliExpress Product",
			Description: "Product description not available",
			Availability: models.Availability{
				InStock:       true,
				StockQuantity: 999,
				ShippingInfo: models.ShippingInfo{
					FreeShipping:      true,
					EstimatedDelivery: "7-15 business days",
					ShippingCost:      "0",
				},
			},
		},
	},

	platform.Amazon: {
		Title: []Rule{
			{Selector: "#productTitle"},
			{Selector: "#title"},
			{Selector: "h1.a-size-large"},
			{Selector: "h1"},
		},
		Price: []Rule{
			{Selector: ".a-price .a-offscreen"},
			{Selector: "#priceblock_dealprice"},
			{Selector: "#priceblock_ourprice"},
			{Selector: "span.a-price.a-text-price.a-size-medium.apexPriceToPay"},
			{Selector: ".a-price-whole"},
		},
		Description: []Rule{
			{Selector: "#productDescription"},
			{Selector: "#feature-bullets"},
			{Selector: "#bookDescription_feature_div"},
			{Selector: `meta[name="description"]`, Attrs: []string{"content"}},
		},
		Images: []Rule{
			{Selector: "#altImages ul li img", Attrs: imageAttrs},
			{Selector: "#landingImage", Attrs: imageAttrs},
			{Selector: "#imgBlkFront", Attrs: imageAttrs},
			{Selector: "#main-image-container img", Attrs: imageAttrs},
		},
		Stock: []Rule{
			{Selector: "#availability span"},
			{Selector: "#availability"},
		},
		Rating: []Rule{
			{Selector: `[data-hook="rating-out-of-text"]`},
			{Selector: "span.a-icon-alt"},
		},
		ReviewCount: []Rule{
			{Selector: "#acrCustomerReviewText"},
			{Selector: `[data-hook="total-review-count"]`},
		},
		Reviews: []ReviewRule{
			{
				Container: `[data-hook="review"]`,
				Rating:    `[data-hook="review-star-rating"] .a-icon-alt`,
				Comment:   `[data-hook="review-body"] span`,
				Author:    ".a-profile-name",
			},
		},
		Defaults: Defaults{
			Title:       "Amazon Product",
			Description: "Product description not available",
			Availability: models.Availability{
				InStock:       true,
				StockQuantity: 999,
				ShippingInfo: models.ShippingInfo{
					EstimatedDelivery: "N/A",
					ShippingCost:      "N/A",
				},
			},
		},
	},

	platform.EBay: {
		Title: []Rule{
			{Selector: ".x-item-title__mainTitle .ux-textspans"},
			{Selector: "h1.x-item-title__mainTitle"},
			{Selector: "#itemTitle"},
			{Selector: "h1"},
		},
		Price: []Rule{
			{Selector: ".x-price-primary .ux-textspans"},
			{Selector: "#prcIsum"},
			{Selector: "#mm-saleDscPrc"},
			{Selector: ".display-price"},
		},
		Description: []Rule{
			{Selector: ".x-item-description"},
			{Selector: "#viTabs_0_is"},
			{Selector: "#desc_div"},
			{Selector: `meta[name="description"]`, Attrs: []string{"content"}},
		},
		Images: []Rule{
			{Selector: ".ux-image-carousel-item img", Attrs: imageAttrs},
			{Selector: "#icImg", Attrs: imageAttrs},
			{Selector: ".img-wrap img", Attrs: imageAttrs},
		},
		Stock: []Rule{
			{Selector: ".d-quantity__availability"},
			{Selector: "#qtySubTxt"},
		},
		Rating: []Rule{
			{Selector: ".ux-summary__start--rating .ux-textspans"},
			{Selector: ".review--start--rating"},
		},
		ReviewCount: []Rule{
			{Selector: ".ux-summary__count .ux-textspans"},
			{Selector: ".review--count"},
		},
		Reviews: []ReviewRule{
			{
				Container: ".fdbk-container",
				Comment:   ".fdbk-container__details__comment",
				Author:    ".fdbk-container__details__info__username",
			},
		},
		Defaults: Defaults{
			Title:       "eBay Product",
			Description: "Product description not available",
			Availability: models.Availability{
				InStock:       true,
				StockQuantity: 999,
				ShippingInfo: models.ShippingInfo{
					EstimatedDelivery: "N/A",
					ShippingCost:      "N/A",
				},
			},
		},
	},

	platform.Generic: {
		Title: []Rule{
			{Selector: `h1[data-testid="product-title"]`},
			{Selector: "h1.product-title"},
			{Selector: "h1.title"},
			{Selector: "h1"},
			{Selector: ".product-name"},
			{Selector: ".product-title"},
			{Selector: "title"},
		},
		Price: []Rule{
			{Selector: `[itemprop="price"]`},
			{Selector: `[data-testid="price"]`},
			{Selector: ".price"},
			{Selector: ".product-price"},
			{Selector: ".current-price"},
			{Selector: `[class*="price"]`},
		},
		Description: []Rule{
			{Selector: `[data-testid="product-description"]`},
			{Selector: ".product-description"},
			{Selector: ".description"},
			{Selector: ".product-details"},
			{Selector: ".product-info"},
			{Selector: `meta[name="description"]`, Attrs: []string{"content"}},
		},
		Images: []Rule{
			{Selector: `[data-testid="product-image"] img`, Attrs: imageAttrs},
			{Selector: ".product-image img", Attrs: imageAttrs},
			{Selector: ".main-image img", Attrs: imageAttrs},
			{Selector: ".hero-image img", Attrs: imageAttrs},
			{Selector: "img", Attrs: imageAttrs},
		},
		Stock: []Rule{
			{Selector: `[itemprop="availability"]`},
			{Selector: ".availability"},
			{Selector: ".stock"},
		},
		Rating: []Rule{
			{Selector: `[itemprop="ratingValue"]`},
			{Selector: ".average-rating"},
			{Selector: ".rating"},
		},
		ReviewCount: []Rule{
			{Selector: `[itemprop="reviewCount"]`},
			{Selector: ".review-count"},
		},
		Reviews: []ReviewRule{
			{
				Container: ".review, .review-item",
				Rating:    ".rating",
				Comment:   ".review-text, .comment",
				Author:    ".author, .reviewer",
			},
		},
		Defaults: Defaults{
			Title:       "Generic Product",
			Description: "No description available",
			Availability: models.Availability{
				InStock:       true,
				StockQuantity: 999,
				ShippingInfo: models.ShippingInfo{
					EstimatedDelivery: "N/A",
					ShippingCost:      "N/A",
				},
			},
		},
	},
}

// For returns the rule table for a platform, falling back to the generic
// table for unknown tags.
func For(p platform.Platform) Set {
	if set, ok := tables[p]; ok {
		return set
	}
	return tables[platform.Generic]
}
