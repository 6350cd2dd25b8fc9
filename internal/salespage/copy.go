// Package salespage turns product records into marketing copy and static
// HTML pages.
package salespage

import (
	"fmt"

	"github.com/pagespark/pagespark/internal/models"
)

// Copy is the synthesized marketing text for one product.
type Copy struct {
	Headline      string   `json:"headline"`
	Description   string   `json:"description"`
	Benefits      []string `json:"benefits"`
	CallToAction  string   `json:"call_to_action"`
	UrgencyText   string   `json:"urgency_text"`
	GuaranteeText string   `json:"guarantee_text"`
}

var defaultBenefits = []string{
	"Premium Quality Materials",
	"Fast & Secure Shipping",
	"30-Day Money-Back Guarantee",
	"24/7 Customer Support",
	"Limited Stock Available",
}

// GenerateCopy builds benefit-driven sales copy from a scraped record.
func GenerateCopy(record models.ProductRecord) Copy {
	benefits := make([]string, len(defaultBenefits))
	copy(benefits, defaultBenefits)

	if record.Availability.ShippingInfo.FreeShipping {
		benefits[1] = "Free Shipping Included"
	}

	urgency := "Only a few left in stock!"
	if !record.Availability.InStock {
		urgency = "Back in stock soon - reserve yours today!"
	}

	return Copy{
		Headline:      fmt.Sprintf("%s - Limited Time Offer!", record.Title),
		Description:   record.Description,
		Benefits:      benefits,
		CallToAction:  "Order Now - Limited Stock!",
		UrgencyText:   urgency,
		GuaranteeText: "30-Day Money-Back Guarantee",
	}
}
