package scraper

import (
	"github.com/pagespark/pagespark/internal/document"
	"github.com/pagespark/pagespark/internal/models"
	"github.com/pagespark/pagespark/internal/normalize"
	"github.com/pagespark/pagespark/internal/rules"
)

const (
	maxImages  = 5
	maxReviews = 3
)

// extractText walks a selector cascade and returns the first non-empty
// value. A miss on one rule silently advances to the next; exhausting the
// cascade reports ok=false, never an error.
func extractText(doc document.Document, cascade []rules.Rule) (string, bool) {
	for _, rule := range cascade {
		for _, node := range doc.Query(rule.Selector) {
			if value, ok := ruleValue(node, rule); ok {
				return value, true
			}
		}
	}
	return "", false
}

// ruleValue reads one node per the rule's kind: attribute rules take the
// first non-empty listed attribute, text rules the trimmed text.
func ruleValue(node document.Node, rule rules.Rule) (string, bool) {
	if len(rule.Attrs) > 0 {
		for _, name := range rule.Attrs {
			if value, ok := node.Attr(name); ok && value != "" {
				return value, true
			}
		}
		return "", false
	}
	if text := node.Text(); text != "" {
		return text, true
	}
	return "", false
}

// extractImages gathers from the first selector that yields usable URLs,
// caps the count, resolves each URL against the page, and marks the first
// entry primary. Unresolvable or non-HTTP URLs are skipped.
func extractImages(doc document.Document, cascade []rules.Rule, pageURL, alt string) []models.Image {
	for _, rule := range cascade {
		nodes := doc.Query(rule.Selector)
		if len(nodes) == 0 {
			continue
		}

		var images []models.Image
		for _, node := range nodes {
			if len(images) >= maxImages {
				break
			}
			raw, ok := ruleValue(node, rule)
			if !ok {
				continue
			}
			abs, ok := normalize.AbsoluteURL(raw, pageURL)
			if !ok {
				continue
			}
			imgAlt, _ := node.Attr("alt")
			if imgAlt == "" {
				imgAlt = alt
			}
			images = append(images, models.Image{
				URL:       abs,
				Alt:       imgAlt,
				IsPrimary: len(images) == 0,
			})
		}

		if len(images) > 0 {
			return images
		}
	}
	return nil
}

// extractReviews collects recent reviews from the first container rule that
// matches anything. Entries missing a comment are dropped.
func extractReviews(doc document.Document, cascade []rules.ReviewRule) []models.Review {
	for _, rule := range cascade {
		containers := doc.Query(rule.Container)
		if len(containers) == 0 {
			continue
		}

		var reviews []models.Review
		for _, container := range containers {
			if len(reviews) >= maxReviews {
				break
			}
			comment := firstText(container, rule.Comment)
			if comment == "" {
				continue
			}
			review := models.Review{
				Comment: comment,
				Author:  firstText(container, rule.Author),
			}
			if rating, ok := normalize.Rating(firstText(container, rule.Rating)); ok {
				review.Rating = rating
			}
			if review.Author == "" {
				review.Author = "Anonymous"
			}
			reviews = append(reviews, review)
		}

		if len(reviews) > 0 {
			return reviews
		}
	}
	return nil
}

func firstText(node document.Node, selector string) string {
	if selector == "" {
		return ""
	}
	for _, child := range node.Find(selector) {
		if text := child.Text(); text != "" {
			return text
		}
	}
	return ""
}
