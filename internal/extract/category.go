package extract

import (
	"strings"

	"artcat/internal/config"
)

const DefaultCategory = "General"

// Categorizer applies the ordered classification rule table: the first
// rule whose field contains one of its substrings decides the
// category. No match falls through to the default.
type Categorizer struct {
	rules []config.CategoryRule
}

func NewCategorizer(rules []config.CategoryRule) *Categorizer {
	return &Categorizer{rules: rules}
}

func (c *Categorizer) Categorize(name, description, origin string) string {
	for _, rule := range c.rules {
		var haystack string
		switch rule.Field {
		case "description":
			haystack = description
		case "origin":
			haystack = origin
		default:
			haystack = name
		}
		haystack = strings.ToLower(haystack)

		for _, sub := range rule.Contains {
			if strings.Contains(haystack, strings.ToLower(sub)) {
				return rule.Category
			}
		}
	}

	return DefaultCategory
}
