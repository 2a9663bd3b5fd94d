// Package budget implements the classification and aggregation pipeline:
// keyword-based categorization of transaction descriptions, per-category
// spend aggregation against allocated budgets, and the monthly net-position
// summary.
package budget

import "strings"

// CategoryOther is the fallback bucket for descriptions matching no rule.
const CategoryOther = "Other"

// rule maps a set of keywords to a category. Rules are evaluated in order
// and the first match wins, so cross-category keyword collisions resolve to
// the earlier rule.
type rule struct {
	category string
	keywords []string
}

var rules = []rule{
	{"Groceries", []string{"woolworths", "coles", "aldi"}},
	{"Transportation", []string{"uber", "lyft", "bus", "train"}},
	{"Entertainment", []string{"netflix", "spotify", "cinema"}},
	{"Utilities", []string{"electricity", "water", "internet", "phone"}},
	{"Dining Out", []string{"restaurant", "cafe", "bar", "mcdonalds", "kfc"}},
}

// CategoryFor returns the budget category for a transaction description.
// Matching is case-insensitive substring matching; it always returns a name,
// falling back to CategoryOther.
func CategoryFor(description string) string {
	lower := strings.ToLower(description)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return CategoryOther
}
