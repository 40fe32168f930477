package model

import "strings"

const (
	CategoryBeautyCare = "BEAUTY CARE INSTRUMENTS"
	CategoryEyelash    = "EYELASH PRODUCTS"

	// CategoryAll is the filter sentinel meaning "no category filter".
	CategoryAll = "ALL"
)

// BaseCategories are the only values BaseCategory can take.
var BaseCategories = []string{CategoryBeautyCare, CategoryEyelash}

// DeriveBaseCategory classifies a product from its name: anything mentioning
// "eye" (any case) is an eyelash product.
func DeriveBaseCategory(name string) string {
	if strings.Contains(strings.ToLower(name), "eye") {
		return CategoryEyelash
	}
	return CategoryBeautyCare
}
