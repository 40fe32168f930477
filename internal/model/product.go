package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           string // doubles as the SKU
	Name         string
	BaseCategory string
	Description  *Description // nil when no recognized field is set
	Image        string       // empty when the product has no image
	Price        decimal.NullDecimal
	CreatedAt    time.Time
	UpdatedAt    *time.Time // nil until the row is modified
}

// Description holds the structured sub-fields stored in the description
// column. Only these four keys survive serialization.
type Description struct {
	Size     string `json:"size,omitempty"`
	Category string `json:"category,omitempty"` // subcategory under the base category
	Finish   string `json:"finish,omitempty"`
	Details  string `json:"details,omitempty"`
}

// IsEmpty reports whether no field holds more than whitespace.
func (d *Description) IsEmpty() bool {
	if d == nil {
		return true
	}
	for _, v := range []string{d.Size, d.Category, d.Finish, d.Details} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Text joins the set fields with spaces, for search.
func (d *Description) Text() string {
	if d == nil {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, v := range []string{d.Size, d.Category, d.Finish, d.Details} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
