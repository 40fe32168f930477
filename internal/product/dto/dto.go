package dto

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/fekuna/catalog-service/internal/model"
)

const (
	SortAlphaAsc  = "ALPHA_ASC"
	SortAlphaDesc = "ALPHA_DESC"
	SortDateNew   = "DATE_NEW"
	SortDateOld   = "DATE_OLD"
	SortPriceAsc  = "PRICE_ASC"
	SortPriceDesc = "PRICE_DESC"

	DefaultPage    = 1
	DefaultPerPage = 12
	MaxPerPage     = 100

	// MaxPage keeps (page-1)*perPage inside int for every allowed perPage.
	MaxPage = math.MaxInt / MaxPerPage
)

type ProductFilters struct {
	SearchQuery string // trimmed, empty means no search
	Category    string // empty means no filter
	Sort        string // one of the Sort* tokens
	SortGiven   bool   // false when the caller did not ask for an order
	Page        int
	PageSize    int
}

// Offset is the number of rows skipped before the requested page.
func (f *ProductFilters) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.PageSize {
		return math.MaxInt
	}
	return (f.Page - 1) * f.PageSize
}

// NewProductFilters coerces raw query-string values into bounded filters.
// Nothing here fails: bad values fall back to defaults.
func NewProductFilters(q, category, sort, page, perPage string) *ProductFilters {
	f := &ProductFilters{
		SearchQuery: strings.TrimSpace(q),
		Sort:        NormalizeSort(sort),
		SortGiven:   strings.TrimSpace(sort) != "",
		Page:        DefaultPage,
		PageSize:    DefaultPerPage,
	}

	if c := strings.TrimSpace(category); c != "" && c != model.CategoryAll {
		f.Category = c
	}

	if p, ok := parseNumber(page); ok && p >= 2 {
		f.Page = MaxPage
		if p < MaxPage {
			f.Page = int(p)
		}
	}

	if n, ok := parseNumber(perPage); ok {
		switch {
		case n >= MaxPerPage:
			f.PageSize = MaxPerPage
		case n < 1:
			f.PageSize = 1
		default:
			f.PageSize = int(n)
		}
	}

	return f
}

// parseNumber reads a base-10 number, truncated toward zero. Leading zeros
// are decimal and literals too large for a float64 saturate to infinity.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(s)
	if err != nil {
		f, perr := strconv.ParseFloat(s, 64)
		if !errors.Is(perr, strconv.ErrRange) {
			return 0, false
		}
		v = f
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return math.Trunc(v), true
}

// NormalizeSort maps unknown tokens to alphabetical ascending.
func NormalizeSort(s string) string {
	switch s = strings.ToUpper(strings.TrimSpace(s)); s {
	case SortAlphaAsc, SortAlphaDesc, SortDateNew, SortDateOld, SortPriceAsc, SortPriceDesc:
		return s
	default:
		return SortAlphaAsc
	}
}
