package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProductFilters_Defaults(t *testing.T) {
	f := NewProductFilters("", "", "", "", "")

	assert.Equal(t, "", f.SearchQuery)
	assert.Equal(t, "", f.Category)
	assert.Equal(t, SortAlphaAsc, f.Sort)
	assert.False(t, f.SortGiven)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 12, f.PageSize)
	assert.Equal(t, 0, f.Offset())
}

func TestNewProductFilters_Coercion(t *testing.T) {
	tests := []struct {
		name         string
		page         string
		perPage      string
		wantPage     int
		wantPageSize int
	}{
		{"valid", "3", "20", 3, 20},
		{"zero page", "0", "12", 1, 12},
		{"negative page", "-4", "12", 1, 12},
		{"garbage page", "abc", "12", 1, 12},
		{"zero perPage clamps to one", "1", "0", 1, 1},
		{"negative perPage clamps to one", "1", "-5", 1, 1},
		{"huge perPage clamps to max", "1", "1000", 1, 100},
		{"garbage perPage keeps default", "1", "lots", 1, 12},
		{"leading zero page is decimal", "010", "12", 10, 12},
		{"leading zero page with eight", "08", "12", 8, 12},
		{"leading zero perPage", "1", "09", 1, 9},
		{"fractional page truncates", "2.7", "12", 2, 12},
		{"exponent page", "1e3", "12", 1000, 12},
		{"NaN page keeps default", "NaN", "12", 1, 12},
		{"max int page saturates", "9223372036854775807", "12", MaxPage, 12},
		{"out of range page saturates", "99999999999999999999", "12", MaxPage, 12},
		{"overflowing literal saturates", "1e400", "100", MaxPage, 100},
		{"huge negative perPage clamps to one", "1", "-1e30", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewProductFilters("", "", "", tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantPageSize, f.PageSize)
			assert.GreaterOrEqual(t, f.Offset(), 0)
		})
	}
}

func TestNewProductFilters_QueryAndCategory(t *testing.T) {
	f := NewProductFilters("   ", "ALL", "DATE_NEW", "2", "5")
	assert.Equal(t, "", f.SearchQuery)
	assert.Equal(t, "", f.Category)
	assert.Equal(t, SortDateNew, f.Sort)
	assert.True(t, f.SortGiven)
	assert.Equal(t, 5, f.Offset())

	f = NewProductFilters("  tweezer ", "EYELASH PRODUCTS", "", "", "")
	assert.Equal(t, "tweezer", f.SearchQuery)
	assert.Equal(t, "EYELASH PRODUCTS", f.Category)
}

func TestNormalizeSort(t *testing.T) {
	assert.Equal(t, SortPriceDesc, NormalizeSort("price_desc"))
	assert.Equal(t, SortAlphaAsc, NormalizeSort("RANDOM"))
	assert.Equal(t, SortAlphaAsc, NormalizeSort(""))
}

func TestProductFilters_OffsetNeverOverflows(t *testing.T) {
	f := NewProductFilters("", "", "", "9223372036854775807", "100")
	assert.Equal(t, (MaxPage-1)*MaxPerPage, f.Offset())

	f = &ProductFilters{Page: math.MaxInt, PageSize: 12}
	assert.Equal(t, math.MaxInt, f.Offset())
}
