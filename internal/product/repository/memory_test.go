package repository

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/internal/product"
	"github.com/fekuna/catalog-service/internal/product/dto"
)

func staticCatalog() []model.Product {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tweezer := newProduct("ELT-200", "Eyelash Tweezer - Curved", base)
	tweezer.Description = &model.Description{Finish: "Matte", Details: "Anti-static"}
	tweezer.Price = price("12.50")
	scissors := newProduct("BCI-010", "Cuticle Scissors", base.Add(time.Hour))
	scissors.Price = price("8")
	return []model.Product{
		tweezer,
		scissors,
		newProduct("BCI-020", "Nail Clipper", base.Add(2*time.Hour)),
		newProduct("ELT-300", "Eyelash Glue", base.Add(3*time.Hour)),
	}
}

func TestFuzzyScore(t *testing.T) {
	assert.Equal(t, 0.0, fuzzyScore("tweez", "Eyelash Tweezer"))
	assert.Equal(t, 0.0, fuzzyScore("TWEEZER", "eyelash tweezer"))
	assert.Less(t, fuzzyScore("twezer", "Eyelash Tweezer"), DefaultFuzzyThreshold)
	assert.Greater(t, fuzzyScore("shampoo", "Eyelash Tweezer"), DefaultFuzzyThreshold)
	assert.Equal(t, 1.0, fuzzyScore("anything", ""))
}

func TestFuzzyRank_FieldsWeighedEqually(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	byName := newProduct("P-1", "Eyelash Tweezer", base)
	byDetails := newProduct("P-2", "Cuticle Pusher", base)
	byDetails.Description = &model.Description{Details: "Tweezer"}

	nameRank, ok := fuzzyRank(&byName, "twezer", DefaultFuzzyThreshold)
	require.True(t, ok)
	detailsRank, ok := fuzzyRank(&byDetails, "twezer", DefaultFuzzyThreshold)
	require.True(t, ok)

	assert.Greater(t, nameRank, 0.0)
	assert.Equal(t, nameRank, detailsRank)
}

func TestMemoryRepository_FuzzySearchToleratesTypos(t *testing.T) {
	repo := NewMemoryRepository(staticCatalog(), 0)

	items, total, err := repo.FindAll(context.Background(), dto.NewProductFilters("twezer", "", "", "", ""))

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"ELT-200"}, ids(items))
}

func TestMemoryRepository_RelevanceUnlessSortGiven(t *testing.T) {
	repo := NewMemoryRepository(staticCatalog(), 0)
	ctx := context.Background()

	// Only the product whose name contains the query matches.
	items, _, err := repo.FindAll(ctx, dto.NewProductFilters("glue", "", "", "", ""))
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, "ELT-300", items[0].ID)

	items, total, err := repo.FindAll(ctx, dto.NewProductFilters("eyelash", "", dto.SortDateOld, "", ""))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"ELT-200", "ELT-300"}, ids(items))
}

func TestMemoryRepository_FilterSortPaginate(t *testing.T) {
	repo := NewMemoryRepository(staticCatalog(), 0)
	ctx := context.Background()

	items, total, err := repo.FindAll(ctx, dto.NewProductFilters("", model.CategoryBeautyCare, "", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"BCI-010", "BCI-020"}, ids(items))

	items, _, err = repo.FindAll(ctx, dto.NewProductFilters("", "", dto.SortPriceDesc, "", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"ELT-200", "BCI-010", "BCI-020", "ELT-300"}, ids(items))

	items, total, err = repo.FindAll(ctx, dto.NewProductFilters("", "", dto.SortDateNew, "2", "3"))
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, []string{"ELT-200"}, ids(items))

	items, total, err = repo.FindAll(ctx, dto.NewProductFilters("", "", "", "9", "3"))
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMemoryRepository_HugePageIsEmpty(t *testing.T) {
	repo := NewMemoryRepository(staticCatalog(), 0)
	ctx := context.Background()

	for _, page := range []string{"9223372036854775807", "99999999999999999999", "1e400"} {
		items, total, err := repo.FindAll(ctx, dto.NewProductFilters("", "", "", page, "12"))
		require.NoError(t, err, page)
		assert.Equal(t, 4, total, page)
		assert.NotNil(t, items, page)
		assert.Empty(t, items, page)
	}

	// An offset past int range must not wrap around either.
	f := dto.NewProductFilters("", "", "", "", "12")
	f.Page = math.MaxInt
	items, _, err := repo.FindAll(ctx, f)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryRepository_CreateAndFind(t *testing.T) {
	repo := NewMemoryRepository(nil, 0)
	ctx := context.Background()

	p := newProduct("SKU1", "Eye Tweezer", time.Now())
	require.NoError(t, repo.Create(ctx, &p))

	err := repo.Create(ctx, &p)
	assert.True(t, errors.Is(err, product.ErrAlreadyExists))

	got, err := repo.FindByID(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, "Eye Tweezer", got.Name)

	missing, err := repo.FindByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLoadStaticCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	data := `{
		"categories": ["Tweezers"],
		"products": [
			{"id": "ELT-200", "name": "Eyelash Tweezer", "price": 12.5, "description": {"finish": "Matte"}},
			{"id": "", "name": "No SKU"},
			{"id": "BCI-1", "name": "Scissors", "createdAt": "2024-08-21T10:00:00Z"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	products, err := LoadStaticCatalog(path)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, model.CategoryEyelash, products[0].BaseCategory)
	assert.True(t, products[0].Price.Valid)
	assert.Equal(t, "Matte", products[0].Description.Finish)
	assert.Equal(t, model.CategoryBeautyCare, products[1].BaseCategory)
	assert.False(t, products[1].Price.Valid)
	assert.Equal(t, 2024, products[1].CreatedAt.Year())

	_, err = LoadStaticCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
