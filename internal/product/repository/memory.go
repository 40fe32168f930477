package repository

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/internal/product"
	"github.com/fekuna/catalog-service/internal/product/dto"
)

// MemoryRepository serves the catalog from process memory when no database
// is available. Search is approximate rather than a literal substring match.
type MemoryRepository struct {
	mu        sync.RWMutex
	products  map[string]model.Product
	threshold float64
}

func NewMemoryRepository(products []model.Product, threshold float64) *MemoryRepository {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	m := make(map[string]model.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &MemoryRepository{products: m, threshold: threshold}
}

// LoadStaticCatalog reads a seed file and returns its products ready for
// NewMemoryRepository.
func LoadStaticCatalog(path string) ([]model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read static catalog")
	}
	var seed dto.SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, errors.Wrapf(err, "decode static catalog %s", path)
	}

	now := time.Now().UTC()
	products := make([]model.Product, 0, len(seed.Products))
	for _, rec := range seed.Products {
		if strings.TrimSpace(rec.ID) == "" || strings.TrimSpace(rec.Name) == "" {
			continue
		}
		products = append(products, rec.ToModel(now))
	}
	return products, nil
}

func (r *MemoryRepository) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; ok {
		return errors.Wrapf(product.ErrAlreadyExists, "id %s", p.ID)
	}
	r.products[p.ID] = *p
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	r.mu.RLock()
	candidates := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		if f.Category != "" && p.BaseCategory != f.Category {
			continue
		}
		candidates = append(candidates, p)
	}
	r.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	if f.SearchQuery != "" {
		candidates = r.rankMatches(candidates, f.SearchQuery)
		if f.SortGiven {
			sortProducts(candidates, f.Sort)
		}
	} else {
		sortProducts(candidates, f.Sort)
	}

	total := len(candidates)
	start := f.Offset()
	if start < 0 || start >= total {
		return []model.Product{}, total, nil
	}
	end := total
	if f.PageSize < total-start {
		end = start + f.PageSize
	}
	return candidates[start:end], total, nil
}

// rankMatches keeps products within the fuzzy threshold ordered by relevance.
func (r *MemoryRepository) rankMatches(products []model.Product, q string) []model.Product {
	type ranked struct {
		p    model.Product
		rank float64
	}
	hits := make([]ranked, 0, len(products))
	for i := range products {
		if rank, ok := fuzzyRank(&products[i], q, r.threshold); ok {
			hits = append(hits, ranked{p: products[i], rank: rank})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].rank != hits[j].rank {
			return hits[i].rank < hits[j].rank
		}
		return lessAlpha(&hits[i].p, &hits[j].p)
	})

	out := make([]model.Product, len(hits))
	for i := range hits {
		out[i] = hits[i].p
	}
	return out
}

// sortProducts mirrors the SQL ORDER BY whitelist.
func sortProducts(products []model.Product, token string) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := &products[i], &products[j]
		switch token {
		case dto.SortAlphaDesc:
			if la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name); la != lb {
				return la > lb
			}
		case dto.SortDateNew:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		case dto.SortDateOld:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		case dto.SortPriceAsc, dto.SortPriceDesc:
			if a.Price.Valid != b.Price.Valid {
				return a.Price.Valid
			}
			if a.Price.Valid && !a.Price.Decimal.Equal(b.Price.Decimal) {
				if token == dto.SortPriceAsc {
					return a.Price.Decimal.LessThan(b.Price.Decimal)
				}
				return a.Price.Decimal.GreaterThan(b.Price.Decimal)
			}
		default:
			return lessAlpha(a, b)
		}
		return a.ID < b.ID
	})
}

func lessAlpha(a, b *model.Product) bool {
	if la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name); la != lb {
		return la < lb
	}
	return a.ID < b.ID
}
