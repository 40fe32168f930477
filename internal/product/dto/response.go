package dto

import (
	"github.com/fekuna/catalog-service/internal/model"
)

type ProductResponse struct {
	ID           string             `json:"id"`
	SKU          string             `json:"sku"`
	Name         string             `json:"name"`
	BaseCategory string             `json:"baseCategory"`
	Description  *model.Description `json:"description,omitempty"`
	Image        string             `json:"image,omitempty"`
	Price        *float64           `json:"price,omitempty"`
	CreatedAt    string             `json:"createdAt"`
	UpdatedAt    *string            `json:"updatedAt,omitempty"`
}

type ListProductsResponse struct {
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"perPage"`
	Items   []ProductResponse `json:"items"`
}

func NewProductResponse(p *model.Product) ProductResponse {
	resp := ProductResponse{
		ID:           p.ID,
		SKU:          p.ID,
		Name:         p.Name,
		BaseCategory: p.BaseCategory,
		Description:  p.Description,
		Image:        p.Image,
		CreatedAt:    model.FormatTimestamp(p.CreatedAt),
	}
	if p.Price.Valid {
		f := p.Price.Decimal.InexactFloat64()
		resp.Price = &f
	}
	if p.UpdatedAt != nil {
		u := model.FormatTimestamp(*p.UpdatedAt)
		resp.UpdatedAt = &u
	}
	return resp
}

func NewListProductsResponse(products []model.Product, total int, f *ProductFilters) ListProductsResponse {
	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, NewProductResponse(&products[i]))
	}
	return ListProductsResponse{
		Total:   total,
		Page:    f.Page,
		PerPage: f.PageSize,
		Items:   items,
	}
}
