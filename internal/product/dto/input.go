package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fekuna/catalog-service/internal/model"
)

type CreateProductInput struct {
	ID          string
	Name        string
	Image       string
	Description *model.Description
	Price       decimal.NullDecimal
}

type UpsertResult struct {
	Inserted int
	Updated  int
}

// ProductRecord is the JSON shape of a product in seed files and in the
// static catalog file.
type ProductRecord struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Image       string              `json:"image,omitempty"`
	Description *model.Description  `json:"description,omitempty"`
	Price       decimal.NullDecimal `json:"price"`
	CreatedAt   *time.Time          `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time          `json:"updatedAt,omitempty"`
}

// ToModel derives the base category and fills createdAt with now when the
// record carries none.
func (r ProductRecord) ToModel(now time.Time) model.Product {
	created := now
	if r.CreatedAt != nil {
		created = r.CreatedAt.UTC()
	}
	var updated *time.Time
	if r.UpdatedAt != nil {
		u := r.UpdatedAt.UTC()
		updated = &u
	}
	desc := r.Description
	if desc.IsEmpty() {
		desc = nil
	}
	return model.Product{
		ID:           r.ID,
		Name:         r.Name,
		BaseCategory: model.DeriveBaseCategory(r.Name),
		Description:  desc,
		Image:        r.Image,
		Price:        r.Price,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}
}

type SeedFile struct {
	Categories []string        `json:"categories"`
	Products   []ProductRecord `json:"products"`
}
