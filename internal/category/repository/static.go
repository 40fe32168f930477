package repository

import (
	"context"
	"sort"

	"github.com/fekuna/catalog-service/internal/model"
)

// StaticRepository lists the fixed base categories for the database-less
// catalog.
type StaticRepository struct{}

func NewStaticRepository() *StaticRepository {
	return &StaticRepository{}
}

func (StaticRepository) FindAll(_ context.Context) ([]string, error) {
	names := append([]string(nil), model.BaseCategories...)
	sort.Strings(names)
	return names, nil
}
