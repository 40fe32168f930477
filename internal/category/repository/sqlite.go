package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.DB.SelectContext(ctx, &names, "SELECT name FROM categories ORDER BY name"); err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return names, nil
}
