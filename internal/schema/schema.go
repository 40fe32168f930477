// Package schema creates and upgrades the catalog tables.
package schema

import (
	"context"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/catalog-service/internal/model"
)

const createCategories = `
	CREATE TABLE IF NOT EXISTS categories (
		name TEXT PRIMARY KEY
	)`

const createProducts = `
	CREATE TABLE IF NOT EXISTS products (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		base_category TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '{}',
		image         TEXT,
		price         REAL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT
	)`

const createMessages = `
	CREATE TABLE IF NOT EXISTS messages (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		company    TEXT,
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		is_read    INTEGER NOT NULL DEFAULT 0
	)`

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_products_base_category ON products (base_category)`,
	`CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name COLLATE NOCASE)`,
	`CREATE INDEX IF NOT EXISTS idx_products_price ON products (price)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_is_read ON messages (is_read)`,
}

// ProductColumns is the current products column set.
var ProductColumns = []string{"id", "name", "base_category", "description", "image", "price", "created_at", "updated_at"}

// Ensure brings the database to the current schema. A products table with a
// different column set is dropped and recreated; its rows are lost.
// Returns true when such a legacy table was replaced.
func Ensure(ctx context.Context, db *sqlx.DB) (bool, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, errors.Wrap(err, "begin schema")
	}
	defer tx.Rollback()

	var cols []string
	if err := tx.SelectContext(ctx, &cols, "SELECT name FROM pragma_table_info('products')"); err != nil {
		return false, errors.Wrap(err, "read products columns")
	}

	recreated := false
	if len(cols) > 0 && !sameColumns(cols, ProductColumns) {
		if _, err := tx.ExecContext(ctx, "DROP TABLE products"); err != nil {
			return false, errors.Wrap(err, "drop legacy products")
		}
		recreated = true
	}

	stmts := append([]string{createCategories, createProducts, createMessages}, indexes...)
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, errors.Wrapf(err, "exec %s", firstLine(stmt))
		}
	}

	for _, name := range model.BaseCategories {
		if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO categories (name) VALUES (?)", name); err != nil {
			return false, errors.Wrap(err, "seed base categories")
		}
	}

	if err := tx.Commit(); err != nil {
		return false, errors.Wrap(err, "commit schema")
	}
	return recreated, nil
}

func sameColumns(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	a := append([]string(nil), got...)
	b := append([]string(nil), want...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

func firstLine(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if i := strings.IndexByte(stmt, '\n'); i > 0 {
		return stmt[:i]
	}
	return stmt
}
