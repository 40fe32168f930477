package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/internal/product"
	"github.com/fekuna/catalog-service/internal/product/codec"
	"github.com/fekuna/catalog-service/internal/product/dto"
	"github.com/fekuna/catalog-service/pkg/database/sqlite"
)

const productColumns = `id, name, base_category, description, image, price, created_at, updated_at`

const insertProductQuery = `
	INSERT INTO products (id, name, base_category, description, image, price, created_at, updated_at)
	VALUES (:id, :name, :base_category, :description, :image, :price, :created_at, :updated_at)
`

const ensureCategoryQuery = `INSERT OR IGNORE INTO categories (name) VALUES (?)`

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin create product")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, ensureCategoryQuery, p.BaseCategory); err != nil {
		return errors.Wrap(err, "ensure category")
	}

	if _, err := tx.NamedExecContext(ctx, insertProductQuery, codec.Serialize(p)); err != nil {
		if sqlite.IsUniqueViolation(err) {
			return errors.Wrap(product.ErrAlreadyExists, err.Error())
		}
		return errors.Wrap(err, "insert product")
	}

	return tx.Commit()
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var row codec.Row
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ? LIMIT 1`
	if err := r.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find product")
	}
	p := codec.Parse(&row)
	return &p, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Category != "" {
		conditions = append(conditions, "base_category = :category")
		args["category"] = f.Category
	}
	if f.SearchQuery != "" {
		// LIKE is case-insensitive for ASCII; wildcards in q are literal.
		conditions = append(conditions, `(name LIKE :search ESCAPE '\' OR id LIKE :search ESCAPE '\'`+
			` OR base_category LIKE :search ESCAPE '\' OR description LIKE :search ESCAPE '\')`)
		args["search"] = "%" + escapeLike(f.SearchQuery) + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Count first and release the connection before listing.
	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM products"+whereClause, args)
	if err != nil {
		return nil, 0, errors.Wrap(err, "build count query")
	}
	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s LIMIT %d OFFSET %d",
		productColumns, whereClause, orderBy(f.Sort), f.PageSize, f.Offset())

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "prepare list query")
	}
	defer nstmt.Close()

	var rows []codec.Row
	if err := nstmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, 0, errors.Wrap(err, "list products")
	}

	products := make([]model.Product, 0, len(rows))
	for i := range rows {
		products = append(products, codec.Parse(&rows[i]))
	}
	return products, count, nil
}

// Upsert writes the whole batch in one transaction. Each product is checked
// for existence first: new ids are inserted with their createdAt, known ids
// get name, category, description, image and updated_at rewritten.
func (r *SQLiteRepository) Upsert(ctx context.Context, products []model.Product, reset bool) (*dto.UpsertResult, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin upsert")
	}
	defer tx.Rollback()

	if reset {
		if _, err := tx.ExecContext(ctx, "DELETE FROM products"); err != nil {
			return nil, errors.Wrap(err, "reset products")
		}
	}

	updateQuery := `
		UPDATE products
		SET name = :name, base_category = :base_category, description = :description,
			image = :image, updated_at = :updated_at
		WHERE id = :id
	`

	result := &dto.UpsertResult{}
	now := time.Now().UTC()
	for i := range products {
		p := &products[i]

		if _, err := tx.ExecContext(ctx, ensureCategoryQuery, p.BaseCategory); err != nil {
			return nil, errors.Wrap(err, "ensure category")
		}

		found, err := exists(ctx, tx, p.ID)
		if err != nil {
			return nil, err
		}

		if found {
			updated := now
			p.UpdatedAt = &updated
			if _, err := tx.NamedExecContext(ctx, updateQuery, codec.Serialize(p)); err != nil {
				return nil, errors.Wrapf(err, "update product %s", p.ID)
			}
			result.Updated++
			continue
		}

		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = nil
		if _, err := tx.NamedExecContext(ctx, insertProductQuery, codec.Serialize(p)); err != nil {
			return nil, errors.Wrapf(err, "insert product %s", p.ID)
		}
		result.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit upsert")
	}
	return result, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, categories []string, products []model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin seed")
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM products", "DELETE FROM categories"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "clear catalog")
		}
	}

	names := append(append([]string{}, model.BaseCategories...), categories...)
	for _, name := range names {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, ensureCategoryQuery, name); err != nil {
			return errors.Wrapf(err, "insert category %q", name)
		}
	}

	replace := strings.Replace(insertProductQuery, "INSERT INTO", "INSERT OR REPLACE INTO", 1)
	for i := range products {
		if _, err := tx.ExecContext(ctx, ensureCategoryQuery, products[i].BaseCategory); err != nil {
			return errors.Wrap(err, "ensure category")
		}
		if _, err := tx.NamedExecContext(ctx, replace, codec.Serialize(&products[i])); err != nil {
			return errors.Wrapf(err, "insert product %s", products[i].ID)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, "SELECT count(*) FROM products"); err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return count, nil
}

func (r *SQLiteRepository) Columns(ctx context.Context) ([]string, error) {
	var cols []string
	if err := r.DB.SelectContext(ctx, &cols, "SELECT name FROM pragma_table_info('products') ORDER BY cid"); err != nil {
		return nil, errors.Wrap(err, "read product columns")
	}
	return cols, nil
}

func (r *SQLiteRepository) Newest(ctx context.Context, n int) ([]model.Product, error) {
	var rows []codec.Row
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id ASC LIMIT ?`
	if err := r.DB.SelectContext(ctx, &rows, query, n); err != nil {
		return nil, errors.Wrap(err, "list newest products")
	}
	products := make([]model.Product, 0, len(rows))
	for i := range rows {
		products = append(products, codec.Parse(&rows[i]))
	}
	return products, nil
}

func exists(ctx context.Context, q sqlx.QueryerContext, id string) (bool, error) {
	var count int
	if err := sqlx.GetContext(ctx, q, &count, "SELECT count(*) FROM products WHERE id = ?", id); err != nil {
		return false, errors.Wrap(err, "check product exists")
	}
	return count > 0, nil
}

// orderBy whitelists sort tokens; every clause ends on id so pages are stable.
func orderBy(sort string) string {
	switch sort {
	case dto.SortAlphaDesc:
		return "name COLLATE NOCASE DESC, id ASC"
	case dto.SortDateNew:
		return "created_at DESC, id ASC"
	case dto.SortDateOld:
		return "created_at ASC, id ASC"
	case dto.SortPriceAsc:
		return "(price IS NULL) ASC, price ASC, id ASC"
	case dto.SortPriceDesc:
		return "(price IS NULL) ASC, price DESC, id ASC"
	default:
		return "name COLLATE NOCASE ASC, id ASC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
