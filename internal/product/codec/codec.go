// Package codec converts products between the domain model and the flat
// column layout of the products table.
package codec

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fekuna/catalog-service/internal/model"
)

type Row struct {
	ID           string              `db:"id"`
	Name         string              `db:"name"`
	BaseCategory string              `db:"base_category"`
	Description  string              `db:"description"`
	Image        sql.NullString      `db:"image"`
	Price        decimal.NullDecimal `db:"price"`
	CreatedAt    string              `db:"created_at"`
	UpdatedAt    sql.NullString      `db:"updated_at"`
}

func Serialize(p *model.Product) Row {
	row := Row{
		ID:           p.ID,
		Name:         p.Name,
		BaseCategory: p.BaseCategory,
		Description:  SerializeDescription(p.Description),
		Price:        p.Price,
		CreatedAt:    model.FormatTimestamp(p.CreatedAt),
	}
	if p.Image != "" {
		row.Image = sql.NullString{String: p.Image, Valid: true}
	}
	if p.UpdatedAt != nil {
		row.UpdatedAt = sql.NullString{String: model.FormatTimestamp(*p.UpdatedAt), Valid: true}
	}
	return row
}

// Parse never fails; unreadable columns degrade to their zero value.
func Parse(row *Row) model.Product {
	p := model.Product{
		ID:           row.ID,
		Name:         row.Name,
		BaseCategory: row.BaseCategory,
		Description:  ParseDescription(row.Description),
		Price:        row.Price,
		CreatedAt:    model.ParseTimestamp(row.CreatedAt),
	}
	if row.Image.Valid {
		p.Image = row.Image.String
	}
	if row.UpdatedAt.Valid && row.UpdatedAt.String != "" {
		if t := model.ParseTimestamp(row.UpdatedAt.String); !t.IsZero() {
			p.UpdatedAt = &t
		}
	}
	return p
}

// SerializeDescription encodes only the whitelisted, non-blank fields. Values
// are stored as given.
func SerializeDescription(d *model.Description) string {
	if d == nil {
		return "{}"
	}
	clean := model.Description{
		Size:     nonBlank(d.Size),
		Category: nonBlank(d.Category),
		Finish:   nonBlank(d.Finish),
		Details:  nonBlank(d.Details),
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ParseDescription accepts any JSON object and keeps the recognized fields
// that hold a non-blank string, a non-zero number or true. Anything else (bad
// JSON, non-objects, no recognized field) is nil.
func ParseDescription(raw string) *model.Description {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil
	}
	d := &model.Description{
		Size:     stringField(fields, "size"),
		Category: stringField(fields, "category"),
		Finish:   stringField(fields, "finish"),
		Details:  stringField(fields, "details"),
	}
	if d.IsEmpty() {
		return nil
	}
	return d
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return nonBlank(v)
	case float64:
		if v == 0 {
			return ""
		}
		return decimal.NewFromFloat(v).String()
	case bool:
		if v {
			return "true"
		}
		return ""
	default:
		return ""
	}
}

func nonBlank(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}
