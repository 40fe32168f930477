package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/fekuna/catalog-service/internal/message"
	"github.com/fekuna/catalog-service/internal/message/dto"
	"github.com/fekuna/catalog-service/internal/model"
)

type messageRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Email     string         `db:"email"`
	Company   sql.NullString `db:"company"`
	Body      string         `db:"body"`
	CreatedAt string         `db:"created_at"`
	IsRead    bool           `db:"is_read"`
}

func toRow(m *model.Message) messageRow {
	row := messageRow{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Body:      m.Body,
		CreatedAt: model.FormatTimestamp(m.CreatedAt),
		IsRead:    m.IsRead,
	}
	if m.Company != nil {
		row.Company = sql.NullString{String: *m.Company, Valid: true}
	}
	return row
}

func (r *messageRow) toModel() model.Message {
	m := model.Message{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Body:      r.Body,
		CreatedAt: model.ParseTimestamp(r.CreatedAt),
		IsRead:    r.IsRead,
	}
	if r.Company.Valid {
		company := r.Company.String
		m.Company = &company
	}
	return m
}

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, m *model.Message) error {
	query := `
		INSERT INTO messages (id, name, email, company, body, created_at, is_read)
		VALUES (:id, :name, :email, :company, :body, :created_at, :is_read)
	`
	if _, err := r.DB.NamedExecContext(ctx, query, toRow(m)); err != nil {
		return errors.Wrap(err, "insert message")
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, status string) ([]model.Message, error) {
	query := `SELECT id, name, email, company, body, created_at, is_read FROM messages`
	switch status {
	case dto.StatusRead:
		query += ` WHERE is_read = 1`
	case dto.StatusUnread:
		query += ` WHERE is_read = 0`
	}
	query += ` ORDER BY created_at DESC, id ASC`

	var rows []messageRow
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.Wrap(err, "list messages")
	}

	messages := make([]model.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, rows[i].toModel())
	}
	return messages, nil
}

func (r *SQLiteRepository) SetRead(ctx context.Context, id string, isRead bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE messages SET is_read = ? WHERE id = ?`, isRead, id)
	return affectedOne(res, err, "update message")
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	return affectedOne(res, err, "delete message")
}

func affectedOne(res sql.Result, err error, op string) error {
	if err != nil {
		return errors.Wrap(err, op)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if n == 0 {
		return message.ErrNotFound
	}
	return nil
}
