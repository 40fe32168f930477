package message

import (
	"context"

	"github.com/fekuna/catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, msg *model.Message) error
	// List returns messages newest first. status is one of dto.Status*.
	List(ctx context.Context, status string) ([]model.Message, error)
	// SetRead returns ErrNotFound when no message has the id.
	SetRead(ctx context.Context, id string, isRead bool) error
	Delete(ctx context.Context, id string) error
}
