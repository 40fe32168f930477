package message

import (
	"context"

	"github.com/fekuna/catalog-service/internal/message/dto"
	"github.com/fekuna/catalog-service/internal/model"
)

type UseCase interface {
	CreateMessage(ctx context.Context, input *dto.CreateMessageInput) (*model.Message, error)
	ListMessages(ctx context.Context, status string) ([]model.Message, error)
	MarkRead(ctx context.Context, id string, isRead bool) error
	DeleteMessage(ctx context.Context, id string) error
}

// Publisher announces new messages to other systems.
type Publisher interface {
	PublishCreated(ctx context.Context, msg *model.Message) error
}
