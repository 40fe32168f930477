package usecase

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fekuna/catalog-service/internal/message"
	"github.com/fekuna/catalog-service/internal/message/dto"
	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/pkg/logger"
)

type messageUseCase struct {
	repo      message.Repository
	publisher message.Publisher
	validate  *validator.Validate
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewMessageUseCase(repo message.Repository, pub message.Publisher, log logger.ZapLogger) message.UseCase {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &messageUseCase{
		repo:      repo,
		publisher: pub,
		validate:  v,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *messageUseCase) CreateMessage(ctx context.Context, input *dto.CreateMessageInput) (*model.Message, error) {
	input.Normalize()
	if err := uc.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, newValidationError(verrs)
		}
		return nil, errors.Wrap(err, "validate message")
	}

	m := &model.Message{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Body:      input.Message,
		CreatedAt: uc.now().UTC().Truncate(time.Millisecond),
	}
	if input.Company != "" {
		company := input.Company
		m.Company = &company
	}

	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	if err := uc.publisher.PublishCreated(ctx, m); err != nil {
		uc.logger.Warn("failed to publish message event", zap.String("id", m.ID), zap.Error(err))
	}

	uc.logger.Info("contact message received", zap.String("id", m.ID))
	return m, nil
}

func (uc *messageUseCase) ListMessages(ctx context.Context, status string) ([]model.Message, error) {
	return uc.repo.List(ctx, dto.NormalizeStatus(status))
}

func (uc *messageUseCase) MarkRead(ctx context.Context, id string, isRead bool) error {
	return uc.repo.SetRead(ctx, id, isRead)
}

func (uc *messageUseCase) DeleteMessage(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func newValidationError(verrs validator.ValidationErrors) *message.ValidationError {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", field)
		case "email":
			fields[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "max":
			fields[field] = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		default:
			fields[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return &message.ValidationError{Fields: fields}
}
