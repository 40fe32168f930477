package publisher

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/fekuna/catalog-service/internal/message/dto"
	"github.com/fekuna/catalog-service/internal/model"
)

// Writer is the subset of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer Writer
}

func NewKafkaPublisher(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// PublishCreated writes a message.created event keyed by message id.
func (p *KafkaPublisher) PublishCreated(ctx context.Context, m *model.Message) error {
	payload, err := json.Marshal(dto.NewCreatedEvent(m))
	if err != nil {
		return errors.Wrap(err, "encode message event")
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(m.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(dto.EventMessageCreated)},
		},
	})
	if err != nil {
		return errors.Wrap(err, "publish message event")
	}
	return nil
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) PublishCreated(context.Context, *model.Message) error {
	return nil
}
