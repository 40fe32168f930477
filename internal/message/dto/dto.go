package dto

import (
	"strings"

	"github.com/fekuna/catalog-service/internal/model"
)

const (
	StatusAll    = "all"
	StatusRead   = "read"
	StatusUnread = "unread"
)

// NormalizeStatus maps anything unknown to StatusAll.
func NormalizeStatus(s string) string {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case StatusRead, StatusUnread:
		return s
	default:
		return StatusAll
	}
}

type CreateMessageInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Company string `json:"company" validate:"max=200"`
	Message string `json:"message" validate:"required,max=10000"`
}

// Normalize trims every field in place.
func (in *CreateMessageInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Company = strings.TrimSpace(in.Company)
	in.Message = strings.TrimSpace(in.Message)
}

type CreatedResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}

type AdminMessage struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Company   *string `json:"company,omitempty"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"createdAt"`
	IsRead    bool    `json:"isRead"`
}

func NewAdminMessage(m *model.Message) AdminMessage {
	return AdminMessage{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Company:   m.Company,
		Message:   m.Body,
		CreatedAt: model.FormatTimestamp(m.CreatedAt),
		IsRead:    m.IsRead,
	}
}

// CreatedEvent is the payload published for every new message.
type CreatedEvent struct {
	Type      string  `json:"type"`
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Company   *string `json:"company,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

const EventMessageCreated = "message.created"

func NewCreatedEvent(m *model.Message) CreatedEvent {
	return CreatedEvent{
		Type:      EventMessageCreated,
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Company:   m.Company,
		CreatedAt: model.FormatTimestamp(m.CreatedAt),
	}
}
