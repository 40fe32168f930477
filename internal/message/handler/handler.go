package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fekuna/catalog-service/internal/message"
	"github.com/fekuna/catalog-service/internal/message/dto"
	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/pkg/logger"
)

type MessageHandler struct {
	uc     message.UseCase
	logger logger.ZapLogger
}

func NewMessageHandler(uc message.UseCase, log logger.ZapLogger) *MessageHandler {
	return &MessageHandler{
		uc:     uc,
		logger: log,
	}
}

// Create handles POST /api/contact/messages.
func (h *MessageHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateMessageInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}

	m, err := h.uc.CreateMessage(c.UserContext(), &input)
	if err != nil {
		var verr *message.ValidationError
		if errors.As(err, &verr) {
			msg := "Invalid fields"
			if verr.MissingRequired() {
				msg = "Missing required fields"
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg, "fields": verr.Fields})
		}
		h.logger.Error("failed to create message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save message"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{
		ID:        m.ID,
		CreatedAt: model.FormatTimestamp(m.CreatedAt),
	})
}

// List handles GET /api/admin/messages.
func (h *MessageHandler) List(c *fiber.Ctx) error {
	msgs, err := h.uc.ListMessages(c.UserContext(), c.Query("status"))
	if err != nil {
		h.logger.Error("failed to list messages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load messages"})
	}

	out := make([]dto.AdminMessage, 0, len(msgs))
	for i := range msgs {
		out = append(out, dto.NewAdminMessage(&msgs[i]))
	}
	return c.JSON(out)
}

// MarkRead handles PATCH /api/admin/messages/:id/read.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	var body struct {
		IsRead json.RawMessage `json:"isRead"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "isRead boolean required"})
	}
	var isRead bool
	if err := json.Unmarshal(body.IsRead, &isRead); err != nil || string(body.IsRead) == "null" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "isRead boolean required"})
	}

	if err := h.uc.MarkRead(c.UserContext(), c.Params("id"), isRead); err != nil {
		return h.writeError(c, err, "failed to update message")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Delete handles DELETE /api/admin/messages/:id.
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteMessage(c.UserContext(), c.Params("id")); err != nil {
		return h.writeError(c, err, "failed to delete message")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *MessageHandler) writeError(c *fiber.Ctx, err error, logMsg string) error {
	if errors.Is(err, message.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	h.logger.Error(logMsg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
