package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/pkg/logger"
)

// Pinger reports whether a backing store is reachable. nil means there is
// nothing to check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	pinger Pinger
	logger logger.ZapLogger
}

func NewHealthHandler(p Pinger, log logger.ZapLogger) *HealthHandler {
	return &HealthHandler{pinger: p, logger: log}
}

func (h *HealthHandler) Healthy(ctx context.Context) error {
	if h.pinger == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return h.pinger.PingContext(ctx)
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	now := model.FormatTimestamp(time.Now())
	if err := h.Healthy(c.UserContext()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false, "now": now})
	}
	return c.JSON(fiber.Map{"ok": true, "now": now})
}
