package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fekuna/catalog-service/internal/category"
	"github.com/fekuna/catalog-service/pkg/logger"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	names, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load categories"})
	}
	return c.JSON(names)
}

// Invalidate handles POST /api/admin/categories/invalidate.
func (h *CategoryHandler) Invalidate(c *fiber.Ctx) error {
	if err := h.uc.InvalidateCache(c.UserContext()); err != nil {
		h.logger.Error("failed to invalidate category cache", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to invalidate cache"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
