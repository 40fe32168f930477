package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/fekuna/catalog-service/internal/auth"
	categoryHandler "github.com/fekuna/catalog-service/internal/category/handler"
	messageHandler "github.com/fekuna/catalog-service/internal/message/handler"
	productHandler "github.com/fekuna/catalog-service/internal/product/handler"
	"github.com/fekuna/catalog-service/pkg/logger"
)

type Handlers struct {
	Health   *HealthHandler
	Category *categoryHandler.CategoryHandler
	Product  *productHandler.ProductHandler
	Message  *messageHandler.MessageHandler
}

type RouteOptions struct {
	AdminPassword    string
	ContactRateLimit int // per IP per minute, 0 disables
}

func RegisterRoutes(app *fiber.App, h *Handlers, opts RouteOptions, log logger.ZapLogger) {
	api := app.Group("/api")

	api.Get("/health", h.Health.Check)
	api.Get("/categories", h.Category.List)
	api.Get("/products", h.Product.List)
	api.Get("/products/:id", h.Product.Get)

	contact := []fiber.Handler{}
	if opts.ContactRateLimit > 0 {
		contact = append(contact, limiter.New(limiter.Config{
			Max:        opts.ContactRateLimit,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Try again later.",
				})
			},
		}))
	}
	contact = append(contact, h.Message.Create)
	api.Post("/contact/messages", contact...)

	admin := api.Group("/admin", auth.AdminGuard(opts.AdminPassword, log))
	admin.Get("/messages", h.Message.List)
	admin.Patch("/messages/:id/read", h.Message.MarkRead)
	admin.Delete("/messages/:id", h.Message.Delete)
	admin.Post("/products", h.Product.Create)
	admin.Post("/categories/invalidate", h.Category.Invalidate)
}
