package handler

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/internal/product"
	"github.com/fekuna/catalog-service/internal/product/codec"
	"github.com/fekuna/catalog-service/internal/product/dto"
	"github.com/fekuna/catalog-service/pkg/logger"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filters := dto.NewProductFilters(
		c.Query("q"),
		c.Query("category"),
		c.Query("sort"),
		c.Query("page"),
		c.Query("perPage"),
	)

	products, total, err := h.uc.ListProducts(c.UserContext(), filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load products"})
	}

	return c.JSON(dto.NewListProductsResponse(products, total, filters))
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		h.logger.Error("failed to get product", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load product"})
	}
	return c.JSON(dto.NewProductResponse(p))
}

type createProductRequest struct {
	ID          *string             `json:"id"`
	SKU         *string             `json:"sku"`
	Name        *string             `json:"name"`
	Image       string              `json:"image"`
	Description json.RawMessage     `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
}

// Create handles POST /api/admin/products.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON body"})
	}

	id := trimmed(req.ID)
	if id == "" {
		id = trimmed(req.SKU)
	}
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing field: id"})
	}
	name := trimmed(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing field: name"})
	}

	p, err := h.uc.CreateProduct(c.UserContext(), &dto.CreateProductInput{
		ID:          id,
		Name:        name,
		Image:       req.Image,
		Description: decodeDescription(req.Description),
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, product.ErrAlreadyExists) || errors.Is(err, product.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insert failed", "detail": err.Error()})
		}
		h.logger.Error("failed to create product", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Insert failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": p.ID})
}

// decodeDescription accepts the description as an object or as a string
// holding JSON; either way it goes through the codec whitelist.
func decodeDescription(raw json.RawMessage) *model.Description {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return codec.ParseDescription(s)
	}
	return codec.ParseDescription(string(raw))
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
