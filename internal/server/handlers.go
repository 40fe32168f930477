package server

import (
	"github.com/fekuna/catalog-service/internal/category"
	categoryHandler "github.com/fekuna/catalog-service/internal/category/handler"
	categoryUseCase "github.com/fekuna/catalog-service/internal/category/usecase"
	"github.com/fekuna/catalog-service/internal/message"
	messageHandler "github.com/fekuna/catalog-service/internal/message/handler"
	messageUseCase "github.com/fekuna/catalog-service/internal/message/usecase"
	"github.com/fekuna/catalog-service/internal/product"
	productHandler "github.com/fekuna/catalog-service/internal/product/handler"
	productUseCase "github.com/fekuna/catalog-service/internal/product/usecase"
	"github.com/fekuna/catalog-service/pkg/logger"
)

// Deps are the storage-level collaborators chosen by the catalog source.
type Deps struct {
	Pinger        Pinger // nil when there is no database
	Products      product.Repository
	Categories    category.Repository
	Messages      message.Repository
	CategoryCache category.Cache
	Publisher     message.Publisher
}

func NewHandlers(d *Deps, log logger.ZapLogger) *Handlers {
	catUC := categoryUseCase.NewCategoryUseCase(d.Categories, d.CategoryCache, log)
	prodUC := productUseCase.NewProductUseCase(d.Products, d.CategoryCache, log)
	msgUC := messageUseCase.NewMessageUseCase(d.Messages, d.Publisher, log)

	return &Handlers{
		Health:   NewHealthHandler(d.Pinger, log),
		Category: categoryHandler.NewCategoryHandler(catUC, log),
		Product:  productHandler.NewProductHandler(prodUC, log),
		Message:  messageHandler.NewMessageHandler(msgUC, log),
	}
}
