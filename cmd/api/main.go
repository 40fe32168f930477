package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fekuna/catalog-service/config"
	"github.com/fekuna/catalog-service/internal/category"
	catCachePkg "github.com/fekuna/catalog-service/internal/category/cache"
	catRepoPkg "github.com/fekuna/catalog-service/internal/category/repository"
	"github.com/fekuna/catalog-service/internal/message"
	msgPublisherPkg "github.com/fekuna/catalog-service/internal/message/publisher"
	msgRepoPkg "github.com/fekuna/catalog-service/internal/message/repository"
	prodRepoPkg "github.com/fekuna/catalog-service/internal/product/repository"
	"github.com/fekuna/catalog-service/internal/schema"
	"github.com/fekuna/catalog-service/internal/server"
	"github.com/fekuna/catalog-service/pkg/broker"
	"github.com/fekuna/catalog-service/pkg/cache"
	"github.com/fekuna/catalog-service/pkg/database/sqlite"
	"github.com/fekuna/catalog-service/pkg/logger"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Storage for the configured catalog source
	deps := &server.Deps{}
	switch cfg.Catalog.Source {
	case config.SourceStatic:
		products, err := prodRepoPkg.LoadStaticCatalog(cfg.Catalog.StaticPath)
		if err != nil {
			appLogger.Fatal("Could not load static catalog", zap.Error(err))
		}
		deps.Products = prodRepoPkg.NewMemoryRepository(products, cfg.Catalog.FuzzyThreshold)
		deps.Categories = catRepoPkg.NewStaticRepository()
		deps.Messages = msgRepoPkg.NewMemoryRepository()
		appLogger.Info("Serving static catalog",
			zap.String("path", cfg.Catalog.StaticPath),
			zap.Int("products", len(products)),
		)
	default:
		db := openDatabase(ctx, cfg, appLogger)
		defer db.Close()
		deps.Pinger = db
		deps.Products = prodRepoPkg.NewSQLiteRepository(db)
		deps.Categories = catRepoPkg.NewSQLiteRepository(db)
		deps.Messages = msgRepoPkg.NewSQLiteRepository(db)
	}

	// 4. Category cache
	var categoryCache category.Cache = catCachePkg.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, caching categories in process", zap.Error(err))
		} else {
			defer redisClient.Close()
			categoryCache = catCachePkg.NewRedisCache(redisClient.Client, catCachePkg.DefaultKey)
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}
	deps.CategoryCache = categoryCache

	// 5. Message notifications
	var publisher message.Publisher = msgPublisherPkg.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		writer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.MessagesTopic,
		})
		defer writer.Close()
		publisher = msgPublisherPkg.NewKafkaPublisher(writer)
		appLogger.Info("Publishing contact messages to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.MessagesTopic),
		)
	}
	deps.Publisher = publisher

	if cfg.Admin.Password == "" {
		appLogger.Warn("ADMIN_PASSWORD is not set, admin routes will answer 503")
	}

	// 6. HTTP server
	handlers := server.NewHandlers(deps, appLogger)
	app := server.NewApp(&cfg.Server, appLogger)
	server.RegisterRoutes(app, handlers, server.RouteOptions{
		AdminPassword:    cfg.Admin.Password,
		ContactRateLimit: cfg.Server.ContactRateLimit,
	}, appLogger)

	go func() {
		addr := ":" + cfg.Server.HTTPPort
		appLogger.Info("Starting HTTP server", zap.String("addr", addr), zap.String("source", cfg.Catalog.Source))
		if err := app.Listen(addr); err != nil {
			appLogger.Error("HTTP server stopped", zap.Error(err))
			stop()
		}
	}()

	// 7. Optional gRPC health server
	var grpcServer *server.HealthServer
	if cfg.Server.GRPCPort != "" {
		grpcServer = server.NewHealthServer(handlers.Health.Healthy, 10*time.Second, appLogger)
		go func() {
			if err := grpcServer.Serve(ctx, cfg.Server.GRPCPort); err != nil {
				appLogger.Error("gRPC server stopped", zap.Error(err))
				stop()
			}
		}()
	}

	// Graceful Shutdown
	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown", zap.Error(err))
	}
	if grpcServer != nil {
		grpcServer.Stop()
	}
	appLogger.Info("Server stopped")
}

func newLogger(cfg *config.Config) logger.ZapLogger {
	return logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		Filename:          cfg.Logger.Filename,
	})
}

func openDatabase(ctx context.Context, cfg *config.Config, log logger.ZapLogger) *sqlx.DB {
	db, err := sqlite.NewSQLite(&sqlite.Config{
		Path:         cfg.SQLite.Path,
		BusyTimeout:  cfg.SQLite.BusyTimeout,
		MaxOpenConns: cfg.SQLite.MaxOpenConns,
		MaxIdleConns: cfg.SQLite.MaxIdleConns,
	})
	if err != nil {
		log.Fatal("Could not open database", zap.Error(err))
	}

	recreated, err := schema.Ensure(ctx, db)
	if err != nil {
		db.Close()
		log.Fatal("Could not prepare schema", zap.Error(err))
	}
	if recreated {
		log.Warn("Products table had an unexpected layout and was recreated; re-import the catalog")
	}
	log.Info("Connected to SQLite database", zap.String("path", cfg.SQLite.Path))
	return db
}
