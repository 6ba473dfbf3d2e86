package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/techstore3d/backend/configs"
	"github.com/techstore3d/backend/internal/application/services"
	"github.com/techstore3d/backend/internal/core/ports"
	"github.com/techstore3d/backend/internal/infrastructure/cache"
	"github.com/techstore3d/backend/internal/infrastructure/db"
	"github.com/techstore3d/backend/internal/infrastructure/health"
	"github.com/techstore3d/backend/internal/infrastructure/httpserver"
	"github.com/techstore3d/backend/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting TechStore backend...")

	// Initialize the document store
	database, err := db.NewDatabase(&cfg.Mongo)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Close(ctx); err != nil {
			logger.Warn("Failed to close MongoDB connection:", err)
		}
	}()

	logger.Info("Connected to MongoDB successfully")

	// Initialize the cache backend. A failed connect leaves the backend
	// degraded: every read is a miss and the API keeps serving from the
	// document store.
	cacheBackend := cache.NewBackend(&cfg.Cache, logger)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := cacheBackend.Connect(ctx); err != nil {
			logger.WithError(err).Warn("Cache backend unavailable, continuing without caching")
		} else {
			logger.Infof("Cache backend connected (%s)", cfg.Cache.Backend)
		}
		cancel()
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cacheBackend.Disconnect(ctx); err != nil {
			logger.Warn("Failed to disconnect cache backend:", err)
		}
	}()

	// Ensure query indexes exist before serving traffic
	optimizer := db.NewOptimizer(database, logger)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := optimizer.CreateIndexes(ctx); err != nil {
			logger.WithError(err).Warn("Failed to create database indexes")
		}
		cancel()
	}

	// Initialize db repository implementations
	baseProductRepo := repositories.NewProductRepository(database, logger)
	cartRepo := repositories.NewCartRepository(database, logger)
	baseUserRepo := repositories.NewUserRepository(database, logger)
	baseReviewRepo := repositories.NewReviewRepository(database, logger)
	statusRepo := repositories.NewStatusRepository(database, logger)

	// Decorate read-heavy repositories with caching
	productRepo := repositories.NewCachingProductRepository(baseProductRepo, cacheBackend, cfg.Cache.DefaultTTL, cfg.Cache.ItemTTL, logger)
	userRepo := repositories.NewCachingUserRepository(baseUserRepo, cacheBackend, cfg.Cache.ItemTTL, logger)
	reviewRepo := repositories.NewCachingReviewRepository(baseReviewRepo, cacheBackend, cfg.Cache.DefaultTTL, logger)

	// Wire services
	productService := services.NewProductService(productRepo, userRepo, cartRepo, reviewRepo, logger)
	cartService := services.NewCartService(cartRepo, productRepo, logger)
	userService := services.NewUserService(userRepo, productRepo, logger)
	reviewService := services.NewReviewService(reviewRepo, productRepo, logger)
	statusService := services.NewStatusService(statusRepo, logger)

	hcSlice := []ports.HealthChecker{
		health.NewDBHealthChecker(database),
		health.NewCacheHealthChecker(cacheBackend),
	}

	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
	}

	deps := httpserver.ServerDeps{
		ProductService: productService,
		CartService:    cartService,
		UserService:    userService,
		ReviewService:  reviewService,
		StatusService:  statusService,
		CacheBackend:   cacheBackend,
		Optimizer:      optimizer,
		HealthCheckers: hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
