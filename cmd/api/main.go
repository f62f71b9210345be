package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/adapter/http/router"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/adapter/registry"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/infrastructure/cache"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/infrastructure/config"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/infrastructure/database"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/infrastructure/logger"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/infrastructure/metrics"
	"github.com/ressKim-io/EvoGuard/sentiment-service/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize Redis (required by the redis registry, optional otherwise)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			if cfg.Registry.Backend == "redis" {
				return fmt.Errorf("failed to connect to redis: %w", err)
			}
			log.Warn("Failed to connect to Redis, continuing without it", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis", zap.String("address", cfg.Redis.Addr()))
		}
	}

	// Initialize prediction audit database (optional)
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.NewDB(&cfg.Database)
		if err != nil {
			log.Error("Failed to connect to database", zap.Error(err))
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		if err := database.AutoMigrate(db); err != nil {
			log.Error("Failed to run migrations", zap.Error(err))
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Database migrations completed")
	}

	// Initialize artifact registry
	store, err := registry.NewStore(&cfg.Registry, redisClient)
	if err != nil {
		return fmt.Errorf("failed to initialize artifact registry: %w", err)
	}
	var loaderOpts []registry.LoaderOption
	if cfg.Model.VectorizerPath != "" {
		loaderOpts = append(loaderOpts, registry.WithVectorizerFile(cfg.Model.VectorizerPath))
	}
	if cfg.Model.ClassifierPath != "" {
		loaderOpts = append(loaderOpts, registry.WithClassifierFile(cfg.Model.ClassifierPath))
	}
	loader := registry.NewLoader(store, log.Named("registry"), loaderOpts...)

	// Load the model before accepting traffic
	m := metrics.New()
	log.Info("Loading model",
		zap.String("registry", loader.StoreName()),
		zap.String("model", cfg.Model.Name),
		zap.String("version", cfg.Model.Version),
		zap.Duration("timeout", cfg.Model.LoadTimeout),
	)
	inference, err := usecase.NewInferenceService(context.Background(), loader, usecase.InferenceConfig{
		ModelName:   cfg.Model.Name,
		Version:     cfg.Model.Version,
		LoadTimeout: cfg.Model.LoadTimeout,
	}, log.Named("inference"), m)
	if err != nil {
		log.Error("Failed to load model", zap.Error(err))
		return err
	}

	// Setup router
	r := router.Setup(router.Options{
		DB:                     db,
		RedisClient:            redisClient,
		Inference:              inference,
		Metrics:                m,
		Logger:                 log,
		MalformedRequestStatus: cfg.Server.MalformedRequestStatus,
	})

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal; SIGHUP reloads the model
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	var runErr error
wait:
	for {
		select {
		case <-hup:
			log.Info("Received SIGHUP, reloading model")
			// Failures are logged by the service and the current model keeps serving
			_, _ = inference.Reload(context.Background(), "")
		case err := <-serverErr:
			log.Error("Server failed", zap.Error(err))
			runErr = fmt.Errorf("server failed: %w", err)
			break wait
		case <-quit:
			break wait
		}
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close database connection
	if db != nil {
		_ = database.Close(db)
	}

	// Close Redis connection
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return runErr
}
