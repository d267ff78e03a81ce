// Package main is the entry point for the FABRIE back-office API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/fabrie/backend/config"
	"github.com/fabrie/backend/internal/application/adapter"
	infracache "github.com/fabrie/backend/internal/infra/cache"
	"github.com/fabrie/backend/internal/infra/db"
	"github.com/fabrie/backend/internal/infra/dependency"
	"github.com/fabrie/backend/internal/integration/adapters"
	"github.com/fabrie/backend/internal/integration/cache"
	"github.com/fabrie/backend/internal/integration/entrypoint/controller"
	"github.com/fabrie/backend/internal/integration/persistence/model"
	"github.com/fabrie/backend/internal/integration/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server exited properly")
}

func run() error {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting FABRIE API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.All()...); err != nil {
		return err
	}
	slog.Info("Database migrations completed successfully")

	services := dependency.Services{Clock: adapters.NewSystemClock()}

	// Report cache is optional
	if cfg.Redis.URL != "" {
		client, err := infracache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				slog.Error("Failed to close redis connection", "error", err)
			}
		}()
		services.ReportCache = cache.NewRedisReportCache(client, cfg.Redis.KeyPrefix, cfg.Redis.ReportTTL)
		services.CacheHealth = redisHealth(client)
	} else {
		slog.Info("REDIS_URL not set, finance reports are not cached")
		services.ReportCache = cache.NewNoopReportCache()
	}

	services.ImageStorage, err = newImageStorage(ctx, &cfg.Storage)
	if err != nil {
		return err
	}

	injector := dependency.NewInjector(cfg, database.DB(), services)
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		injector.RateLimiter.RunCleanup(gctx)
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func newImageStorage(ctx context.Context, cfg *config.StorageConfig) (adapter.ImageStorage, error) {
	switch cfg.Driver {
	case config.StorageDriverS3:
		client, err := storage.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		slog.Info("Using S3 image storage", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)
		return storage.NewS3ImageStorage(client, cfg.Bucket, cfg.PublicURL), nil
	case config.StorageDriverLocal, "":
		slog.Info("Using local image storage", "root", cfg.MediaRoot)
		return storage.NewLocalImageStorage(cfg.MediaRoot, cfg.MediaURL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func redisHealth(client *redis.Client) controller.HealthChecker {
	return func(ctx context.Context) bool {
		return infracache.HealthCheck(ctx, client)
	}
}
