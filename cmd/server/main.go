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
	"time"

	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/config"
	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/handlers"
	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/repository"
	"github.com/PetalsOnaWet/fiverr-pro-landing/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 3. Initialize Redis. Startup proceeds even if Redis is down; log
	// writes fail soft until it recovers.
	rdb, err := repository.InitRedis(cfg.RedisURL, cfg.RedisPassword, 0)
	if err != nil {
		if rdb == nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		logger.Warn("Failed to connect to Redis", "error", err)
	}

	redirectLogs := repository.NewNamespace(rdb, repository.NamespaceRedirect)
	allAccess := repository.NewNamespace(rdb, repository.NamespaceAllAccess)

	// 4. Initialize Services
	metrics := services.NewAccessMetrics()
	logWriter := services.NewLogWriter(logger, metrics)
	geoIPService := services.NewGeoIPService(cfg, logger)
	rateLimiter := services.NewIPRateLimiter(rate.Limit(cfg.DashboardRate), cfg.DashboardBurst, logger)

	// 5. Initialize Handler
	h, err := handlers.NewHandler(cfg, logger, redirectLogs, allAccess, logWriter, geoIPService, metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize handler: %w", err)
	}

	// 6. Setup Router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := h.SetupRouter(rateLimiter, "web/templates/*")

	// 7. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Background Context for workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	// Start Background Workers
	go geoIPService.Init()
	go geoIPService.StartUpdater(workerCtx)
	rateLimiter.StartCleanup(10 * time.Minute)

	// Initializing server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	// Graceful shutdown timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()

	logger.Info("Server exiting")
	return nil
}
