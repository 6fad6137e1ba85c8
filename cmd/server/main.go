package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/maxviazov/game-tracker-service/internal/config"
	"github.com/maxviazov/game-tracker-service/internal/handler"
	"github.com/maxviazov/game-tracker-service/internal/logger"
	"github.com/maxviazov/game-tracker-service/internal/service"
	"github.com/maxviazov/game-tracker-service/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := "config.yaml"
	if p := os.Getenv("APP_CONFIG"); p != "" {
		configPath = p
	}

	// Load application config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	zlog.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.App.Name, cfg.App.Version)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Telemetry initialization failed")
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			appLogger.Warn().Err(err).Msg("telemetry shutdown failed")
		}
	}()

	store, err := openStorage(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("❌ Storage initialization failed")
	}
	defer store.close()

	gameSvc := service.NewGameService(store.games, store.reviews, store.tx, appLogger)
	reviewSvc := service.NewReviewService(store.reviews, store.games, appLogger)
	statsSvc := service.NewStatsService(store.games, store.reviews, appLogger)

	if cfg.App.Env == "prod" || cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), handler.RequestLogger())
	handler.Register(engine, store.pinger, gameSvc, reviewSvc, statsSvc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           otelhttp.NewHandler(engine, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().
			Str("addr", srv.Addr).
			Str("storage", cfg.Storage.Driver).
			Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		appLogger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			appLogger.Error().Err(err).Msg("❌ HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	appLogger.Info().Msg("👋 Service stopped")
}
