package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/libitemsflow/pkg/app"
	"github.com/ghuser/libitemsflow/pkg/cache"
	"github.com/ghuser/libitemsflow/pkg/clock"
	"github.com/ghuser/libitemsflow/pkg/config"
	"github.com/ghuser/libitemsflow/pkg/database"
	"github.com/ghuser/libitemsflow/pkg/events"
	"github.com/ghuser/libitemsflow/pkg/logger"
	"github.com/ghuser/libitemsflow/pkg/telemetry"
	lendingSvcs "github.com/ghuser/libitemsflow/services/lending/application/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	if cfg.StoreBackend != config.StorePostgres || !cfg.CacheEnabled {
		log.Error("worker needs STORE_BACKEND=postgres and CACHE_ENABLED=true",
			"store", cfg.StoreBackend, "cache_enabled", cfg.CacheEnabled)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Error("invalid calendar timezone", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Clock:    clock.System{},
		Location: loc,
	}
	svcs := lendingSvcs.New(appConfig)

	if err := registerSubscribers(ctx, appConfig, svcs.Items); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}
