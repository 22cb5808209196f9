package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/libitemsflow/docs/swagger"
	"github.com/ghuser/libitemsflow/migrations/lending"
	"github.com/ghuser/libitemsflow/pkg/app"
	"github.com/ghuser/libitemsflow/pkg/cache"
	"github.com/ghuser/libitemsflow/pkg/clock"
	"github.com/ghuser/libitemsflow/pkg/config"
	"github.com/ghuser/libitemsflow/pkg/database"
	"github.com/ghuser/libitemsflow/pkg/events"
	"github.com/ghuser/libitemsflow/pkg/httpx"
	"github.com/ghuser/libitemsflow/pkg/logger"
	"github.com/ghuser/libitemsflow/pkg/migrator"
	"github.com/ghuser/libitemsflow/pkg/telemetry"
	lendingApi "github.com/ghuser/libitemsflow/services/lending/application/api"
	lendingSvcs "github.com/ghuser/libitemsflow/services/lending/application/services"
)

// @title			LibItemsFlow API
// @version		1.0
// @description	Item lending ledger: register items, lend them, return them, list loans by effective status.
// @contact.name	API Support
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/
// @schemes		http https
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

	loc, err := cfg.Location()
	if err != nil {
		log.Error("invalid calendar timezone", "error", err)
		os.Exit(1)
	}

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional; log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	appConfig := &app.Application{
		Logger:       log,
		Clock:        clock.System{},
		Location:     loc,
		IsProduction: cfg.Environment == config.EnvProduction,
	}
	checks := httpx.HealthChecks{}

	if cfg.StoreBackend == config.StorePostgres {
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
		}
		defer pool.Close()
		log.Info("database pool connected")

		if cfg.MigrateOnStart {
			if err := migrator.Up(ctx, pool.DB(), lending.FS, log); err != nil {
				log.Error("failed to apply migrations", "error", err)
				os.Exit(1) //nolint:gocritic
			}
		}

		eventBus, err := events.NewEventBusWithForwarder(cfg, log)
		if err != nil {
			log.Error("failed to setup event bus", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer eventBus.Close() //nolint:errcheck

		if err := eventBus.StartForwarder(ctx); err != nil {
			log.Error("failed to start event forwarder", "error", err)
			os.Exit(1) //nolint:gocritic
		}

		appConfig.Db = pool
		appConfig.EventBus = eventBus
		checks.Database = pool
		checks.EventBus = eventBus
	} else {
		log.Warn("using in-memory store; data is lost on restart")
	}

	if cfg.CacheEnabled {
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")

		appConfig.Redis = redisClient
		checks.Redis = redisClient
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	health := httpx.HealthHandler(checks)
	r.Get("/health", health)
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	registerRoutes(r, appConfig, health)

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application, health http.HandlerFunc) {
	lendingApi.LendingRoutes(r, a, lendingSvcs.New(a), health)
}
