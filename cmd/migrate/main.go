package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ghuser/libitemsflow/migrations/lending"
	"github.com/ghuser/libitemsflow/pkg/config"
	"github.com/ghuser/libitemsflow/pkg/logger"
	"github.com/ghuser/libitemsflow/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, lending.FS, log); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations up to date")
}
