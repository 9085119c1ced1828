// Command item-migrate applies the item service schema migrations to DATABASE_URL.
package main

import (
	"context"
	"embed"
	"log/slog"
	"os"

	"github.com/ghuser/itemtracker/pkg/config"
	"github.com/ghuser/itemtracker/pkg/logger"
	"github.com/ghuser/itemtracker/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg).With("component", "migrate")

	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, MigrationsFS, log); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
}
