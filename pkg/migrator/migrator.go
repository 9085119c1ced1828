// Package migrator applies the embedded goose migrations of a service.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ghuser/itemtracker/pkg/logger"
)

// RunMigrations opens dbURL with the pgx driver and applies every pending
// migration found in files.
func RunMigrations(ctx context.Context, dbURL string, files fs.FS, log logger.Logger) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	return Up(ctx, db, goose.DialectPostgres, files, log)
}

// Up applies pending migrations from files against db and logs each one.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, files fs.FS, log logger.Logger) error {
	provider, err := goose.NewProvider(dialect, db, files)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	for _, res := range results {
		log.InfoContext(ctx, "migration applied",
			"version", res.Source.Version,
			"path", res.Source.Path,
			"duration", res.Duration,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to up migrations: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	log.InfoContext(ctx, "schema up to date", "version", version, "applied", len(results))
	return nil
}
