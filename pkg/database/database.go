// Package database owns the PostgreSQL connection pool and the gorm handle
// shared by every repository.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ghuser/itemtracker/pkg/config"
	"github.com/ghuser/itemtracker/pkg/logger"
)

// Database wraps a gorm handle and its underlying *sql.DB pool.
type Database struct {
	gorm *gorm.DB
	sql  *sql.DB
}

// NewPool opens a pgx-backed pool for cfg.DatabaseURL, applies the pool limits,
// registers the OTel tracing plugin and pings the server.
func NewPool(ctx context.Context, cfg *config.Config, log logger.Logger) (*Database, error) {
	sqlDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 NewGormLogger(log, cfg.LogLevel, cfg.SlowQueryThreshold),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	if err := gormDB.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName("postgresql"),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("register otelgorm: %w", err)
	}

	db := &Database{gorm: gormDB, sql: sqlDB}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// New wraps an already opened gorm handle. Used by tests and tools that bring
// their own dialector.
func New(gormDB *gorm.DB) (*Database, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying sql.DB: %w", err)
	}
	return &Database{gorm: gormDB, sql: sqlDB}, nil
}

// DB returns the root gorm handle. Callers must add WithContext themselves.
func (d *Database) DB() *gorm.DB {
	return d.gorm
}

// WithTx runs fn inside a single transaction. The transaction is rolled back
// when fn returns an error or panics, and committed otherwise.
func (d *Database) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// Ping satisfies httpx.HealthChecker.
func (d *Database) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

// Close releases every pooled connection.
func (d *Database) Close() error {
	return d.sql.Close()
}
