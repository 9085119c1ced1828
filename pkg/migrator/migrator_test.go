package migrator

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ghuser/itemtracker/pkg/logger"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	db, err := gormDB.DB()
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var testMigrations = fstest.MapFS{
	"00001_create_items.sql": {Data: []byte(`-- +goose Up
CREATE TABLE items (id INTEGER PRIMARY KEY, item_number TEXT NOT NULL UNIQUE);
-- +goose Down
DROP TABLE items;
`)},
	"00002_create_item_metadata.sql": {Data: []byte(`-- +goose Up
CREATE TABLE item_metadata (item_id INTEGER PRIMARY KEY REFERENCES items (id), notes TEXT);
-- +goose Down
DROP TABLE item_metadata;
`)},
}

func TestUp_AppliesPendingMigrations(t *testing.T) {
	db := openSQLite(t)
	var logs bytes.Buffer
	ctx := context.Background()

	require.NoError(t, Up(ctx, db, goose.DialectSQLite3, testMigrations, logger.NewWithWriter(&logs, "info")))

	_, err := db.ExecContext(ctx, `INSERT INTO items (id, item_number) VALUES (1, 'ITEM-0001')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO item_metadata (item_id, notes) VALUES (1, 'rush')`)
	require.NoError(t, err)

	assert.Contains(t, logs.String(), `"msg":"migration applied"`)
	assert.Contains(t, logs.String(), `"applied":2`)
}

func TestUp_IsIdempotent(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, Up(ctx, db, goose.DialectSQLite3, testMigrations, logger.Discard()))

	var logs bytes.Buffer
	require.NoError(t, Up(ctx, db, goose.DialectSQLite3, testMigrations, logger.NewWithWriter(&logs, "info")))
	assert.NotContains(t, logs.String(), "migration applied")
	assert.Contains(t, logs.String(), `"version":2`)
}

func TestUp_ReportsBrokenMigration(t *testing.T) {
	db := openSQLite(t)
	broken := fstest.MapFS{
		"00001_broken.sql": {Data: []byte("-- +goose Up\nCREATE TABLE;\n")},
	}

	err := Up(context.Background(), db, goose.DialectSQLite3, broken, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to up migrations")
}
