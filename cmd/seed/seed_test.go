package main

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ghuser/itemtracker/pkg/database"
	"github.com/ghuser/itemtracker/pkg/logger"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
	"github.com/ghuser/itemtracker/services/item/domain/models"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
	"github.com/ghuser/itemtracker/services/item/infrastructure/persistence/postgres"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*appsvcs.ItemService, *postgres.ItemRepository) {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gormDB.AutoMigrate(
		&postgres.ItemRecord{}, &postgres.ItemShippingRecord{},
		&postgres.ItemTrackingRecord{}, &postgres.ItemMetadataRecord{},
	))
	db, err := database.New(gormDB)
	require.NoError(t, err)

	repo := postgres.NewItemRepository(db, logger.Discard())
	return appsvcs.NewItemService(repo, logger.Discard(), 10, 100), repo
}

func TestSampleItems(t *testing.T) {
	items := sampleItems(gofakeit.New(7), 50, fixedNow)
	require.Len(t, items, 50)
	assert.Equal(t, "ITEM-0001", items[0].ItemNumber)
	assert.Equal(t, "ITEM-0050", items[49].ItemNumber)

	for _, in := range items {
		assert.GreaterOrEqual(t, in.Qty, 1.0)
		assert.LessOrEqual(t, in.Qty, 20.0)
		assert.Equal(t, in.Vendor, in.ShipFrom)
		assert.NoError(t, models.ValidateTrackingDates(in.Dates), in.ItemNumber)
	}

	again := sampleItems(gofakeit.New(7), 50, fixedNow)
	assert.Equal(t, items, again, "same seed must produce the same data")
}

func TestSeedItems(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupService(t)
	inputs := sampleItems(gofakeit.New(42), 12, fixedNow)

	created, skipped, err := seedItems(ctx, svc, inputs, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, 12, created)
	assert.Zero(t, skipped)

	created, skipped, err = seedItems(ctx, svc, inputs, logger.Discard())
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, 12, skipped)

	page, err := svc.List(ctx, repositories.ListQuery{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(12), page.Total)

	purged, err := repo.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), purged)

	created, _, err = seedItems(ctx, svc, inputs, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, 12, created)
}
