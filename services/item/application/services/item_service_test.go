package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/itemtracker/pkg/logger"
	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/domain/models"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
)

func day(d int) time.Time {
	return time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC)
}

func createInput(number string) CreateItemInput {
	return CreateItemInput{
		ItemNumber: number,
		SpecNumber: "SPEC-1",
		ItemName:   "Desk Lamp",
		Vendor:     "Acme",
		Phase:      "01",
		ShipTo:     "Grand Hotel",
		Qty:        10,
		Price:      decimal.RequireFromString("25.50"),
		Notes:      "rush",
	}
}

func newTestService() (*ItemService, *fakeRepo) {
	repo := newFakeRepo()
	return NewItemService(repo, logger.Discard(), 10, 100), repo
}

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("saves a valid item", func(t *testing.T) {
		svc, _ := newTestService()
		item, err := svc.Create(ctx, createInput("ITEM-0001"))
		require.NoError(t, err)
		assert.True(t, item.HasID())
		assert.Equal(t, "ITEM-0001", item.ItemNumber().String())
	})

	t.Run("rejects a taken item number", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(ctx, createInput("ITEM-0001"))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createInput(" ITEM-0001 "))
		require.ErrorIs(t, err, itemdomain.ErrItemAlreadyExists)
	})

	t.Run("rejects invalid input before touching storage", func(t *testing.T) {
		svc, repo := newTestService()
		in := createInput("ITEM-0001")
		in.Vendor = "  "
		_, err := svc.Create(ctx, in)
		require.ErrorIs(t, err, itemdomain.ErrValidation)
		assert.Empty(t, repo.items)
	})
}

func TestItemService_Get(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Get(ctx, 99)
	require.ErrorIs(t, err, itemdomain.ErrItemNotFound)

	created, err := svc.Create(ctx, createInput("ITEM-0001"))
	require.NoError(t, err)
	got, err := svc.Get(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, created.ID(), got.ID())
}

func TestItemService_List(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	for i := 1; i <= 25; i++ {
		_, err := svc.Create(ctx, createInput(fmt.Sprintf("ITEM-%04d", i)))
		require.NoError(t, err)
	}

	t.Run("defaults", func(t *testing.T) {
		page, err := svc.List(ctx, repositories.ListQuery{})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, int64(25), page.Total)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Items, 10)
	})

	t.Run("last page", func(t *testing.T) {
		page, err := svc.List(ctx, repositories.ListQuery{Page: 3, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, page.Items, 5)
		assert.Equal(t, "ITEM-0021", page.Items[0].ItemNumber().String())
	})

	t.Run("limit is capped", func(t *testing.T) {
		page, err := svc.List(ctx, repositories.ListQuery{Limit: 1000})
		require.NoError(t, err)
		assert.Equal(t, 100, page.Limit)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestItemService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps absent fields and clears null ones", func(t *testing.T) {
		svc, _ := newTestService()
		created, err := svc.Create(ctx, createInput("ITEM-0001"))
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID(), ItemPatch{
			ItemName: nullable.NewNullableWithValue("Floor Lamp"),
			Notes:    nullable.NewNullNullable[string](),
		})
		require.NoError(t, err)
		assert.Equal(t, "Floor Lamp", updated.ItemName())
		assert.Empty(t, updated.Notes())
		assert.Equal(t, "Acme", updated.Vendor())
		assert.Equal(t, created.CreatedAt(), updated.CreatedAt())
	})

	t.Run("required field cannot be cleared", func(t *testing.T) {
		svc, _ := newTestService()
		created, err := svc.Create(ctx, createInput("ITEM-0001"))
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID(), ItemPatch{Vendor: nullable.NewNullableWithValue("")})
		require.ErrorIs(t, err, itemdomain.ErrValidation)

		_, err = svc.Update(ctx, created.ID(), ItemPatch{Qty: nullable.NewNullNullable[float64]()})
		require.ErrorIs(t, err, itemdomain.ErrValidation)
	})

	t.Run("non-date patch on legacy dates succeeds", func(t *testing.T) {
		svc, repo := newTestService()
		id := repo.put(models.ItemProps{
			ItemNumber: "ITEM-0009", SpecNumber: "S", ItemName: "Old", Vendor: "Acme", Phase: "01",
			ShipTo: "Grand Hotel", Qty: 1, Price: decimal.NewFromInt(1),
			Dates: map[models.TrackingDateField]time.Time{
				models.ShippedDate:   day(10),
				models.DeliveredDate: day(2),
			},
		})

		updated, err := svc.Update(ctx, id, ItemPatch{Location: nullable.NewNullableWithValue("Dock")})
		require.NoError(t, err)
		assert.Equal(t, "Dock", updated.Location())
		d, ok := updated.TrackingDates().Get(models.DeliveredDate)
		require.True(t, ok)
		assert.True(t, d.Equal(day(2)))
	})

	t.Run("date patch revalidates", func(t *testing.T) {
		svc, _ := newTestService()
		in := createInput("ITEM-0001")
		in.Dates = map[models.TrackingDateField]time.Time{models.ShippedDate: day(5)}
		created, err := svc.Create(ctx, in)
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID(), ItemPatch{
			Dates: map[models.TrackingDateField]nullable.Nullable[time.Time]{
				models.DeliveredDate: nullable.NewNullableWithValue(day(1)),
			},
		})
		require.ErrorIs(t, err, itemdomain.ErrValidation)

		updated, err := svc.Update(ctx, created.ID(), ItemPatch{
			Dates: map[models.TrackingDateField]nullable.Nullable[time.Time]{
				models.DeliveredDate: nullable.NewNullableWithValue(day(9)),
				models.ShippedDate:   nullable.NewNullNullable[time.Time](),
			},
		})
		require.NoError(t, err)
		_, ok := updated.TrackingDates().Get(models.ShippedDate)
		assert.False(t, ok)
		d, ok := updated.TrackingDates().Get(models.DeliveredDate)
		require.True(t, ok)
		assert.True(t, d.Equal(day(9)))
	})

	t.Run("item number survives every kind of patch", func(t *testing.T) {
		svc, _ := newTestService()
		created, err := svc.Create(ctx, createInput("ITEM-0001"))
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID(), ItemPatch{ItemName: nullable.NewNullableWithValue("Floor Lamp")})
		require.NoError(t, err)
		assert.Equal(t, "ITEM-0001", updated.ItemNumber().String())

		updated, err = svc.Update(ctx, created.ID(), ItemPatch{
			Dates: map[models.TrackingDateField]nullable.Nullable[time.Time]{
				models.OrderedDate: nullable.NewNullableWithValue(day(3)),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "ITEM-0001", updated.ItemNumber().String())

		stored, err := svc.Get(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, "ITEM-0001", stored.ItemNumber().String())
	})

	t.Run("missing item", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Update(ctx, 5, ItemPatch{})
		require.ErrorIs(t, err, itemdomain.ErrItemNotFound)
	})
}

func TestItemService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.Create(ctx, createInput("ITEM-0001"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID()))
	require.ErrorIs(t, svc.Delete(ctx, created.ID()), itemdomain.ErrItemNotFound)
}

func TestItemService_BulkEdit(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	a, err := svc.Create(ctx, createInput("ITEM-0001"))
	require.NoError(t, err)
	b, err := svc.Create(ctx, createInput("ITEM-0002"))
	require.NoError(t, err)

	location, category := "  Warehouse B ", ""
	n, err := svc.BulkEdit(ctx, []int64{a.ID(), b.ID(), 404}, BulkEditInput{
		Location: &location,
		Category: &category,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, repositories.FieldUpdates{
		repositories.BulkLocation: "Warehouse B",
		repositories.BulkCategory: nil,
	}, repo.bulkFields)
}

func TestItemService_UpdateTracking(t *testing.T) {
	ctx := context.Background()

	t.Run("routes dates and notes", func(t *testing.T) {
		svc, repo := newTestService()
		notes := "left at dock"
		_, err := svc.UpdateTracking(ctx, []int64{1}, TrackingInput{
			Dates: map[models.TrackingDateField]time.Time{
				models.OrderedDate: day(1),
				models.ShippedDate: day(3),
			},
			ShippingNotes: &notes,
		})
		require.NoError(t, err)
		assert.Equal(t, repositories.FieldUpdates{
			repositories.BulkTrackingField(models.OrderedDate): day(1),
			repositories.BulkTrackingField(models.ShippedDate): day(3),
			repositories.BulkShipNotes:                         "left at dock",
		}, repo.bulkFields)
	})

	t.Run("rejects out of order payload", func(t *testing.T) {
		svc, repo := newTestService()
		_, err := svc.UpdateTracking(ctx, []int64{1}, TrackingInput{
			Dates: map[models.TrackingDateField]time.Time{
				models.ShippedDate:   day(5),
				models.DeliveredDate: day(4),
			},
		})
		require.ErrorIs(t, err, itemdomain.ErrValidation)
		assert.Nil(t, repo.bulkFields)
	})
}

func TestItemService_BulkDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	a, err := svc.Create(ctx, createInput("ITEM-0001"))
	require.NoError(t, err)

	n, err := svc.BulkDelete(ctx, []int64{a.ID(), 77})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Empty(t, repo.items)
}
