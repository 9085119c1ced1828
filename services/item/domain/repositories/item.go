package repositories

import (
	"context"

	"github.com/ghuser/itemtracker/services/item/domain/models"
)

// FilterAll is the phase/vendor filter value that disables the filter.
const FilterAll = "all"

// ListQuery selects one page of items. Page and Limit are 1-based and must be
// normalized by the caller; Search, Phase and Vendor are optional.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Phase  string
	Vendor string
}

// Offset is the number of rows skipped before the page starts.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ListResult is one page of items plus the number of rows matching the filter.
// Total counts matching rows before pagination, including rows that could not
// be mapped to a valid Item.
type ListResult struct {
	Items []*models.Item
	Total int64
}

// BulkField is a field that BulkUpdate can write across many items.
type BulkField string

// BulkItemNumber names the item number so BulkUpdate can refuse it.
const BulkItemNumber BulkField = "itemNumber"

// Bulk-updatable fields. Tracking date fields use the models.TrackingDateField names.
const (
	BulkSpecNumber    BulkField = "specNumber"
	BulkItemName      BulkField = "itemName"
	BulkVendor        BulkField = "vendor"
	BulkQty           BulkField = "qty"
	BulkPrice         BulkField = "price"
	BulkPhase         BulkField = "phase"
	BulkShipTo        BulkField = "shipTo"
	BulkShipToAddress BulkField = "shipToAddress"
	BulkShipFrom      BulkField = "shipFrom"
	BulkShipNotes     BulkField = "shipNotes"
	BulkNotes         BulkField = "notes"
	BulkLocation      BulkField = "location"
	BulkCategory      BulkField = "category"
	BulkUploadFile    BulkField = "uploadFile"
)

// BulkTrackingField converts a tracking date field to its bulk field.
func BulkTrackingField(f models.TrackingDateField) BulkField {
	return BulkField(f)
}

// FieldUpdates maps bulk fields to new values. A nil value writes NULL.
type FieldUpdates map[BulkField]any

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Every write runs in exactly one transaction spanning all four record groups
// (core, shipping, tracking, metadata).
type ItemRepository interface {
	// Save inserts a new item and returns it reloaded with its assigned id.
	// Returns ErrItemAlreadyExists when the item number is taken.
	Save(ctx context.Context, item *models.Item) (*models.Item, error)

	// FindByID returns (nil, nil) when no item has the id. The item is rebuilt
	// without invariant checks so legacy rows stay readable.
	FindByID(ctx context.Context, id int64) (*models.Item, error)

	// FindByItemNumber behaves like FindByID, keyed by item number.
	FindByItemNumber(ctx context.Context, number models.ItemNumber) (*models.Item, error)

	// FindAll returns one page ordered by item number. Rows that fail
	// validation are skipped and logged.
	FindAll(ctx context.Context, q ListQuery) (ListResult, error)

	// Update rewrites every record group of an existing item and returns it
	// reloaded. Returns ErrMissingID for unsaved items and ErrItemNotFound
	// when the core row is gone.
	Update(ctx context.Context, item *models.Item) (*models.Item, error)

	// Delete removes the item and its dependent records.
	// Returns ErrItemNotFound when the core row does not exist.
	Delete(ctx context.Context, id int64) error

	// BulkUpdate writes fields to every item in ids and returns the number of
	// core rows touched.
	BulkUpdate(ctx context.Context, ids []int64, fields FieldUpdates) (int64, error)

	// BulkDelete removes every item in ids and returns the number of core rows deleted.
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
}
