package postgres

import (
	"sort"
	"time"

	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/domain/models"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
)

// recordGroup is one of the four tables an item is normalized into.
type recordGroup int

const (
	groupCore recordGroup = iota
	groupShipping
	groupTracking
	groupMetadata
)

func (g recordGroup) String() string {
	return [...]string{"core", "shipping", "tracking", "metadata"}[g]
}

// model returns an empty record of the group for gorm to derive the table from.
func (g recordGroup) model() any {
	switch g {
	case groupShipping:
		return &ItemShippingRecord{}
	case groupTracking:
		return &ItemTrackingRecord{}
	case groupMetadata:
		return &ItemMetadataRecord{}
	default:
		return &ItemRecord{}
	}
}

// keyColumn is the column holding the item id in the group's table.
func (g recordGroup) keyColumn() string {
	if g == groupCore {
		return "id"
	}
	return "item_id"
}

// deletionOrder lists the groups dependents first, so foreign keys are never
// violated. Shared by single and bulk delete.
var deletionOrder = []recordGroup{groupMetadata, groupTracking, groupShipping, groupCore}

// updateOrder is the order bulk updates touch the groups in.
var updateOrder = []recordGroup{groupCore, groupShipping, groupTracking, groupMetadata}

type route struct {
	group  recordGroup
	column string
}

// bulkRoutes is the dispatch table from bulk field to destination column.
var bulkRoutes = map[repositories.BulkField]route{
	repositories.BulkSpecNumber: {groupCore, "spec_number"},
	repositories.BulkItemName:   {groupCore, "item_name"},
	repositories.BulkVendor:     {groupCore, "vendor"},
	repositories.BulkQty:        {groupCore, "qty"},
	repositories.BulkPrice:      {groupCore, "price"},
	repositories.BulkPhase:      {groupCore, "phase"},

	repositories.BulkShipTo:        {groupShipping, "ship_to"},
	repositories.BulkShipToAddress: {groupShipping, "ship_to_address"},
	repositories.BulkShipFrom:      {groupShipping, "ship_from"},
	repositories.BulkShipNotes:     {groupShipping, "ship_notes"},

	repositories.BulkTrackingField(models.PoApprovalDate):    {groupTracking, "po_approval_date"},
	repositories.BulkTrackingField(models.HotelNeedByDate):   {groupTracking, "hotel_need_by_date"},
	repositories.BulkTrackingField(models.ExpectedDelivery):  {groupTracking, "expected_delivery"},
	repositories.BulkTrackingField(models.CfaShopsSend):      {groupTracking, "cfa_shops_send"},
	repositories.BulkTrackingField(models.CfaShopsApproved):  {groupTracking, "cfa_shops_approved"},
	repositories.BulkTrackingField(models.CfaShopsDelivered): {groupTracking, "cfa_shops_delivered"},
	repositories.BulkTrackingField(models.OrderedDate):       {groupTracking, "ordered_date"},
	repositories.BulkTrackingField(models.ShippedDate):       {groupTracking, "shipped_date"},
	repositories.BulkTrackingField(models.DeliveredDate):     {groupTracking, "delivered_date"},

	repositories.BulkNotes:      {groupMetadata, "notes"},
	repositories.BulkLocation:   {groupMetadata, "location"},
	repositories.BulkCategory:   {groupMetadata, "category"},
	repositories.BulkUploadFile: {groupMetadata, "upload_file"},
}

// partition splits fields into per-group column maps. Unknown fields are
// rejected before any I/O.
func partition(fields repositories.FieldUpdates) (map[recordGroup]map[string]any, error) {
	parts := make(map[recordGroup]map[string]any, len(updateOrder))
	for _, f := range sortedFields(fields) {
		if f == repositories.BulkItemNumber {
			return nil, itemdomain.NewValidationError(string(f), itemdomain.RuleImmutable, "cannot be changed after creation")
		}
		r, ok := bulkRoutes[f]
		if !ok {
			return nil, itemdomain.NewValidationError(string(f), itemdomain.RuleUnknownField, "cannot be bulk updated")
		}
		if parts[r.group] == nil {
			parts[r.group] = map[string]any{}
		}
		parts[r.group][r.column] = fields[f]
	}
	return parts, nil
}

// stampCore makes the core partition non-empty so the returned row count
// reflects every matched item, whichever groups the fields live in.
func stampCore(parts map[recordGroup]map[string]any, now time.Time) {
	if parts[groupCore] == nil {
		parts[groupCore] = map[string]any{}
	}
	parts[groupCore]["updated_at"] = now
}

func sortedFields(fields repositories.FieldUpdates) []repositories.BulkField {
	out := make([]repositories.BulkField, 0, len(fields))
	for f := range fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
