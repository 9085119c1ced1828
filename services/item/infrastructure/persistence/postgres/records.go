package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ghuser/itemtracker/services/item/domain/models"
)

// ItemRecord is a row of the items table, the core record group.
type ItemRecord struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ItemNumber string          `gorm:"column:item_number;size:50;uniqueIndex"`
	SpecNumber string          `gorm:"column:spec_number"`
	ItemName   string          `gorm:"column:item_name"`
	Vendor     string          `gorm:"column:vendor"`
	Qty        int64           `gorm:"column:qty"`
	Price      decimal.Decimal `gorm:"column:price;type:decimal(12,2)"`
	Phase      string          `gorm:"column:phase;index"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`

	Shipping *ItemShippingRecord `gorm:"foreignKey:ItemID;references:ID"`
	Tracking *ItemTrackingRecord `gorm:"foreignKey:ItemID;references:ID"`
	Metadata *ItemMetadataRecord `gorm:"foreignKey:ItemID;references:ID"`
}

func (ItemRecord) TableName() string { return "items" }

// ItemShippingRecord is a row of item_shipping, keyed by the item id.
type ItemShippingRecord struct {
	ItemID        int64     `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	ShipTo        string    `gorm:"column:ship_to"`
	ShipToAddress *string   `gorm:"column:ship_to_address"`
	ShipFrom      *string   `gorm:"column:ship_from"`
	ShipNotes     *string   `gorm:"column:ship_notes"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (ItemShippingRecord) TableName() string { return "item_shipping" }

// ItemTrackingRecord is a row of item_tracking, keyed by the item id.
type ItemTrackingRecord struct {
	ItemID            int64      `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	PoApprovalDate    *time.Time `gorm:"column:po_approval_date"`
	HotelNeedByDate   *time.Time `gorm:"column:hotel_need_by_date"`
	ExpectedDelivery  *time.Time `gorm:"column:expected_delivery"`
	CfaShopsSend      *time.Time `gorm:"column:cfa_shops_send"`
	CfaShopsApproved  *time.Time `gorm:"column:cfa_shops_approved"`
	CfaShopsDelivered *time.Time `gorm:"column:cfa_shops_delivered"`
	OrderedDate       *time.Time `gorm:"column:ordered_date"`
	ShippedDate       *time.Time `gorm:"column:shipped_date"`
	DeliveredDate     *time.Time `gorm:"column:delivered_date"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (ItemTrackingRecord) TableName() string { return "item_tracking" }

// ItemMetadataRecord is a row of item_metadata, keyed by the item id.
type ItemMetadataRecord struct {
	ItemID     int64     `gorm:"column:item_id;primaryKey;autoIncrement:false"`
	Notes      *string   `gorm:"column:notes"`
	Location   *string   `gorm:"column:location"`
	Category   *string   `gorm:"column:category"`
	UploadFile *string   `gorm:"column:upload_file"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (ItemMetadataRecord) TableName() string { return "item_metadata" }

// trackingColumn binds a tracking date field to its column and record slot.
type trackingColumn struct {
	field  models.TrackingDateField
	column string
	slot   func(*ItemTrackingRecord) **time.Time
}

var trackingColumns = []trackingColumn{
	{models.PoApprovalDate, "po_approval_date", func(r *ItemTrackingRecord) **time.Time { return &r.PoApprovalDate }},
	{models.HotelNeedByDate, "hotel_need_by_date", func(r *ItemTrackingRecord) **time.Time { return &r.HotelNeedByDate }},
	{models.ExpectedDelivery, "expected_delivery", func(r *ItemTrackingRecord) **time.Time { return &r.ExpectedDelivery }},
	{models.CfaShopsSend, "cfa_shops_send", func(r *ItemTrackingRecord) **time.Time { return &r.CfaShopsSend }},
	{models.CfaShopsApproved, "cfa_shops_approved", func(r *ItemTrackingRecord) **time.Time { return &r.CfaShopsApproved }},
	{models.CfaShopsDelivered, "cfa_shops_delivered", func(r *ItemTrackingRecord) **time.Time { return &r.CfaShopsDelivered }},
	{models.OrderedDate, "ordered_date", func(r *ItemTrackingRecord) **time.Time { return &r.OrderedDate }},
	{models.ShippedDate, "shipped_date", func(r *ItemTrackingRecord) **time.Time { return &r.ShippedDate }},
	{models.DeliveredDate, "delivered_date", func(r *ItemTrackingRecord) **time.Time { return &r.DeliveredDate }},
}

// itemRecords is the four-group storage shape of one item.
type itemRecords struct {
	core     ItemRecord
	shipping ItemShippingRecord
	tracking ItemTrackingRecord
	metadata ItemMetadataRecord
}

// toRecords splits an item into its record groups. Dependent groups carry the
// item's id, which is zero for unsaved items.
func toRecords(item *models.Item) itemRecords {
	p := item.Props()
	now := time.Now().UTC()

	recs := itemRecords{
		core: ItemRecord{
			ID:         p.ID,
			ItemNumber: p.ItemNumber,
			SpecNumber: p.SpecNumber,
			ItemName:   p.ItemName,
			Vendor:     p.Vendor,
			Qty:        int64(p.Qty),
			Price:      p.Price,
			Phase:      p.Phase,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
		},
		shipping: ItemShippingRecord{
			ItemID:        p.ID,
			ShipTo:        p.ShipTo,
			ShipToAddress: optional(p.ShipToAddress),
			ShipFrom:      optional(p.ShipFrom),
			ShipNotes:     optional(p.ShipNotes),
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		tracking: ItemTrackingRecord{ItemID: p.ID, CreatedAt: now, UpdatedAt: now},
		metadata: ItemMetadataRecord{
			ItemID:     p.ID,
			Notes:      optional(p.Notes),
			Location:   optional(p.Location),
			Category:   optional(p.Category),
			UploadFile: optional(p.UploadFile),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
	for _, tc := range trackingColumns {
		if d, ok := p.Dates[tc.field]; ok {
			*tc.slot(&recs.tracking) = &d
		}
	}
	return recs
}

// withItemID stamps the dependent groups with the id assigned to the core row.
func (r *itemRecords) withItemID(id int64) {
	r.core.ID = id
	r.shipping.ItemID = id
	r.tracking.ItemID = id
	r.metadata.ItemID = id
}

// toProps flattens a joined row. Missing dependent groups read as empty.
func toProps(rec *ItemRecord) models.ItemProps {
	p := models.ItemProps{
		ID:         rec.ID,
		ItemNumber: rec.ItemNumber,
		SpecNumber: rec.SpecNumber,
		ItemName:   rec.ItemName,
		Vendor:     rec.Vendor,
		Phase:      rec.Phase,
		Qty:        float64(rec.Qty),
		Price:      rec.Price,
		Dates:      map[models.TrackingDateField]time.Time{},
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
	if s := rec.Shipping; s != nil {
		p.ShipTo = s.ShipTo
		p.ShipToAddress = deref(s.ShipToAddress)
		p.ShipFrom = deref(s.ShipFrom)
		p.ShipNotes = deref(s.ShipNotes)
	}
	if t := rec.Tracking; t != nil {
		for _, tc := range trackingColumns {
			if d := *tc.slot(t); d != nil {
				p.Dates[tc.field] = *d
			}
		}
	}
	if m := rec.Metadata; m != nil {
		p.Notes = deref(m.Notes)
		p.Location = deref(m.Location)
		p.Category = deref(m.Category)
		p.UploadFile = deref(m.UploadFile)
	}
	return p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
