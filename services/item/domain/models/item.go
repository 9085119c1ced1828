package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ItemProps is the flat, primitive form of an Item. It is the input of both
// construction paths and the output of Item.Props.
type ItemProps struct {
	ID            int64
	ItemNumber    string
	SpecNumber    string
	ItemName      string
	Vendor        string
	Phase         string
	ShipTo        string
	ShipToAddress string
	ShipFrom      string
	Qty           float64
	Price         decimal.Decimal
	Dates         map[TrackingDateField]time.Time
	ShipNotes     string
	Notes         string
	Location      string
	Category      string
	UploadFile    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Item is the aggregate root of the item bounded context. It is immutable:
// every state transition returns a new snapshot.
type Item struct {
	id              int64
	itemNumber      ItemNumber
	specNumber      string
	itemName        string
	vendor          string
	phase           string
	shippingAddress ShippingAddress
	quantity        Quantity
	price           Price
	trackingDates   TrackingDates
	shipNotes       string
	notes           string
	location        string
	category        string
	uploadFile      string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewItem validates every invariant of props and builds an Item. A zero
// CreatedAt is set to now, a zero UpdatedAt to CreatedAt.
func NewItem(props ItemProps) (*Item, error) {
	number, err := NewItemNumber(props.ItemNumber)
	if err != nil {
		return nil, err
	}
	specNumber, err := requiredText("specNumber", props.SpecNumber)
	if err != nil {
		return nil, err
	}
	itemName, err := requiredText("itemName", props.ItemName)
	if err != nil {
		return nil, err
	}
	vendor, err := requiredText("vendor", props.Vendor)
	if err != nil {
		return nil, err
	}
	phase, err := requiredText("phase", props.Phase)
	if err != nil {
		return nil, err
	}
	address, err := NewShippingAddress(props.ShipTo, props.ShipToAddress, props.ShipFrom)
	if err != nil {
		return nil, err
	}
	qty, err := NewQuantity(props.Qty)
	if err != nil {
		return nil, err
	}
	price, err := NewPrice(props.Price)
	if err != nil {
		return nil, err
	}
	dates, err := NewTrackingDates(props.Dates)
	if err != nil {
		return nil, err
	}

	createdAt := props.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := props.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	return &Item{
		id:              props.ID,
		itemNumber:      number,
		specNumber:      specNumber,
		itemName:        itemName,
		vendor:          vendor,
		phase:           phase,
		shippingAddress: address,
		quantity:        qty,
		price:           price,
		trackingDates:   dates,
		shipNotes:       strings.TrimSpace(props.ShipNotes),
		notes:           strings.TrimSpace(props.Notes),
		location:        strings.TrimSpace(props.Location),
		category:        strings.TrimSpace(props.Category),
		uploadFile:      strings.TrimSpace(props.UploadFile),
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

// RestoreItem rebuilds an Item from persisted state without checking any
// invariant. Stored rows that predate the current rules (for example shipping
// dates out of order) stay readable. Never call it with caller-supplied input.
func RestoreItem(props ItemProps) *Item {
	return &Item{
		id:         props.ID,
		itemNumber: ItemNumber{value: props.ItemNumber},
		specNumber: props.SpecNumber,
		itemName:   props.ItemName,
		vendor:     props.Vendor,
		phase:      props.Phase,
		shippingAddress: ShippingAddress{
			shipTo:        props.ShipTo,
			shipToAddress: props.ShipToAddress,
			shipFrom:      props.ShipFrom,
		},
		quantity:      Quantity{value: int64(props.Qty)},
		price:         Price{amount: props.Price},
		trackingDates: RestoreTrackingDates(props.Dates),
		shipNotes:     props.ShipNotes,
		notes:         props.Notes,
		location:      props.Location,
		category:      props.Category,
		uploadFile:    props.UploadFile,
		createdAt:     props.CreatedAt,
		updatedAt:     props.UpdatedAt,
	}
}

func (i *Item) ID() int64                        { return i.id }
func (i *Item) HasID() bool                      { return i.id > 0 }
func (i *Item) ItemNumber() ItemNumber           { return i.itemNumber }
func (i *Item) SpecNumber() string               { return i.specNumber }
func (i *Item) ItemName() string                 { return i.itemName }
func (i *Item) Vendor() string                   { return i.vendor }
func (i *Item) Phase() string                    { return i.phase }
func (i *Item) ShippingAddress() ShippingAddress { return i.shippingAddress }
func (i *Item) Quantity() Quantity               { return i.quantity }
func (i *Item) Price() Price                     { return i.price }
func (i *Item) TrackingDates() TrackingDates     { return i.trackingDates }
func (i *Item) ShipNotes() string                { return i.shipNotes }
func (i *Item) Notes() string                    { return i.notes }
func (i *Item) Location() string                 { return i.location }
func (i *Item) Category() string                 { return i.category }
func (i *Item) UploadFile() string               { return i.uploadFile }
func (i *Item) CreatedAt() time.Time             { return i.createdAt }
func (i *Item) UpdatedAt() time.Time             { return i.updatedAt }

// Props flattens the item back to primitives.
func (i *Item) Props() ItemProps {
	return ItemProps{
		ID:            i.id,
		ItemNumber:    i.itemNumber.String(),
		SpecNumber:    i.specNumber,
		ItemName:      i.itemName,
		Vendor:        i.vendor,
		Phase:         i.phase,
		ShipTo:        i.shippingAddress.ShipTo(),
		ShipToAddress: i.shippingAddress.ShipToAddress(),
		ShipFrom:      i.shippingAddress.ShipFrom(),
		Qty:           float64(i.quantity.Value()),
		Price:         i.price.Amount(),
		Dates:         i.trackingDates.Map(),
		ShipNotes:     i.shipNotes,
		Notes:         i.notes,
		Location:      i.location,
		Category:      i.category,
		UploadFile:    i.uploadFile,
		CreatedAt:     i.createdAt,
		UpdatedAt:     i.updatedAt,
	}
}

// TotalValue is price x quantity. It fails when the product exceeds the
// largest representable Price.
func (i *Item) TotalValue() (Price, error) {
	return i.price.Multiply(decimal.NewFromInt(i.quantity.Value()))
}

// UpdateTrackingDates merges changes into the current dates and re-checks
// their order.
func (i *Item) UpdateTrackingDates(changes map[TrackingDateField]time.Time) (*Item, error) {
	dates, err := i.trackingDates.Merge(changes)
	if err != nil {
		return nil, err
	}
	next := i.touch()
	next.trackingDates = dates
	return next, nil
}

// DetailsUpdate carries the fields UpdateDetails may override. Nil keeps the
// current value.
type DetailsUpdate struct {
	Location *string
	Category *string
	ShipFrom *string
	Notes    *string
}

// UpdateDetails applies shallow overrides. Tracking dates are left untouched.
func (i *Item) UpdateDetails(u DetailsUpdate) (*Item, error) {
	next := i.touch()
	if u.ShipFrom != nil {
		address, err := i.shippingAddress.WithShipFrom(*u.ShipFrom)
		if err != nil {
			return nil, err
		}
		next.shippingAddress = address
	}
	if u.Location != nil {
		next.location = strings.TrimSpace(*u.Location)
	}
	if u.Category != nil {
		next.category = strings.TrimSpace(*u.Category)
	}
	if u.Notes != nil {
		next.notes = strings.TrimSpace(*u.Notes)
	}
	return next, nil
}

// Revise replaces every field except identity, item number, creation time
// and tracking dates with props, validating them as NewItem would. The receiver's dates are
// carried over unchecked, so a persisted item with out-of-order legacy dates
// can still have its other fields edited.
func (i *Item) Revise(props ItemProps) (*Item, error) {
	props.ID = i.id
	props.ItemNumber = i.itemNumber.String()
	props.Dates = nil
	props.CreatedAt = i.createdAt
	props.UpdatedAt = time.Now().UTC()

	next, err := NewItem(props)
	if err != nil {
		return nil, err
	}
	next.trackingDates = i.trackingDates
	return next, nil
}

// MatchesSearch reports whether term occurs, ignoring case, in the item name,
// item number or spec number.
func (i *Item) MatchesSearch(term string) bool {
	return containsFold(i.itemName, term) ||
		containsFold(i.itemNumber.String(), term) ||
		containsFold(i.specNumber, term)
}

func (i *Item) IsInPhase(phase string) bool {
	return i.phase == phase
}

func (i *Item) IsFromVendor(vendor string) bool {
	return i.vendor == vendor
}

func (i *Item) touch() *Item {
	next := *i
	next.updatedAt = time.Now().UTC()
	return &next
}
