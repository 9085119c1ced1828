package models

import (
	"time"

	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
)

// TrackingDateField names one of the nine milestone dates of an item.
type TrackingDateField string

// Planning milestones.
const (
	PoApprovalDate   TrackingDateField = "poApprovalDate"
	HotelNeedByDate  TrackingDateField = "hotelNeedByDate"
	ExpectedDelivery TrackingDateField = "expectedDelivery"
)

// Production milestones.
const (
	CfaShopsSend      TrackingDateField = "cfaShopsSend"
	CfaShopsApproved  TrackingDateField = "cfaShopsApproved"
	CfaShopsDelivered TrackingDateField = "cfaShopsDelivered"
)

// Shipping milestones. These three must be chronological when present.
const (
	OrderedDate   TrackingDateField = "orderedDate"
	ShippedDate   TrackingDateField = "shippedDate"
	DeliveredDate TrackingDateField = "deliveredDate"
)

// TrackingDateFields lists every milestone in lifecycle order.
var TrackingDateFields = []TrackingDateField{
	PoApprovalDate, HotelNeedByDate, ExpectedDelivery,
	CfaShopsSend, CfaShopsApproved, CfaShopsDelivered,
	OrderedDate, ShippedDate, DeliveredDate,
}

// shippingOrder pairs must satisfy later >= earlier.
var shippingOrder = [][2]TrackingDateField{
	{OrderedDate, ShippedDate},
	{ShippedDate, DeliveredDate},
}

// TrackingDates is an immutable set of optional milestone dates.
type TrackingDates struct {
	dates map[TrackingDateField]time.Time
}

// NewTrackingDates copies dates and checks the shipping order.
func NewTrackingDates(dates map[TrackingDateField]time.Time) (TrackingDates, error) {
	td := RestoreTrackingDates(dates)
	if err := td.validate(); err != nil {
		return TrackingDates{}, err
	}
	return td, nil
}

// RestoreTrackingDates copies dates without checking their order. Only for
// state that was already persisted.
func RestoreTrackingDates(dates map[TrackingDateField]time.Time) TrackingDates {
	cp := make(map[TrackingDateField]time.Time, len(dates))
	for f, d := range dates {
		if !d.IsZero() {
			cp[f] = d
		}
	}
	return TrackingDates{dates: cp}
}

// ValidateTrackingDates checks the shipping order of a partial set of dates.
func ValidateTrackingDates(dates map[TrackingDateField]time.Time) error {
	return RestoreTrackingDates(dates).validate()
}

func (t TrackingDates) validate() error {
	for _, pair := range shippingOrder {
		earlier, okE := t.dates[pair[0]]
		later, okL := t.dates[pair[1]]
		if okE && okL && later.Before(earlier) {
			return itemdomain.NewValidationError(string(pair[1]), itemdomain.RuleInvalidOrder,
				"cannot be before %s", pair[0])
		}
	}
	return nil
}

// Get returns the date for f and whether it is set.
func (t TrackingDates) Get(f TrackingDateField) (time.Time, bool) {
	d, ok := t.dates[f]
	return d, ok
}

// Ptr returns the date for f, or nil when unset.
func (t TrackingDates) Ptr(f TrackingDateField) *time.Time {
	d, ok := t.dates[f]
	if !ok {
		return nil
	}
	return &d
}

// Map returns a copy of the set dates.
func (t TrackingDates) Map() map[TrackingDateField]time.Time {
	cp := make(map[TrackingDateField]time.Time, len(t.dates))
	for f, d := range t.dates {
		cp[f] = d
	}
	return cp
}

// Merge overlays changes on the current dates and re-validates the result.
// Fields missing from changes keep their value; a zero time clears the field.
func (t TrackingDates) Merge(changes map[TrackingDateField]time.Time) (TrackingDates, error) {
	merged := t.Map()
	for f, d := range changes {
		merged[f] = d
	}
	return NewTrackingDates(merged)
}

func (t TrackingDates) Equal(other TrackingDates) bool {
	if len(t.dates) != len(other.dates) {
		return false
	}
	for f, d := range t.dates {
		o, ok := other.dates[f]
		if !ok || !o.Equal(d) {
			return false
		}
	}
	return true
}
