package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemtracker/pkg/httpx"
	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/domain/models"
)

// dateLayouts are the accepted tracking date formats, tried in order.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly}

func parseDate(field models.TrackingDateField, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, itemdomain.NewValidationError(string(field), itemdomain.RuleInvalidDate,
		"must be an ISO 8601 date, got %q", s)
}

// TrackingDatesRequest is the set of optional tracking dates accepted by the
// create and update-tracking endpoints.
type TrackingDatesRequest struct {
	PoApprovalDate    *string `json:"poApprovalDate,omitempty"    example:"2024-01-15"`
	HotelNeedByDate   *string `json:"hotelNeedByDate,omitempty"   example:"2024-03-01"`
	ExpectedDelivery  *string `json:"expectedDelivery,omitempty"  example:"2024-02-20"`
	CfaShopsSend      *string `json:"cfaShopsSend,omitempty"`
	CfaShopsApproved  *string `json:"cfaShopsApproved,omitempty"`
	CfaShopsDelivered *string `json:"cfaShopsDelivered,omitempty"`
	OrderedDate       *string `json:"orderedDate,omitempty"       example:"2024-01-20"`
	ShippedDate       *string `json:"shippedDate,omitempty"       example:"2024-02-01"`
	DeliveredDate     *string `json:"deliveredDate,omitempty"     example:"2024-02-15"`
} // @name TrackingDatesRequest

func (r TrackingDatesRequest) fields() map[models.TrackingDateField]*string {
	return map[models.TrackingDateField]*string{
		models.PoApprovalDate:    r.PoApprovalDate,
		models.HotelNeedByDate:   r.HotelNeedByDate,
		models.ExpectedDelivery:  r.ExpectedDelivery,
		models.CfaShopsSend:      r.CfaShopsSend,
		models.CfaShopsApproved:  r.CfaShopsApproved,
		models.CfaShopsDelivered: r.CfaShopsDelivered,
		models.OrderedDate:       r.OrderedDate,
		models.ShippedDate:       r.ShippedDate,
		models.DeliveredDate:     r.DeliveredDate,
	}
}

// Dates parses every supplied date. Absent and blank dates are left out.
func (r TrackingDatesRequest) Dates() (map[models.TrackingDateField]time.Time, error) {
	out := map[models.TrackingDateField]time.Time{}
	for f, s := range r.fields() {
		if s == nil || strings.TrimSpace(*s) == "" {
			continue
		}
		t, err := parseDate(f, *s)
		if err != nil {
			return nil, err
		}
		out[f] = t
	}
	return out, nil
}

// ItemIDsRequest is embedded by every bulk request body.
type ItemIDsRequest struct {
	ItemIDs []int64 `json:"itemIds" validate:"required,min=1,dive,gt=0" example:"1,2,3"`
} // @name ItemIDsRequest

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

// itemIDParam reads the {id} path parameter. On failure it writes a 400 and
// returns false.
func itemIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}
