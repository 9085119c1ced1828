package handlers

import (
	"net/http"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	pkgvalidator "github.com/ghuser/itemtracker/pkg/validator"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
)

// UpdateTrackingRequest is the request body for POST /items/update-tracking.
type UpdateTrackingRequest struct {
	ItemIDsRequest
	TrackingDatesRequest
	ShippingNotes *string `json:"shippingNotes" example:"Left at loading dock"`
} // @name UpdateTrackingRequest

// PostUpdateTrackingHandler handles POST /items/update-tracking requests.
type PostUpdateTrackingHandler struct {
	svc *appsvcs.Services
}

// NewPostUpdateTrackingHandler returns a PostUpdateTrackingHandler backed by the given services.
func NewPostUpdateTrackingHandler(svc *appsvcs.Services) *PostUpdateTrackingHandler {
	return &PostUpdateTrackingHandler{svc: svc}
}

// Execute sets tracking dates and shipping notes on many items.
//
//	@Summary		Update tracking
//	@Description	Writes the supplied tracking dates and shipping notes to every listed item
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateTrackingRequest	true	"Items and tracking data"
//	@Success		200		{object}	BulkUpdateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/update-tracking [post]
func (h *PostUpdateTrackingHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateTrackingRequest](w, r)
	if !ok {
		return
	}

	dates, err := req.Dates()
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	n, err := h.svc.Item.UpdateTracking(r.Context(), req.ItemIDs, appsvcs.TrackingInput{
		Dates:         dates,
		ShippingNotes: req.ShippingNotes,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, BulkUpdateResponse{Updated: n})
}
