package handlers

import (
	"net/http"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	pkgvalidator "github.com/ghuser/itemtracker/pkg/validator"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
)

// BulkEditRequest is the request body for POST /items/bulk-edit.
type BulkEditRequest struct {
	ItemIDsRequest
	Location *string `json:"location" example:"Warehouse B"`
	Category *string `json:"category" example:"Seating"`
	ShipFrom *string `json:"shipFrom" example:"Acme Warehouse"`
	Notes    *string `json:"notes"`
} // @name BulkEditRequest

// PostBulkEditHandler handles POST /items/bulk-edit requests.
type PostBulkEditHandler struct {
	svc *appsvcs.Services
}

// NewPostBulkEditHandler returns a PostBulkEditHandler backed by the given services.
func NewPostBulkEditHandler(svc *appsvcs.Services) *PostBulkEditHandler {
	return &PostBulkEditHandler{svc: svc}
}

// Execute overwrites location, category, ship-from or notes on many items.
//
//	@Summary		Bulk edit items
//	@Description	Writes the supplied fields to every listed item. An empty string clears the field.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BulkEditRequest	true	"Items and fields"
//	@Success		200		{object}	BulkUpdateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/bulk-edit [post]
func (h *PostBulkEditHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[BulkEditRequest](w, r)
	if !ok {
		return
	}

	n, err := h.svc.Item.BulkEdit(r.Context(), req.ItemIDs, appsvcs.BulkEditInput{
		Location: req.Location,
		Category: req.Category,
		ShipFrom: req.ShipFrom,
		Notes:    req.Notes,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, BulkUpdateResponse{Updated: n})
}
