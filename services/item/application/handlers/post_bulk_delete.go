package handlers

import (
	"net/http"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	pkgvalidator "github.com/ghuser/itemtracker/pkg/validator"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
)

// BulkDeleteRequest is the request body for POST /items/bulk-delete.
type BulkDeleteRequest struct {
	ItemIDsRequest
} // @name BulkDeleteRequest

// PostBulkDeleteHandler handles POST /items/bulk-delete requests.
type PostBulkDeleteHandler struct {
	svc *appsvcs.Services
}

// NewPostBulkDeleteHandler returns a PostBulkDeleteHandler backed by the given services.
func NewPostBulkDeleteHandler(svc *appsvcs.Services) *PostBulkDeleteHandler {
	return &PostBulkDeleteHandler{svc: svc}
}

// Execute deletes many items. Unknown ids are ignored.
//
//	@Summary	Bulk delete items
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Param		request	body		BulkDeleteRequest	true	"Items to delete"
//	@Success	200		{object}	BulkDeleteResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/items/bulk-delete [post]
func (h *PostBulkDeleteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[BulkDeleteRequest](w, r)
	if !ok {
		return
	}

	n, err := h.svc.Item.BulkDelete(r.Context(), req.ItemIDs)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, BulkDeleteResponse{Deleted: n})
}
