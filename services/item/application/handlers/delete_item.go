package handlers

import (
	"net/http"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
)

// DeleteItemHandler handles DELETE /items/{id} requests.
type DeleteItemHandler struct {
	svc *appsvcs.Services
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc}
}

// Execute deletes an item and its dependent records.
//
//	@Summary	Delete item
//	@Tags		items
//	@Param		id	path	int	true	"Item ID"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	if err := h.svc.Item.Delete(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.NoContent(w)
}
