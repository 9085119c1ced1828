package handlers

import (
	"net/http"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
)

// GetItemHandler handles GET /items/{id} requests.
type GetItemHandler struct {
	svc *appsvcs.Services
}

// NewGetItemHandler returns a GetItemHandler backed by the given services.
func NewGetItemHandler(svc *appsvcs.Services) *GetItemHandler {
	return &GetItemHandler{svc: svc}
}

// Execute returns a single item.
//
//	@Summary	Get item
//	@Tags		items
//	@Produce	json
//	@Param		id	path		int	true	"Item ID"
//	@Success	200	{object}	ItemResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
