package handlers

import (
	"net/http"
	"strconv"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
)

// GetItemsHandler handles GET /items requests.
type GetItemsHandler struct {
	svc *appsvcs.Services
}

// NewGetItemsHandler returns a GetItemsHandler backed by the given services.
func NewGetItemsHandler(svc *appsvcs.Services) *GetItemsHandler {
	return &GetItemsHandler{svc: svc}
}

// Execute lists items one page at a time.
//
//	@Summary		List items
//	@Description	Returns a page of items ordered by item number
//	@Tags			items
//	@Produce		json
//	@Param			page	query		int		false	"Page number"	default(1)
//	@Param			limit	query		int		false	"Page size"		default(10)
//	@Param			search	query		string	false	"Matches item name, number or spec"
//	@Param			phase	query		string	false	"Exact phase, or all"
//	@Param			vendor	query		string	false	"Exact vendor, or all"
//	@Success		200		{object}	ItemListResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/items [get]
func (h *GetItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, ok := intParam(w, q.Get("page"), "page")
	if !ok {
		return
	}
	limit, ok := intParam(w, q.Get("limit"), "limit")
	if !ok {
		return
	}

	res, err := h.svc.Item.List(r.Context(), repositories.ListQuery{
		Page:   page,
		Limit:  limit,
		Search: q.Get("search"),
		Phase:  q.Get("phase"),
		Vendor: q.Get("vendor"),
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemListResponse(res))
}

// intParam parses an optional integer query parameter. Empty yields 0.
func intParam(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return v, true
}
