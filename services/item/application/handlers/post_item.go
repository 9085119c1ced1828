package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	pkgvalidator "github.com/ghuser/itemtracker/pkg/validator"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	ItemNumber    string           `json:"itemNumber"    validate:"required"        example:"ITEM-0001"`
	SpecNumber    string           `json:"specNumber"    validate:"required"        example:"SPEC-101"`
	ItemName      string           `json:"itemName"      validate:"required"        example:"Lobby Chair"`
	Vendor        string           `json:"vendor"        validate:"required"        example:"Acme Furniture"`
	ShipTo        string           `json:"shipTo"        validate:"required"        example:"Grand Hotel"`
	ShipToAddress string           `json:"shipToAddress"                            example:"1 Main St"`
	ShipFrom      string           `json:"shipFrom"                                 example:"Acme Warehouse"`
	Qty           *float64         `json:"qty"           validate:"required,gte=0"  example:"12"`
	Phase         string           `json:"phase"         validate:"required"        example:"01"`
	Price         *decimal.Decimal `json:"price"         validate:"required"        example:"149.99" swaggertype:"number"`
	ShipNotes     string           `json:"shipNotes"`
	Notes         string           `json:"notes"`
	Location      string           `json:"location"`
	Category      string           `json:"category"`
	UploadFile    string           `json:"uploadFile"`
	TrackingDatesRequest
} // @name CreateItemRequest

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new item.
//
//	@Summary		Create item
//	@Description	Creates an item with its shipping, tracking and metadata records
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	dates, err := req.Dates()
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	item, err := h.svc.Item.Create(r.Context(), appsvcs.CreateItemInput{
		ItemNumber:    req.ItemNumber,
		SpecNumber:    req.SpecNumber,
		ItemName:      req.ItemName,
		Vendor:        req.Vendor,
		Phase:         req.Phase,
		ShipTo:        req.ShipTo,
		ShipToAddress: req.ShipToAddress,
		ShipFrom:      req.ShipFrom,
		Qty:           *req.Qty,
		Price:         *req.Price,
		Dates:         dates,
		ShipNotes:     req.ShipNotes,
		Notes:         req.Notes,
		Location:      req.Location,
		Category:      req.Category,
		UploadFile:    req.UploadFile,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	location := fmt.Sprintf("%s/%d", strings.TrimSuffix(r.URL.Path, "/"), item.ID())
	httpx.Created(w, location, toItemResponse(item))
}
