package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/shopspring/decimal"

	"github.com/ghuser/itemtracker/pkg/errhttp"
	"github.com/ghuser/itemtracker/pkg/httpx"
	pkgvalidator "github.com/ghuser/itemtracker/pkg/validator"
	appsvcs "github.com/ghuser/itemtracker/services/item/application/services"
	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/domain/models"
)

// UpdateItemRequest is the request body for PATCH /items/{id}. Omitted keys
// are left unchanged; null clears optional fields. itemNumber is only read so
// that an attempt to change it can be refused.
type UpdateItemRequest struct {
	ItemNumber        nullable.Nullable[string]          `json:"itemNumber"        swaggertype:"string"`
	SpecNumber        nullable.Nullable[string]          `json:"specNumber"        swaggertype:"string"`
	ItemName          nullable.Nullable[string]          `json:"itemName"          swaggertype:"string"`
	Vendor            nullable.Nullable[string]          `json:"vendor"            swaggertype:"string"`
	ShipTo            nullable.Nullable[string]          `json:"shipTo"            swaggertype:"string"`
	ShipToAddress     nullable.Nullable[string]          `json:"shipToAddress"     swaggertype:"string"`
	ShipFrom          nullable.Nullable[string]          `json:"shipFrom"          swaggertype:"string"`
	Qty               nullable.Nullable[float64]         `json:"qty"               swaggertype:"number"`
	Phase             nullable.Nullable[string]          `json:"phase"             swaggertype:"string"`
	Price             nullable.Nullable[decimal.Decimal] `json:"price"             swaggertype:"number"`
	ShipNotes         nullable.Nullable[string]          `json:"shipNotes"         swaggertype:"string"`
	Notes             nullable.Nullable[string]          `json:"notes"             swaggertype:"string"`
	Location          nullable.Nullable[string]          `json:"location"          swaggertype:"string"`
	Category          nullable.Nullable[string]          `json:"category"          swaggertype:"string"`
	UploadFile        nullable.Nullable[string]          `json:"uploadFile"        swaggertype:"string"`
	PoApprovalDate    nullable.Nullable[string]          `json:"poApprovalDate"    swaggertype:"string"`
	HotelNeedByDate   nullable.Nullable[string]          `json:"hotelNeedByDate"   swaggertype:"string"`
	ExpectedDelivery  nullable.Nullable[string]          `json:"expectedDelivery"  swaggertype:"string"`
	CfaShopsSend      nullable.Nullable[string]          `json:"cfaShopsSend"      swaggertype:"string"`
	CfaShopsApproved  nullable.Nullable[string]          `json:"cfaShopsApproved"  swaggertype:"string"`
	CfaShopsDelivered nullable.Nullable[string]          `json:"cfaShopsDelivered" swaggertype:"string"`
	OrderedDate       nullable.Nullable[string]          `json:"orderedDate"       swaggertype:"string"`
	ShippedDate       nullable.Nullable[string]          `json:"shippedDate"       swaggertype:"string"`
	DeliveredDate     nullable.Nullable[string]          `json:"deliveredDate"     swaggertype:"string"`
} // @name UpdateItemRequest

// datePatches converts the present date keys. Null or blank clears the date.
func (req UpdateItemRequest) datePatches() (map[models.TrackingDateField]nullable.Nullable[time.Time], error) {
	raw := map[models.TrackingDateField]nullable.Nullable[string]{
		models.PoApprovalDate:    req.PoApprovalDate,
		models.HotelNeedByDate:   req.HotelNeedByDate,
		models.ExpectedDelivery:  req.ExpectedDelivery,
		models.CfaShopsSend:      req.CfaShopsSend,
		models.CfaShopsApproved:  req.CfaShopsApproved,
		models.CfaShopsDelivered: req.CfaShopsDelivered,
		models.OrderedDate:       req.OrderedDate,
		models.ShippedDate:       req.ShippedDate,
		models.DeliveredDate:     req.DeliveredDate,
	}

	out := map[models.TrackingDateField]nullable.Nullable[time.Time]{}
	for f, v := range raw {
		if !v.IsSpecified() {
			continue
		}
		s, err := v.Get()
		if err != nil || strings.TrimSpace(s) == "" {
			out[f] = nullable.NewNullNullable[time.Time]()
			continue
		}
		t, err := parseDate(f, s)
		if err != nil {
			return nil, err
		}
		out[f] = nullable.NewNullableWithValue(t)
	}
	return out, nil
}

func (req UpdateItemRequest) toPatch() (appsvcs.ItemPatch, error) {
	if req.ItemNumber.IsSpecified() {
		return appsvcs.ItemPatch{}, itemdomain.NewValidationError("itemNumber", itemdomain.RuleImmutable,
			"cannot be changed after creation")
	}
	dates, err := req.datePatches()
	if err != nil {
		return appsvcs.ItemPatch{}, err
	}
	return appsvcs.ItemPatch{
		SpecNumber:    req.SpecNumber,
		ItemName:      req.ItemName,
		Vendor:        req.Vendor,
		Phase:         req.Phase,
		ShipTo:        req.ShipTo,
		ShipToAddress: req.ShipToAddress,
		ShipFrom:      req.ShipFrom,
		Qty:           req.Qty,
		Price:         req.Price,
		ShipNotes:     req.ShipNotes,
		Notes:         req.Notes,
		Location:      req.Location,
		Category:      req.Category,
		UploadFile:    req.UploadFile,
		Dates:         dates,
	}, nil
}

// PatchItemHandler handles PATCH /items/{id} requests.
type PatchItemHandler struct {
	svc *appsvcs.Services
}

// NewPatchItemHandler returns a PatchItemHandler backed by the given services.
func NewPatchItemHandler(svc *appsvcs.Services) *PatchItemHandler {
	return &PatchItemHandler{svc: svc}
}

// Execute applies a partial update to an item.
//
//	@Summary		Update item
//	@Description	Partially updates an item. Changing any tracking date revalidates the whole item.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Item ID"
//	@Param			request	body		UpdateItemRequest	true	"Fields to change"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items/{id} [patch]
func (h *PatchItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	p, err := req.toPatch()
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	item, err := h.svc.Item.Update(r.Context(), id, p)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
