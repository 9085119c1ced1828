package handlers

import (
	"time"

	"github.com/ghuser/itemtracker/services/item/domain/models"
	domainsvcs "github.com/ghuser/itemtracker/services/item/domain/services"
)

// ItemResponse is the flattened JSON form of an item.
type ItemResponse struct {
	ID                int64      `json:"id"                          example:"1"`
	ItemNumber        string     `json:"itemNumber"                  example:"ITEM-0001"`
	SpecNumber        string     `json:"specNumber"                  example:"SPEC-101"`
	ItemName          string     `json:"itemName"                    example:"Lobby Chair"`
	Vendor            string     `json:"vendor"                      example:"Acme Furniture"`
	ShipTo            string     `json:"shipTo"                      example:"Grand Hotel"`
	ShipToAddress     string     `json:"shipToAddress,omitempty"`
	ShipFrom          string     `json:"shipFrom,omitempty"`
	Qty               int64      `json:"qty"                         example:"12"`
	Phase             string     `json:"phase"                       example:"01"`
	Price             float64    `json:"price"                       example:"149.99"`
	ShipNotes         string     `json:"shipNotes,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	Location          string     `json:"location,omitempty"`
	Category          string     `json:"category,omitempty"`
	UploadFile        string     `json:"uploadFile,omitempty"`
	PoApprovalDate    *time.Time `json:"poApprovalDate,omitempty"`
	HotelNeedByDate   *time.Time `json:"hotelNeedByDate,omitempty"`
	ExpectedDelivery  *time.Time `json:"expectedDelivery,omitempty"`
	CfaShopsSend      *time.Time `json:"cfaShopsSend,omitempty"`
	CfaShopsApproved  *time.Time `json:"cfaShopsApproved,omitempty"`
	CfaShopsDelivered *time.Time `json:"cfaShopsDelivered,omitempty"`
	OrderedDate       *time.Time `json:"orderedDate,omitempty"`
	ShippedDate       *time.Time `json:"shippedDate,omitempty"`
	DeliveredDate     *time.Time `json:"deliveredDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"                   example:"2024-01-15T10:30:00Z"`
	UpdatedAt         time.Time  `json:"updatedAt"                   example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// ItemListResponse is one page of items.
type ItemListResponse struct {
	Items      []ItemResponse `json:"items"`
	Total      int64          `json:"total"      example:"42"`
	Page       int            `json:"page"       example:"1"`
	Limit      int            `json:"limit"      example:"10"`
	TotalPages int            `json:"totalPages" example:"5"`
} // @name ItemListResponse

// BulkUpdateResponse reports how many items a bulk write matched.
type BulkUpdateResponse struct {
	Updated int64 `json:"updated" example:"3"`
} // @name BulkUpdateResponse

// BulkDeleteResponse reports how many items a bulk delete removed.
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted" example:"3"`
} // @name BulkDeleteResponse

func toItemResponse(item *models.Item) ItemResponse {
	addr := item.ShippingAddress()
	dates := item.TrackingDates()
	return ItemResponse{
		ID:                item.ID(),
		ItemNumber:        item.ItemNumber().String(),
		SpecNumber:        item.SpecNumber(),
		ItemName:          item.ItemName(),
		Vendor:            item.Vendor(),
		ShipTo:            addr.ShipTo(),
		ShipToAddress:     addr.ShipToAddress(),
		ShipFrom:          addr.ShipFrom(),
		Qty:               item.Quantity().Value(),
		Phase:             item.Phase(),
		Price:             item.Price().Float64(),
		ShipNotes:         item.ShipNotes(),
		Notes:             item.Notes(),
		Location:          item.Location(),
		Category:          item.Category(),
		UploadFile:        item.UploadFile(),
		PoApprovalDate:    dates.Ptr(models.PoApprovalDate),
		HotelNeedByDate:   dates.Ptr(models.HotelNeedByDate),
		ExpectedDelivery:  dates.Ptr(models.ExpectedDelivery),
		CfaShopsSend:      dates.Ptr(models.CfaShopsSend),
		CfaShopsApproved:  dates.Ptr(models.CfaShopsApproved),
		CfaShopsDelivered: dates.Ptr(models.CfaShopsDelivered),
		OrderedDate:       dates.Ptr(models.OrderedDate),
		ShippedDate:       dates.Ptr(models.ShippedDate),
		DeliveredDate:     dates.Ptr(models.DeliveredDate),
		CreatedAt:         item.CreatedAt(),
		UpdatedAt:         item.UpdatedAt(),
	}
}

func toItemListResponse(p domainsvcs.Page) ItemListResponse {
	items := make([]ItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, toItemResponse(item))
	}
	return ItemListResponse{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}
