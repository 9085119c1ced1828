package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/shopspring/decimal"

	"github.com/ghuser/itemtracker/pkg/logger"
	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/domain/models"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/itemtracker/services/item/domain/services"
)

// ItemService implements the item use cases on top of an ItemRepository.
type ItemService struct {
	repo         repositories.ItemRepository
	log          logger.Logger
	defaultLimit int
	maxLimit     int
}

// NewItemService returns an ItemService. defaultLimit and maxLimit bound the
// page size of List.
func NewItemService(repo repositories.ItemRepository, log logger.Logger, defaultLimit, maxLimit int) *ItemService {
	return &ItemService{repo: repo, log: log, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// CreateItemInput carries the fields of a new item.
type CreateItemInput struct {
	ItemNumber    string
	SpecNumber    string
	ItemName      string
	Vendor        string
	Phase         string
	ShipTo        string
	ShipToAddress string
	ShipFrom      string
	Qty           float64
	Price         decimal.Decimal
	Dates         map[models.TrackingDateField]time.Time
	ShipNotes     string
	Notes         string
	Location      string
	Category      string
	UploadFile    string
}

func (in CreateItemInput) props() models.ItemProps {
	return models.ItemProps{
		ItemNumber:    in.ItemNumber,
		SpecNumber:    in.SpecNumber,
		ItemName:      in.ItemName,
		Vendor:        in.Vendor,
		Phase:         in.Phase,
		ShipTo:        in.ShipTo,
		ShipToAddress: in.ShipToAddress,
		ShipFrom:      in.ShipFrom,
		Qty:           in.Qty,
		Price:         in.Price,
		Dates:         in.Dates,
		ShipNotes:     in.ShipNotes,
		Notes:         in.Notes,
		Location:      in.Location,
		Category:      in.Category,
		UploadFile:    in.UploadFile,
	}
}

// Create validates and persists a new item. The item number must be unused.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	item, err := models.NewItem(in.props())
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByItemNumber(ctx, item.ItemNumber())
	if err != nil {
		return nil, fmt.Errorf("check item number: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", itemdomain.ErrItemAlreadyExists, item.ItemNumber())
	}

	saved, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item created", "item_id", saved.ID(), "item_number", saved.ItemNumber().String())
	return saved, nil
}

// Get returns the item or ErrItemNotFound.
func (s *ItemService) Get(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", id, itemdomain.ErrItemNotFound)
	}
	return item, nil
}

// List returns one page of items matching q.
func (s *ItemService) List(ctx context.Context, q repositories.ListQuery) (domainsvcs.Page, error) {
	q = domainsvcs.NormalizeListQuery(q, s.defaultLimit, s.maxLimit)
	res, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return domainsvcs.Page{}, fmt.Errorf("list items: %w", err)
	}
	return domainsvcs.NewPage(q, res), nil
}

// ItemPatch is a partial update. Unspecified fields keep their value; null or
// "" clears optional fields and fails validation on required ones. The item
// number is not part of a patch: it never changes after creation.
type ItemPatch struct {
	SpecNumber    nullable.Nullable[string]
	ItemName      nullable.Nullable[string]
	Vendor        nullable.Nullable[string]
	Phase         nullable.Nullable[string]
	ShipTo        nullable.Nullable[string]
	ShipToAddress nullable.Nullable[string]
	ShipFrom      nullable.Nullable[string]
	Qty           nullable.Nullable[float64]
	Price         nullable.Nullable[decimal.Decimal]
	ShipNotes     nullable.Nullable[string]
	Notes         nullable.Nullable[string]
	Location      nullable.Nullable[string]
	Category      nullable.Nullable[string]
	UploadFile    nullable.Nullable[string]
	Dates         map[models.TrackingDateField]nullable.Nullable[time.Time]
}

// valueOr returns the value of n when it is specified and not null.
func valueOr[T any](n nullable.Nullable[T], fallback T) T {
	if v, err := n.Get(); err == nil {
		return v
	}
	return fallback
}

func (p ItemPatch) apply(props models.ItemProps) (models.ItemProps, error) {
	for _, f := range []struct {
		field nullable.Nullable[string]
		dst   *string
	}{
		{p.SpecNumber, &props.SpecNumber},
		{p.ItemName, &props.ItemName},
		{p.Vendor, &props.Vendor},
		{p.Phase, &props.Phase},
		{p.ShipTo, &props.ShipTo},
		{p.ShipToAddress, &props.ShipToAddress},
		{p.ShipFrom, &props.ShipFrom},
		{p.ShipNotes, &props.ShipNotes},
		{p.Notes, &props.Notes},
		{p.Location, &props.Location},
		{p.Category, &props.Category},
		{p.UploadFile, &props.UploadFile},
	} {
		if f.field.IsSpecified() {
			*f.dst = valueOr(f.field, "")
		}
	}

	if p.Qty.IsNull() {
		return props, itemdomain.NewValidationError("qty", itemdomain.RuleEmpty, "cannot be null")
	}
	props.Qty = valueOr(p.Qty, props.Qty)

	if p.Price.IsNull() {
		return props, itemdomain.NewValidationError("price", itemdomain.RuleEmpty, "cannot be null")
	}
	props.Price = valueOr(p.Price, props.Price)

	if len(p.Dates) > 0 {
		dates := make(map[models.TrackingDateField]time.Time, len(props.Dates)+len(p.Dates))
		for f, d := range props.Dates {
			dates[f] = d
		}
		for f, d := range p.Dates {
			if v, err := d.Get(); err == nil {
				dates[f] = v
			} else if d.IsNull() {
				delete(dates, f)
			}
		}
		props.Dates = dates
	}
	return props, nil
}

func (p ItemPatch) touchesDates() bool {
	for _, d := range p.Dates {
		if d.IsSpecified() {
			return true
		}
	}
	return false
}

// Update applies p to the stored item. A patch that sets any tracking date is
// validated in full; other patches leave stored dates unchecked.
func (s *ItemService) Update(ctx context.Context, id int64, p ItemPatch) (*models.Item, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	props, err := p.apply(existing.Props())
	if err != nil {
		return nil, err
	}

	var next *models.Item
	if p.touchesDates() {
		props.UpdatedAt = time.Now().UTC()
		next, err = models.NewItem(props)
	} else {
		next, err = existing.Revise(props)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "item updated", "item_id", id)
	return updated, nil
}

// Delete removes the item or returns ErrItemNotFound.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "item deleted", "item_id", id)
	return nil
}

// BulkEditInput lists the fields a bulk edit may overwrite. Nil leaves the
// field alone; "" clears it.
type BulkEditInput struct {
	Location *string
	Category *string
	ShipFrom *string
	Notes    *string
}

// BulkEdit writes the given fields to every item in ids and returns the
// number of items matched.
func (s *ItemService) BulkEdit(ctx context.Context, ids []int64, in BulkEditInput) (int64, error) {
	fields := repositories.FieldUpdates{}
	setText(fields, repositories.BulkLocation, in.Location)
	setText(fields, repositories.BulkCategory, in.Category)
	setText(fields, repositories.BulkShipFrom, in.ShipFrom)
	setText(fields, repositories.BulkNotes, in.Notes)

	n, err := s.repo.BulkUpdate(ctx, ids, fields)
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "items bulk edited", "requested", len(ids), "updated", n)
	return n, nil
}

// TrackingInput carries tracking dates and shipping notes for many items.
// Only dates present in Dates are written.
type TrackingInput struct {
	Dates         map[models.TrackingDateField]time.Time
	ShippingNotes *string
}

// UpdateTracking writes the given dates and notes to every item in ids. The
// supplied dates must be in shipping order among themselves; stored dates are
// not consulted.
func (s *ItemService) UpdateTracking(ctx context.Context, ids []int64, in TrackingInput) (int64, error) {
	if err := models.ValidateTrackingDates(in.Dates); err != nil {
		return 0, err
	}

	fields := repositories.FieldUpdates{}
	for f, d := range in.Dates {
		if !d.IsZero() {
			fields[repositories.BulkTrackingField(f)] = d.UTC()
		}
	}
	setText(fields, repositories.BulkShipNotes, in.ShippingNotes)

	n, err := s.repo.BulkUpdate(ctx, ids, fields)
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "item tracking updated", "requested", len(ids), "updated", n)
	return n, nil
}

// BulkDelete removes every item in ids and returns how many existed.
func (s *ItemService) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	n, err := s.repo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "items bulk deleted", "requested", len(ids), "deleted", n)
	return n, nil
}

// setText adds a trimmed text value to fields. Blank text is written as NULL.
func setText(fields repositories.FieldUpdates, f repositories.BulkField, v *string) {
	if v == nil {
		return
	}
	if t := strings.TrimSpace(*v); t != "" {
		fields[f] = t
		return
	}
	fields[f] = nil
}
