package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"

	"github.com/ghuser/itemtracker/pkg/database"
	"github.com/ghuser/itemtracker/pkg/logger"
	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/domain/models"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/itemtracker/services/item/domain/services"
)

const meterName = "github.com/ghuser/itemtracker/services/item"

// ItemRepository implements repositories.ItemRepository over four PostgreSQL
// tables: items, item_shipping, item_tracking and item_metadata.
type ItemRepository struct {
	db      *database.Database
	log     logger.Logger
	skipped metric.Int64Counter
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an ItemRepository backed by the given database.
func NewItemRepository(db *database.Database, log logger.Logger) *ItemRepository {
	skipped, err := otel.Meter(meterName).Int64Counter("items.legacy_rows_skipped",
		metric.WithDescription("Item rows left out of list results because they fail validation"),
	)
	if err != nil {
		log.Warn("failed to create legacy row counter", "error", err)
	}
	return &ItemRepository{db: db, log: log.With("repository", "item"), skipped: skipped}
}

// Save persists a new Item across all four tables in one transaction.
// Returns ErrItemAlreadyExists on unique constraint violations.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) (*models.Item, error) {
	var saved *ItemRecord
	err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		scope := newItemScope(tx)
		id, err := scope.insert(toRecords(item))
		if err != nil {
			return err
		}
		saved, err = scope.load("items.id = ?", id)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", itemdomain.ErrItemAlreadyExists, item.ItemNumber())
		}
		return nil, fmt.Errorf("save item: %w", err)
	}
	return models.RestoreItem(toProps(saved)), nil
}

// FindByID returns (nil, nil) when no item has the given id.
func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	rec, err := newItemScope(r.db.DB().WithContext(ctx)).load("items.id = ?", id)
	if err != nil || rec == nil {
		return nil, err
	}
	return models.RestoreItem(toProps(rec)), nil
}

// FindByItemNumber returns (nil, nil) when no item has the given number.
func (r *ItemRepository) FindByItemNumber(ctx context.Context, number models.ItemNumber) (*models.Item, error) {
	rec, err := newItemScope(r.db.DB().WithContext(ctx)).load("items.item_number = ?", number.String())
	if err != nil || rec == nil {
		return nil, err
	}
	return models.RestoreItem(toProps(rec)), nil
}

// FindAll returns one page of items ordered by item number. Total is counted
// before rows are mapped, so it includes rows that are skipped as invalid.
func (r *ItemRepository) FindAll(ctx context.Context, q repositories.ListQuery) (repositories.ListResult, error) {
	db := r.db.DB().WithContext(ctx)
	filter := filterScope(db.Dialector.Name(), q)

	var total int64
	if err := db.Model(&ItemRecord{}).Scopes(filter).Count(&total).Error; err != nil {
		return repositories.ListResult{}, fmt.Errorf("count items: %w", err)
	}

	var recs []ItemRecord
	if err := withDependents(db).
		Scopes(filter).
		Order("items.item_number ASC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&recs).Error; err != nil {
		return repositories.ListResult{}, fmt.Errorf("query items: %w", err)
	}

	items := make([]*models.Item, 0, len(recs))
	for i := range recs {
		item, err := models.NewItem(toProps(&recs[i]))
		if err != nil {
			r.log.WarnContext(ctx, "skipping invalid item row",
				"item_id", recs[i].ID,
				"item_number", recs[i].ItemNumber,
				"error", err,
			)
			if r.skipped != nil {
				r.skipped.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", validationRule(err))))
			}
			continue
		}
		items = append(items, item)
	}

	return repositories.ListResult{Items: items, Total: total}, nil
}

// Update rewrites the core row and upserts the dependent groups of an
// existing item in one transaction, then returns it reloaded.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	if !item.HasID() {
		return nil, fmt.Errorf("update item: %w", itemdomain.ErrMissingID)
	}

	var updated *ItemRecord
	err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		scope := newItemScope(tx)
		recs := toRecords(item)

		rows, err := scope.updateCore(recs.core)
		if err != nil {
			return err
		}
		if rows == 0 {
			return itemdomain.ErrItemNotFound
		}
		if err := scope.upsertDependents(recs); err != nil {
			return err
		}
		updated, err = scope.load("items.id = ?", item.ID())
		return err
	})
	switch {
	case err == nil:
		return models.RestoreItem(toProps(updated)), nil
	case errors.Is(err, itemdomain.ErrItemNotFound):
		return nil, fmt.Errorf("update item %d: %w", item.ID(), err)
	default:
		return nil, fmt.Errorf("update item: %w", err)
	}
}

// Delete removes the item and its dependent groups, dependents first.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := newItemScope(tx).deleteGroups([]int64{id})
		if err != nil {
			return err
		}
		if rows == 0 {
			return itemdomain.ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	return nil
}

// BulkUpdate routes each field to its record group and updates every group
// that received a field. The core group's updated_at is always stamped, so
// the returned count is the number of items matched.
func (r *ItemRepository) BulkUpdate(ctx context.Context, ids []int64, fields repositories.FieldUpdates) (int64, error) {
	if len(ids) == 0 || len(fields) == 0 {
		return 0, nil
	}
	parts, err := partition(fields)
	if err != nil {
		return 0, err
	}
	stampCore(parts, utcNow())

	var updated int64
	err = r.db.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		updated, err = newItemScope(tx).updateGroups(ids, parts)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %w", itemdomain.ErrItemAlreadyExists, err)
		}
		return 0, fmt.Errorf("bulk update items: %w", err)
	}
	return updated, nil
}

// BulkDelete removes every item in ids, dependents first, in one transaction.
func (r *ItemRepository) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		deleted, err = newItemScope(tx).deleteGroups(ids)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("bulk delete items: %w", err)
	}
	return deleted, nil
}

// Purge deletes every item and its dependent rows. It is not part of
// repositories.ItemRepository; only maintenance tooling calls it.
func (r *ItemRepository) Purge(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		deleted, err = newItemScope(tx).purge()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("purge items: %w", err)
	}
	r.log.WarnContext(ctx, "item tables purged", "items", deleted)
	return deleted, nil
}

// filterScope renders the list predicate: search is a case-insensitive
// substring match OR-ed over name, number and spec; phase and vendor are exact.
func filterScope(dialect string, q repositories.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Search != "" {
			like := "LIKE"
			if dialect == "postgres" {
				like = "ILIKE"
			}
			pattern := "%" + escapeLike(q.Search) + "%"
			db = db.Where(fmt.Sprintf(
				`(items.item_name %[1]s ? ESCAPE '\' OR items.item_number %[1]s ? ESCAPE '\' OR items.spec_number %[1]s ? ESCAPE '\')`,
				like,
			), pattern, pattern, pattern)
		}
		if domainsvcs.IsActiveFilter(q.Phase) {
			db = db.Where("items.phase = ?", q.Phase)
		}
		if domainsvcs.IsActiveFilter(q.Vendor) {
			db = db.Where("items.vendor = ?", q.Vendor)
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func validationRule(err error) string {
	var ve *itemdomain.ValidationError
	if errors.As(err, &ve) {
		return ve.Rule
	}
	return "unknown"
}
