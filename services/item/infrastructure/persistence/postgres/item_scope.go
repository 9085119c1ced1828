package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// itemScope is the unit of work for one item transaction. Every method runs
// on the same *gorm.DB transaction, so the four record groups commit or roll
// back together.
type itemScope struct {
	tx *gorm.DB
}

func newItemScope(tx *gorm.DB) *itemScope {
	return &itemScope{tx: tx}
}

// insert writes the core row, then every dependent group keyed by the id the
// database assigned. Returns the new id.
func (s *itemScope) insert(recs itemRecords) (int64, error) {
	if err := s.tx.Omit(clause.Associations).Create(&recs.core).Error; err != nil {
		return 0, fmt.Errorf("insert %s: %w", groupCore, err)
	}
	recs.withItemID(recs.core.ID)

	if err := s.tx.Create(&recs.shipping).Error; err != nil {
		return 0, fmt.Errorf("insert %s: %w", groupShipping, err)
	}
	if err := s.tx.Create(&recs.tracking).Error; err != nil {
		return 0, fmt.Errorf("insert %s: %w", groupTracking, err)
	}
	if err := s.tx.Create(&recs.metadata).Error; err != nil {
		return 0, fmt.Errorf("insert %s: %w", groupMetadata, err)
	}
	return recs.core.ID, nil
}

// updateCore overwrites every mutable core column of the item and returns the
// number of rows matched. item_number is written once, on insert.
func (s *itemScope) updateCore(core ItemRecord) (int64, error) {
	res := s.tx.Model(&ItemRecord{}).
		Where("id = ?", core.ID).
		Updates(map[string]any{
			"spec_number": core.SpecNumber,
			"item_name":   core.ItemName,
			"vendor":      core.Vendor,
			"qty":         core.Qty,
			"price":       core.Price,
			"phase":       core.Phase,
			"updated_at":  core.UpdatedAt,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update %s: %w", groupCore, res.Error)
	}
	return res.RowsAffected, nil
}

// upsertDependents inserts or replaces the three dependent groups.
func (s *itemScope) upsertDependents(recs itemRecords) error {
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		UpdateAll: true,
	}
	if err := s.tx.Clauses(upsert).Create(&recs.shipping).Error; err != nil {
		return fmt.Errorf("upsert %s: %w", groupShipping, err)
	}
	if err := s.tx.Clauses(upsert).Create(&recs.tracking).Error; err != nil {
		return fmt.Errorf("upsert %s: %w", groupTracking, err)
	}
	if err := s.tx.Clauses(upsert).Create(&recs.metadata).Error; err != nil {
		return fmt.Errorf("upsert %s: %w", groupMetadata, err)
	}
	return nil
}

// load reads one item joined with its dependent groups. Returns (nil, nil)
// when no core row matches.
func (s *itemScope) load(query string, args ...any) (*ItemRecord, error) {
	var rec ItemRecord
	err := withDependents(s.tx).Where(query, args...).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}
	return &rec, nil
}

// updateGroups applies each non-empty partition to the rows of ids and
// returns the number of core rows affected.
func (s *itemScope) updateGroups(ids []int64, parts map[recordGroup]map[string]any) (int64, error) {
	var coreRows int64
	for _, g := range updateOrder {
		cols := parts[g]
		if len(cols) == 0 {
			continue
		}
		res := s.tx.Model(g.model()).Where(g.keyColumn()+" IN ?", ids).Updates(cols)
		if res.Error != nil {
			return 0, fmt.Errorf("bulk update %s: %w", g, res.Error)
		}
		if g == groupCore {
			coreRows = res.RowsAffected
		}
	}
	return coreRows, nil
}

// deleteGroups removes every group of ids in deletionOrder and returns the
// number of core rows deleted.
func (s *itemScope) deleteGroups(ids []int64) (int64, error) {
	var coreRows int64
	for _, g := range deletionOrder {
		res := s.tx.Where(g.keyColumn()+" IN ?", ids).Delete(g.model())
		if res.Error != nil {
			return 0, fmt.Errorf("delete %s: %w", g, res.Error)
		}
		if g == groupCore {
			coreRows = res.RowsAffected
		}
	}
	return coreRows, nil
}

// purge empties every group in deletionOrder.
func (s *itemScope) purge() (int64, error) {
	all := s.tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	var coreRows int64
	for _, g := range deletionOrder {
		res := all.Delete(g.model())
		if res.Error != nil {
			return 0, fmt.Errorf("purge %s: %w", g, res.Error)
		}
		if g == groupCore {
			coreRows = res.RowsAffected
		}
	}
	return coreRows, nil
}

// withDependents left-joins the three dependent groups onto items.
func withDependents(db *gorm.DB) *gorm.DB {
	return db.Joins("Shipping").Joins("Tracking").Joins("Metadata")
}

func utcNow() time.Time {
	return time.Now().UTC()
}
