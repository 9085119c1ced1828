// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"strings"

	"github.com/ghuser/itemtracker/services/item/domain/models"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
)

// NormalizeListQuery clamps page to >= 1 and limit to [1, maxLimit], using
// defaultLimit when no limit was given. Search, phase and vendor are trimmed.
func NormalizeListQuery(q repositories.ListQuery, defaultLimit, maxLimit int) repositories.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Phase = strings.TrimSpace(q.Phase)
	q.Vendor = strings.TrimSpace(q.Vendor)
	return q
}

// IsActiveFilter reports whether a phase or vendor filter value restricts results.
func IsActiveFilter(v string) bool {
	return v != "" && v != repositories.FilterAll
}

// ItemFilter is the in-memory form of the FindAll predicate.
type ItemFilter struct {
	Search string
	Phase  string
	Vendor string
}

// FilterFor extracts the filter part of a list query.
func FilterFor(q repositories.ListQuery) ItemFilter {
	return ItemFilter{Search: q.Search, Phase: q.Phase, Vendor: q.Vendor}
}

// Matches applies the same rules as the storage query: search is a
// case-insensitive substring over name, number and spec; phase and vendor are
// exact unless empty or "all".
func (f ItemFilter) Matches(item *models.Item) bool {
	if f.Search != "" && !item.MatchesSearch(f.Search) {
		return false
	}
	if IsActiveFilter(f.Phase) && !item.IsInPhase(f.Phase) {
		return false
	}
	if IsActiveFilter(f.Vendor) && !item.IsFromVendor(f.Vendor) {
		return false
	}
	return true
}

// Page is a list result decorated with paging metadata.
type Page struct {
	Items      []*models.Item
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// NewPage builds the page envelope for q.
func NewPage(q repositories.ListQuery, res repositories.ListResult) Page {
	return Page{
		Items:      res.Items,
		Total:      res.Total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: TotalPages(res.Total, q.Limit),
	}
}

// TotalPages is ceil(total / limit), or 0 when limit is not positive.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
