package services

import (
	"context"
	"sort"
	"sync"
	"time"

	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
	"github.com/ghuser/itemtracker/services/item/domain/models"
	"github.com/ghuser/itemtracker/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/itemtracker/services/item/domain/services"
)

// fakeRepo is an in-memory ItemRepository. Bulk updates are recorded rather
// than applied.
type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]models.ItemProps

	bulkIDs    []int64
	bulkFields repositories.FieldUpdates
	err        error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]models.ItemProps{}}
}

func (r *fakeRepo) Save(_ context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	p := item.Props()
	p.ID = r.nextID
	r.items[p.ID] = p
	return models.RestoreItem(p), nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return models.RestoreItem(p), nil
}

func (r *fakeRepo) FindByItemNumber(_ context.Context, number models.ItemNumber) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.ItemNumber == number.String() {
			return models.RestoreItem(p), nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindAll(_ context.Context, q repositories.ListQuery) (repositories.ListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	filter := domainsvcs.FilterFor(q)

	var matched []*models.Item
	for _, p := range r.items {
		item := models.RestoreItem(p)
		if filter.Matches(item) {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ItemNumber().String() < matched[j].ItemNumber().String()
	})

	total := int64(len(matched))
	start := min(q.Offset(), len(matched))
	end := min(start+q.Limit, len(matched))
	return repositories.ListResult{Items: matched[start:end], Total: total}, nil
}

func (r *fakeRepo) Update(_ context.Context, item *models.Item) (*models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !item.HasID() {
		return nil, itemdomain.ErrMissingID
	}
	if _, ok := r.items[item.ID()]; !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	p := item.Props()
	r.items[p.ID] = p
	return models.RestoreItem(p), nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return itemdomain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) BulkUpdate(_ context.Context, ids []int64, fields repositories.FieldUpdates) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bulkIDs, r.bulkFields = ids, fields
	var n int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) BulkDelete(_ context.Context, ids []int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

// put stores props as-is, skipping validation, to model legacy rows.
func (r *fakeRepo) put(p models.ItemProps) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.items[p.ID] = p
	return p.ID
}
