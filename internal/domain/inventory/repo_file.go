package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/clinicore/clinicore/internal/platform/jsonstore"
	"github.com/clinicore/clinicore/internal/platform/recordid"
	"github.com/clinicore/clinicore/internal/platform/storage"
)

type fileRepo struct {
	store *jsonstore.Store
}

// NewFileRepo returns a Repository backed by the JSON file store.
func NewFileRepo(store *jsonstore.Store) Repository {
	return &fileRepo{store: store}
}

func (r *fileRepo) ListItems(ctx context.Context) ([]*Item, error) {
	items, err := jsonstore.Read[Item](r.store, Collection)
	if err != nil {
		return nil, err
	}
	out := make([]*Item, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

func (r *fileRepo) CreateItem(ctx context.Context, item *Item) error {
	now := time.Now().UTC()
	item.ID = recordid.New()
	item.CreatedAt = now
	item.UpdatedAt = now

	return jsonstore.Update(r.store, Collection, func(items []Item) ([]Item, error) {
		return append(items, *item), nil
	})
}

func (r *fileRepo) GetItemByID(ctx context.Context, id string) (*Item, error) {
	items, err := jsonstore.Read[Item](r.store, Collection)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("inventory item %s: %w", id, storage.ErrNotFound)
}

func (r *fileRepo) UpdateItem(ctx context.Context, id string, patch ItemPatch) (*Item, error) {
	var updated *Item
	err := jsonstore.Update(r.store, Collection, func(items []Item) ([]Item, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			applyPatch(&items[i], patch)
			items[i].UpdatedAt = time.Now().UTC()
			it := items[i]
			updated = &it
			return items, nil
		}
		return nil, fmt.Errorf("inventory item %s: %w", id, storage.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyPatch(item *Item, patch ItemPatch) {
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.Price != nil {
		item.Price = patch.Price
	}
	if patch.Supplier != nil {
		item.Supplier = patch.Supplier
	}
	if patch.ExpiryDate != nil {
		item.ExpiryDate = patch.ExpiryDate
	}
}

// DeleteItem removes the item only. Usage records referencing it are
// kept as history.
func (r *fileRepo) DeleteItem(ctx context.Context, id string) error {
	return jsonstore.Update(r.store, Collection, func(items []Item) ([]Item, error) {
		kept := items[:0]
		for _, it := range items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(items) {
			return nil, fmt.Errorf("inventory item %s: %w", id, storage.ErrNotFound)
		}
		return kept, nil
	})
}

func (r *fileRepo) CountLowStock(ctx context.Context) (int, error) {
	items, err := jsonstore.Read[Item](r.store, Collection)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		if it.Quantity <= LowStockThreshold {
			n++
		}
	}
	return n, nil
}

func (r *fileRepo) CountItems(ctx context.Context) (int, error) {
	items, err := jsonstore.Read[Item](r.store, Collection)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (r *fileRepo) AddUsageRecord(ctx context.Context, rec *UsageRecord) error {
	now := time.Now().UTC()
	rec.ID = recordid.New()
	if rec.Date.IsZero() {
		rec.Date = now
	}
	rec.CreatedAt = now

	return jsonstore.Update(r.store, UsageCollection, func(records []UsageRecord) ([]UsageRecord, error) {
		return append(records, *rec), nil
	})
}

func (r *fileRepo) UsageHistoryForItem(ctx context.Context, itemID string) ([]*UsageRecord, error) {
	records, err := jsonstore.Read[UsageRecord](r.store, UsageCollection)
	if err != nil {
		return nil, err
	}
	matched := records[:0]
	for _, rec := range records {
		if rec.ItemID == itemID {
			matched = append(matched, rec)
		}
	}
	return sortByDateDesc(matched), nil
}

func (r *fileRepo) AllUsageHistory(ctx context.Context) ([]*UsageRecord, error) {
	records, err := jsonstore.Read[UsageRecord](r.store, UsageCollection)
	if err != nil {
		return nil, err
	}
	return sortByDateDesc(records), nil
}

func sortByDateDesc(records []UsageRecord) []*UsageRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	out := make([]*UsageRecord, len(records))
	for i := range records {
		out[i] = &records[i]
	}
	return out
}
