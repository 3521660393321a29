package inventory

import "context"

type Repository interface {
	ListItems(ctx context.Context) ([]*Item, error)
	CreateItem(ctx context.Context, item *Item) error
	GetItemByID(ctx context.Context, id string) (*Item, error)
	UpdateItem(ctx context.Context, id string, patch ItemPatch) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
	CountLowStock(ctx context.Context) (int, error)
	CountItems(ctx context.Context) (int, error)

	AddUsageRecord(ctx context.Context, rec *UsageRecord) error
	UsageHistoryForItem(ctx context.Context, itemID string) ([]*UsageRecord, error)
	AllUsageHistory(ctx context.Context) ([]*UsageRecord, error)
}
