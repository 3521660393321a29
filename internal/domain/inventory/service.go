package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clinicore/clinicore/internal/platform/storage"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListItems(ctx context.Context) ([]*Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *Service) CreateItem(ctx context.Context, item *Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("name is required")
	}
	if item.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	return s.repo.CreateItem(ctx, item)
}

func (s *Service) GetItem(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetItemByID(ctx, id)
}

func (s *Service) UpdateItem(ctx context.Context, id string, patch ItemPatch) (*Item, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("name must not be empty")
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}
	return s.repo.UpdateItem(ctx, id, patch)
}

func (s *Service) DeleteItem(ctx context.Context, id string) error {
	return s.repo.DeleteItem(ctx, id)
}

func (s *Service) CountLowStock(ctx context.Context) (int, error) {
	return s.repo.CountLowStock(ctx)
}

func (s *Service) CountItems(ctx context.Context) (int, error) {
	return s.repo.CountItems(ctx)
}

// AddUsage records stock drawn from an existing item. The item's quantity
// is not adjusted here; callers track stock levels through item updates.
func (s *Service) AddUsage(ctx context.Context, rec *UsageRecord) error {
	if rec.ItemID == "" {
		return fmt.Errorf("item is required")
	}
	if rec.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	if _, err := s.repo.GetItemByID(ctx, rec.ItemID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("item %s: %w", rec.ItemID, storage.ErrInvalidReference)
		}
		return err
	}

	return s.repo.AddUsageRecord(ctx, rec)
}

func (s *Service) UsageForItem(ctx context.Context, itemID string) ([]*UsageRecord, error) {
	return s.repo.UsageHistoryForItem(ctx, itemID)
}

func (s *Service) AllUsage(ctx context.Context) ([]*UsageRecord, error) {
	return s.repo.AllUsageHistory(ctx)
}
