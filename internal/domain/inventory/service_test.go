package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicore/clinicore/internal/platform/jsonstore"
	"github.com/clinicore/clinicore/internal/platform/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewFileRepo(jsonstore.New(t.TempDir())))
}

func TestServiceCreateItemRequiresName(t *testing.T) {
	svc := newTestService(t)

	if err := svc.CreateItem(context.Background(), &Item{Name: " "}); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestServiceCreateItemRejectsNegativeQuantity(t *testing.T) {
	svc := newTestService(t)

	if err := svc.CreateItem(context.Background(), &Item{Name: "Gloves", Quantity: -1}); err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestServiceAddUsageRejectsUnknownItem(t *testing.T) {
	svc := newTestService(t)

	err := svc.AddUsage(context.Background(), &UsageRecord{ItemID: "ghost", Quantity: 1})
	if !errors.Is(err, storage.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestServiceAddUsageRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestService(t)

	item := &Item{Name: "Gloves", Quantity: 10}
	if err := svc.CreateItem(context.Background(), item); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddUsage(context.Background(), &UsageRecord{ItemID: item.ID}); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestServiceAddUsageForExistingItem(t *testing.T) {
	svc := newTestService(t)

	item := &Item{Name: "Gloves", Quantity: 10}
	if err := svc.CreateItem(context.Background(), item); err != nil {
		t.Fatal(err)
	}

	rec := &UsageRecord{ItemID: item.ID, Quantity: 2}
	if err := svc.AddUsage(context.Background(), rec); err != nil {
		t.Fatal(err)
	}

	records, err := svc.UsageForItem(context.Background(), item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != rec.ID {
		t.Errorf("expected the recorded usage, got %+v", records)
	}
}
