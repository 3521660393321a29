package inventory

import "time"

// Collection names in the file backend.
const (
	Collection      = "inventory"
	UsageCollection = "usage"
)

// LowStockThreshold is the quantity at or below which an item counts as
// low on stock.
const LowStockThreshold = 5

// Item is a stocked supply.
type Item struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Quantity   int        `json:"quantity"`
	Unit       string     `json:"unit"`
	Price      *float64   `json:"price,omitempty"`
	Supplier   *string    `json:"supplier,omitempty"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// ItemPatch carries a partial update; nil fields are left unchanged.
type ItemPatch struct {
	Name       *string    `json:"name,omitempty"`
	Category   *string    `json:"category,omitempty"`
	Quantity   *int       `json:"quantity,omitempty"`
	Unit       *string    `json:"unit,omitempty"`
	Price      *float64   `json:"price,omitempty"`
	Supplier   *string    `json:"supplier,omitempty"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

// UsageRecord logs stock drawn from an item. Orphaned records are kept
// when their item is deleted.
type UsageRecord struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"itemId"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
	UsedBy    *string   `json:"usedBy,omitempty"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}
