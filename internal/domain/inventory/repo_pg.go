package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinicore/internal/platform/recordid"
	"github.com/clinicore/clinicore/internal/platform/storage"
)

type pgRepo struct{ pool *pgxpool.Pool }

// NewPGRepo returns a Repository backed by PostgreSQL.
func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

const itemCols = `id, name, category, quantity, unit, price, supplier, expiry_date, created_at, updated_at`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Name, &it.Category, &it.Quantity, &it.Unit,
		&it.Price, &it.Supplier, &it.ExpiryDate, &it.CreatedAt, &it.UpdatedAt)
	return &it, err
}

const usageCols = `id, item_id, quantity, date, used_by, notes, created_at`

func scanUsage(row pgx.Row) (*UsageRecord, error) {
	var rec UsageRecord
	err := row.Scan(&rec.ID, &rec.ItemID, &rec.Quantity, &rec.Date,
		&rec.UsedBy, &rec.Notes, &rec.CreatedAt)
	return &rec, err
}

func (r *pgRepo) ListItems(ctx context.Context) ([]*Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemCols+` FROM inventory ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list inventory: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *pgRepo) CreateItem(ctx context.Context, item *Item) error {
	now := time.Now().UTC()
	item.ID = recordid.New()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO inventory (id, name, category, quantity, unit, price, supplier,
			expiry_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		item.ID, item.Name, item.Category, item.Quantity, item.Unit,
		item.Price, item.Supplier, item.ExpiryDate, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

func (r *pgRepo) GetItemByID(ctx context.Context, id string) (*Item, error) {
	it, err := scanItem(r.pool.QueryRow(ctx,
		`SELECT `+itemCols+` FROM inventory WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("inventory item %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

func (r *pgRepo) UpdateItem(ctx context.Context, id string, patch ItemPatch) (*Item, error) {
	it, err := scanItem(r.pool.QueryRow(ctx, `
		UPDATE inventory SET
			name        = COALESCE($2, name),
			category    = COALESCE($3, category),
			quantity    = COALESCE($4, quantity),
			unit        = COALESCE($5, unit),
			price       = COALESCE($6, price),
			supplier    = COALESCE($7, supplier),
			expiry_date = COALESCE($8, expiry_date),
			updated_at  = NOW()
		WHERE id = $1
		RETURNING `+itemCols,
		id, patch.Name, patch.Category, patch.Quantity, patch.Unit,
		patch.Price, patch.Supplier, patch.ExpiryDate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("inventory item %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update inventory item: %w", err)
	}
	return it, nil
}

func (r *pgRepo) DeleteItem(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory item %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (r *pgRepo) CountLowStock(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory WHERE quantity <= $1`, LowStockThreshold).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

func (r *pgRepo) CountItems(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inventory: %w", err)
	}
	return n, nil
}

func (r *pgRepo) AddUsageRecord(ctx context.Context, rec *UsageRecord) error {
	now := time.Now().UTC()
	rec.ID = recordid.New()
	if rec.Date.IsZero() {
		rec.Date = now
	}
	rec.CreatedAt = now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO usage_records (id, item_id, quantity, date, used_by, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.ItemID, rec.Quantity, rec.Date, rec.UsedBy, rec.Notes, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("add usage record: %w", err)
	}
	return nil
}

func (r *pgRepo) UsageHistoryForItem(ctx context.Context, itemID string) ([]*UsageRecord, error) {
	return r.queryUsage(ctx,
		`SELECT `+usageCols+` FROM usage_records WHERE item_id = $1 ORDER BY date DESC, id`, itemID)
}

func (r *pgRepo) AllUsageHistory(ctx context.Context) ([]*UsageRecord, error) {
	return r.queryUsage(ctx,
		`SELECT `+usageCols+` FROM usage_records ORDER BY date DESC, id`)
}

func (r *pgRepo) queryUsage(ctx context.Context, sql string, args ...interface{}) ([]*UsageRecord, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("usage history: %w", err)
	}
	defer rows.Close()

	records := []*UsageRecord{}
	for rows.Next() {
		rec, err := scanUsage(rows)
		if err != nil {
			return nil, fmt.Errorf("usage history: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
