package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

const doctorCols = `id, username, password, first_name, last_name, email, phone,
	specialization, license_number, experience, status, role, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Username, &d.Password, &d.FirstName, &d.LastName,
		&d.Email, &d.Phone, &d.Specialization, &d.LicenseNumber,
		&d.Experience, &d.Status, &d.Role, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

// likePattern escapes LIKE metacharacters so the query term matches literally.
func likePattern(q string) string {
	q = strings.ReplaceAll(q, `\`, `\\`)
	q = strings.ReplaceAll(q, `%`, `\%`)
	q = strings.ReplaceAll(q, `_`, `\_`)
	return "%" + q + "%"
}

func (r *pgRepo) List(ctx context.Context, filter ListFilter) ([]*Doctor, error) {
	var (
		conds []string
		args  []interface{}
	)

	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, likePattern(q))
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR specialization ILIKE $%d)", n, n, n))
	}
	if spec := strings.TrimSpace(filter.Specialization); spec != "" {
		args = append(args, likePattern(spec))
		conds = append(conds, fmt.Sprintf("specialization ILIKE $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	sql := `SELECT ` + doctorCols + ` FROM doctors`
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY first_name, id"

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	doctors := []*Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("list doctors: %w", err)
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

func (r *pgRepo) Create(ctx context.Context, d *Doctor) error {
	now := time.Now().UTC()
	d.ID = recordid.New()
	if d.Status == "" {
		d.Status = StatusActive
	}
	if d.Role == "" {
		d.Role = "doctor"
	}
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctors (id, username, password, first_name, last_name, email, phone,
			specialization, license_number, experience, status, role, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		d.ID, d.Username, d.Password, d.FirstName, d.LastName, d.Email, d.Phone,
		d.Specialization, d.LicenseNumber, d.Experience, d.Status, d.Role,
		d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}
	return nil
}

func (r *pgRepo) GetByID(ctx context.Context, id string) (*Doctor, error) {
	d, err := scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("doctor %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (r *pgRepo) GetByUsername(ctx context.Context, username string) (*Doctor, error) {
	d, err := scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctors WHERE username = $1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("doctor %s: %w", username, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (r *pgRepo) Update(ctx context.Context, id string, patch Patch) (*Doctor, error) {
	d, err := scanDoctor(r.pool.QueryRow(ctx, `
		UPDATE doctors SET
			password       = COALESCE($2, password),
			first_name     = COALESCE($3, first_name),
			last_name      = COALESCE($4, last_name),
			email          = COALESCE($5, email),
			phone          = COALESCE($6, phone),
			specialization = COALESCE($7, specialization),
			license_number = COALESCE($8, license_number),
			experience     = COALESCE($9, experience),
			status         = COALESCE($10, status),
			role           = COALESCE($11, role),
			updated_at     = NOW()
		WHERE id = $1
		RETURNING `+doctorCols,
		id, patch.Password, patch.FirstName, patch.LastName, patch.Email, patch.Phone,
		patch.Specialization, patch.LicenseNumber, patch.Experience, patch.Status, patch.Role))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("doctor %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	return d, nil
}

func (r *pgRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("doctor %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (r *pgRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check doctor: %w", err)
	}
	return exists, nil
}

func (r *pgRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count doctors: %w", err)
	}
	return n, nil
}
