package patient

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

const patientCols = `id, name, age, gender, phone, location, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Location,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

// likePattern escapes LIKE metacharacters so the query term matches literally.
func likePattern(q string) string {
	q = strings.ReplaceAll(q, `\`, `\\`)
	q = strings.ReplaceAll(q, `%`, `\%`)
	q = strings.ReplaceAll(q, `_`, `\_`)
	return "%" + q + "%"
}

func (r *pgRepo) List(ctx context.Context, filter ListFilter) ([]*Patient, error) {
	var (
		conds []string
		args  []interface{}
		join  string
	)

	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, likePattern(q))
		conds = append(conds, fmt.Sprintf("p.name ILIKE $%d", len(args)))
	}
	if filter.HasAppointment {
		conds = append(conds, "EXISTS (SELECT 1 FROM appointments a WHERE a.patient_id = p.id)")
	}

	desc := filter.Order == OrderDesc
	var order string
	switch filter.Sort {
	case SortByAppointment:
		join = ` LEFT JOIN (SELECT patient_id, MIN(date) AS first_date
			FROM appointments GROUP BY patient_id) n ON n.patient_id = p.id`
		if desc {
			order = "n.first_date DESC NULLS FIRST"
		} else {
			order = "n.first_date ASC NULLS LAST"
		}
	case SortByCreatedAt:
		order = "p.created_at"
		if desc {
			order += " DESC"
		}
	default:
		order = "p.name"
		if desc {
			order += " DESC"
		}
	}

	sql := `SELECT p.id, p.name, p.age, p.gender, p.phone, p.location, p.created_at, p.updated_at
		FROM patients p` + join
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += fmt.Sprintf(" ORDER BY %s, p.id LIMIT %d", order, ListLimit)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	patients := []*Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("list patients: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (r *pgRepo) Create(ctx context.Context, p *Patient) error {
	now := time.Now().UTC()
	p.ID = recordid.New()
	if p.Gender == "" {
		p.Gender = "other"
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, name, age, gender, phone, location, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Name, p.Age, p.Gender, p.Phone, p.Location, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

func (r *pgRepo) GetByID(ctx context.Context, id string) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("patient %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (r *pgRepo) Update(ctx context.Context, id string, patch Patch) (*Patient, error) {
	p, err := scanPatient(r.pool.QueryRow(ctx, `
		UPDATE patients SET
			name     = COALESCE($2, name),
			age      = COALESCE($3, age),
			gender   = COALESCE($4, gender),
			phone    = COALESCE($5, phone),
			location = COALESCE($6, location),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+patientCols,
		id, patch.Name, patch.Age, patch.Gender, patch.Phone, patch.Location))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("patient %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return p, nil
}

func (r *pgRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("patient %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (r *pgRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check patient: %w", err)
	}
	return exists, nil
}

func (r *pgRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	return n, nil
}
