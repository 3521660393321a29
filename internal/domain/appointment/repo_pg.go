package appointment

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

const apptCols = `id, patient_id, doctor_id, date, time, duration, reason, notes,
	status, priority, assigned_to, created_at, updated_at`

func scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time, &a.Duration,
		&a.Reason, &a.Notes, &a.Status, &a.Priority, &a.AssignedTo,
		&a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *pgRepo) query(ctx context.Context, sql string, args ...interface{}) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	appts := []*Appointment{}
	for rows.Next() {
		a, err := scanAppt(rows)
		if err != nil {
			return nil, fmt.Errorf("list appointments: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func (r *pgRepo) List(ctx context.Context, filter ListFilter) ([]*Appointment, error) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.Date != nil {
		start, end := dayWindow(*filter.Date)
		args = append(args, start, end)
		conds = append(conds, fmt.Sprintf("date >= $%d AND date < $%d", len(args)-1, len(args)))
	}
	if filter.DoctorID != "" {
		args = append(args, filter.DoctorID)
		conds = append(conds, fmt.Sprintf("doctor_id = $%d", len(args)))
	}
	if filter.PatientID != "" {
		args = append(args, filter.PatientID)
		conds = append(conds, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	sql := `SELECT ` + apptCols + ` FROM appointments`
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY date, time, id"

	return r.query(ctx, sql, args...)
}

func (r *pgRepo) Create(ctx context.Context, a *Appointment) error {
	now := time.Now().UTC()
	a.ID = recordid.New()
	applyDefaults(a)
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, patient_id, doctor_id, date, time, duration,
			reason, notes, status, priority, assigned_to, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		a.ID, a.PatientID, a.DoctorID, a.Date, a.Time, a.Duration,
		a.Reason, a.Notes, a.Status, a.Priority, a.AssignedTo,
		a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (r *pgRepo) GetByID(ctx context.Context, id string) (*Appointment, error) {
	a, err := scanAppt(r.pool.QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("appointment %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (r *pgRepo) Update(ctx context.Context, id string, patch Patch) (*Appointment, error) {
	a, err := scanAppt(r.pool.QueryRow(ctx, `
		UPDATE appointments SET
			patient_id = COALESCE($2, patient_id),
			doctor_id  = COALESCE($3, doctor_id),
			date       = COALESCE($4, date),
			time       = COALESCE($5, time),
			duration   = COALESCE($6, duration),
			reason     = COALESCE($7, reason),
			notes      = COALESCE($8, notes),
			status     = COALESCE($9, status),
			priority   = COALESCE($10, priority),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+apptCols,
		id, patch.PatientID, patch.DoctorID, patch.Date, patch.Time, patch.Duration,
		patch.Reason, patch.Notes, patch.Status, patch.Priority))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("appointment %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return a, nil
}

func (r *pgRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (r *pgRepo) ListForDoctor(ctx context.Context, doctorID string, date *time.Time) ([]*Appointment, error) {
	return r.List(ctx, ListFilter{DoctorID: doctorID, Date: date})
}

func (r *pgRepo) StatsForDoctor(ctx context.Context, doctorID string) (*Stats, error) {
	start, end := dayWindow(time.Now())
	var stats Stats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE date >= $2 AND date < $3),
			COUNT(*) FILTER (WHERE status IN ('scheduled', 'confirmed'))
		FROM appointments WHERE doctor_id = $1`,
		doctorID, start, end).Scan(&stats.Total, &stats.Today, &stats.Pending)
	if err != nil {
		return nil, fmt.Errorf("doctor stats: %w", err)
	}
	return &stats, nil
}

func (r *pgRepo) CountToday(ctx context.Context) (int, error) {
	start, end := dayWindow(time.Now())
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE date >= $1 AND date < $2`,
		start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	return n, nil
}

func (r *pgRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return n, nil
}

func (r *pgRepo) DeleteByDoctor(ctx context.Context, doctorID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE doctor_id = $1`, doctorID); err != nil {
		return fmt.Errorf("delete appointments for doctor: %w", err)
	}
	return nil
}

func (r *pgRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE patient_id = $1`, patientID); err != nil {
		return fmt.Errorf("delete appointments for patient: %w", err)
	}
	return nil
}
