package appointment

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Appointment, error)
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	Update(ctx context.Context, id string, patch Patch) (*Appointment, error)
	Delete(ctx context.Context, id string) error

	ListForDoctor(ctx context.Context, doctorID string, date *time.Time) ([]*Appointment, error)
	StatsForDoctor(ctx context.Context, doctorID string) (*Stats, error)
	CountToday(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)

	// Cascade helpers. Removing zero appointments is a success.
	DeleteByDoctor(ctx context.Context, doctorID string) error
	DeleteByPatient(ctx context.Context, patientID string) error
}
