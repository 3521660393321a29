package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinicore/internal/platform/storage"
)

// RefResolver answers whether a referenced record exists. Implemented by
// the patient and doctor repositories.
type RefResolver interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo     Repository
	patients RefResolver
	doctors  RefResolver
}

func NewService(repo Repository, patients, doctors RefResolver) *Service {
	return &Service{repo: repo, patients: patients, doctors: doctors}
}

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusConfirmed: true, StatusCompleted: true,
	StatusCancelled: true, StatusNoShow: true,
}

var validPriorities = map[string]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Appointment, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.PatientID == "" {
		return fmt.Errorf("patient is required")
	}
	if a.DoctorID == "" {
		return fmt.Errorf("doctor is required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if a.Status != "" && !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	if a.Priority != "" && !validPriorities[a.Priority] {
		return fmt.Errorf("invalid priority: %s", a.Priority)
	}

	if err := s.checkRef(ctx, s.patients, "patient", a.PatientID); err != nil {
		return err
	}
	if err := s.checkRef(ctx, s.doctors, "doctor", a.DoctorID); err != nil {
		return err
	}

	return s.repo.Create(ctx, a)
}

func (s *Service) checkRef(ctx context.Context, resolver RefResolver, kind, id string) error {
	ok, err := resolver.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("resolve %s %s: %w", kind, id, err)
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrInvalidReference)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Appointment, error) {
	if patch.Status != nil && !validStatuses[*patch.Status] {
		return nil, fmt.Errorf("invalid status: %s", *patch.Status)
	}
	if patch.Priority != nil && !validPriorities[*patch.Priority] {
		return nil, fmt.Errorf("invalid priority: %s", *patch.Priority)
	}
	if patch.Duration != nil && *patch.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if patch.PatientID != nil {
		if err := s.checkRef(ctx, s.patients, "patient", *patch.PatientID); err != nil {
			return nil, err
		}
	}
	if patch.DoctorID != nil {
		if err := s.checkRef(ctx, s.doctors, "doctor", *patch.DoctorID); err != nil {
			return nil, err
		}
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ScheduleForDoctor(ctx context.Context, doctorID string, date *time.Time) ([]*Appointment, error) {
	return s.repo.ListForDoctor(ctx, doctorID, date)
}

func (s *Service) StatsForDoctor(ctx context.Context, doctorID string) (*Stats, error) {
	return s.repo.StatsForDoctor(ctx, doctorID)
}

func (s *Service) CountToday(ctx context.Context) (int, error) {
	return s.repo.CountToday(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) DeleteByDoctor(ctx context.Context, doctorID string) error {
	return s.repo.DeleteByDoctor(ctx, doctorID)
}

func (s *Service) DeleteByPatient(ctx context.Context, patientID string) error {
	return s.repo.DeleteByPatient(ctx, patientID)
}
