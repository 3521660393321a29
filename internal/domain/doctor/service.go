package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clinicore/clinicore/internal/platform/storage"
)

// AppointmentCascader removes the appointments that reference a doctor.
// Implemented by the appointment service.
type AppointmentCascader interface {
	DeleteByDoctor(ctx context.Context, doctorID string) error
}

type Service struct {
	repo         Repository
	appointments AppointmentCascader
}

func NewService(repo Repository, appointments AppointmentCascader) *Service {
	return &Service{repo: repo, appointments: appointments}
}

var validStatuses = map[string]bool{
	StatusActive: true, StatusInactive: true, StatusOnLeave: true,
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Doctor, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	d.Username = strings.TrimSpace(d.Username)
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	if d.Username == "" {
		return fmt.Errorf("username is required")
	}
	if d.FirstName == "" || d.LastName == "" {
		return fmt.Errorf("first and last name are required")
	}
	if d.Status != "" && !validStatuses[d.Status] {
		return fmt.Errorf("invalid status: %s", d.Status)
	}
	if d.Experience < 0 {
		return fmt.Errorf("experience must not be negative")
	}

	if _, err := s.repo.GetByUsername(ctx, d.Username); err == nil {
		return fmt.Errorf("username %s already taken", d.Username)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	return s.repo.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id string) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Doctor, error) {
	if patch.Status != nil && !validStatuses[*patch.Status] {
		return nil, fmt.Errorf("invalid status: %s", *patch.Status)
	}
	if patch.Experience != nil && *patch.Experience < 0 {
		return nil, fmt.Errorf("experience must not be negative")
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes the doctor and every appointment assigned to them. The
// two writes are independent with no rollback.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.appointments.DeleteByDoctor(ctx, id); err != nil {
		return fmt.Errorf("cascade appointments for doctor %s: %w", id, err)
	}
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
