package patient

import (
	"context"
	"fmt"
	"strings"
)

// AppointmentCascader removes the appointments that reference a patient.
// Implemented by the appointment service.
type AppointmentCascader interface {
	DeleteByPatient(ctx context.Context, patientID string) error
}

type Service struct {
	repo         Repository
	appointments AppointmentCascader
}

func NewService(repo Repository, appointments AppointmentCascader) *Service {
	return &Service{repo: repo, appointments: appointments}
}

var validGenders = map[string]bool{
	"male": true, "female": true, "other": true,
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Patient, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Gender != "" && !validGenders[p.Gender] {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	if p.Age != nil && *p.Age < 0 {
		return fmt.Errorf("age must not be negative")
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Patient, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("name must not be empty")
		}
		patch.Name = &trimmed
	}
	if patch.Gender != nil && !validGenders[*patch.Gender] {
		return nil, fmt.Errorf("invalid gender: %s", *patch.Gender)
	}
	if patch.Age != nil && *patch.Age < 0 {
		return nil, fmt.Errorf("age must not be negative")
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes the patient and every appointment that references them.
// The two writes are independent; a cascade failure after the patient is
// gone is reported but not rolled back.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.appointments.DeleteByPatient(ctx, id); err != nil {
		return fmt.Errorf("cascade appointments for patient %s: %w", id, err)
	}
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
