// Package dashboard aggregates headline counts from the other domains for
// the clinic's landing view.
package dashboard

import "context"

// Counters are the slices of each domain the dashboard reads. Implemented
// by the patient, doctor, appointment and inventory services.
type PatientCounter interface {
	Count(ctx context.Context) (int, error)
}

type DoctorCounter interface {
	Count(ctx context.Context) (int, error)
}

type AppointmentCounter interface {
	CountToday(ctx context.Context) (int, error)
}

type InventoryCounter interface {
	CountLowStock(ctx context.Context) (int, error)
}

// Summary is the aggregated snapshot.
type Summary struct {
	Patients          int `json:"patients"`
	Doctors           int `json:"doctors"`
	AppointmentsToday int `json:"appointmentsToday"`
	LowStockItems     int `json:"lowStockItems"`
}

type Service struct {
	patients     PatientCounter
	doctors      DoctorCounter
	appointments AppointmentCounter
	inventory    InventoryCounter
}

func NewService(p PatientCounter, d DoctorCounter, a AppointmentCounter, i InventoryCounter) *Service {
	return &Service{patients: p, doctors: d, appointments: a, inventory: i}
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var (
		sum Summary
		err error
	)
	if sum.Patients, err = s.patients.Count(ctx); err != nil {
		return nil, err
	}
	if sum.Doctors, err = s.doctors.Count(ctx); err != nil {
		return nil, err
	}
	if sum.AppointmentsToday, err = s.appointments.CountToday(ctx); err != nil {
		return nil, err
	}
	if sum.LowStockItems, err = s.inventory.CountLowStock(ctx); err != nil {
		return nil, err
	}
	return &sum, nil
}
