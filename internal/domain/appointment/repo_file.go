package appointment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clinicore/clinicore/internal/platform/jsonstore"
	"github.com/clinicore/clinicore/internal/platform/recordid"
	"github.com/clinicore/clinicore/internal/platform/storage"
)

type fileRepo struct {
	store *jsonstore.Store
}

// NewFileRepo returns a Repository backed by the JSON file store.
func NewFileRepo(store *jsonstore.Store) Repository {
	return &fileRepo{store: store}
}

func (r *fileRepo) List(ctx context.Context, filter ListFilter) ([]*Appointment, error) {
	appts, err := jsonstore.Read[Appointment](r.store, Collection)
	if err != nil {
		return nil, err
	}
	return sortByDate(applyFilter(appts, filter)), nil
}

func applyFilter(appts []Appointment, filter ListFilter) []Appointment {
	matched := appts[:0]
	for _, a := range appts {
		if filter.Date != nil && !inDay(a.Date, *filter.Date) {
			continue
		}
		if filter.DoctorID != "" && a.DoctorID != filter.DoctorID {
			continue
		}
		if filter.PatientID != "" && a.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		matched = append(matched, a)
	}
	return matched
}

// sortByDate orders ascending by date, ties broken by the time-of-day
// string.
func sortByDate(appts []Appointment) []*Appointment {
	sort.SliceStable(appts, func(i, j int) bool {
		if !appts[i].Date.Equal(appts[j].Date) {
			return appts[i].Date.Before(appts[j].Date)
		}
		return strings.Compare(appts[i].Time, appts[j].Time) < 0
	})
	out := make([]*Appointment, len(appts))
	for i := range appts {
		out[i] = &appts[i]
	}
	return out
}

func (r *fileRepo) Create(ctx context.Context, a *Appointment) error {
	now := time.Now().UTC()
	a.ID = recordid.New()
	applyDefaults(a)
	a.CreatedAt = now
	a.UpdatedAt = now

	return jsonstore.Update(r.store, Collection, func(appts []Appointment) ([]Appointment, error) {
		return append(appts, *a), nil
	})
}

func applyDefaults(a *Appointment) {
	if a.Duration <= 0 {
		a.Duration = DefaultDuration
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
	if a.AssignedTo == "" {
		a.AssignedTo = DefaultAssignedTo
	}
}

func (r *fileRepo) GetByID(ctx context.Context, id string) (*Appointment, error) {
	appts, err := jsonstore.Read[Appointment](r.store, Collection)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		if appts[i].ID == id {
			return &appts[i], nil
		}
	}
	return nil, fmt.Errorf("appointment %s: %w", id, storage.ErrNotFound)
}

func (r *fileRepo) Update(ctx context.Context, id string, patch Patch) (*Appointment, error) {
	var updated *Appointment
	err := jsonstore.Update(r.store, Collection, func(appts []Appointment) ([]Appointment, error) {
		for i := range appts {
			if appts[i].ID != id {
				continue
			}
			applyPatch(&appts[i], patch)
			appts[i].UpdatedAt = time.Now().UTC()
			a := appts[i]
			updated = &a
			return appts, nil
		}
		return nil, fmt.Errorf("appointment %s: %w", id, storage.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyPatch(a *Appointment, patch Patch) {
	if patch.PatientID != nil {
		a.PatientID = *patch.PatientID
	}
	if patch.DoctorID != nil {
		a.DoctorID = *patch.DoctorID
	}
	if patch.Date != nil {
		a.Date = *patch.Date
	}
	if patch.Time != nil {
		a.Time = *patch.Time
	}
	if patch.Duration != nil {
		a.Duration = *patch.Duration
	}
	if patch.Reason != nil {
		a.Reason = *patch.Reason
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Priority != nil {
		a.Priority = *patch.Priority
	}
}

func (r *fileRepo) Delete(ctx context.Context, id string) error {
	return jsonstore.Update(r.store, Collection, func(appts []Appointment) ([]Appointment, error) {
		kept := appts[:0]
		for _, a := range appts {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		if len(kept) == len(appts) {
			return nil, fmt.Errorf("appointment %s: %w", id, storage.ErrNotFound)
		}
		return kept, nil
	})
}

func (r *fileRepo) ListForDoctor(ctx context.Context, doctorID string, date *time.Time) ([]*Appointment, error) {
	return r.List(ctx, ListFilter{DoctorID: doctorID, Date: date})
}

func (r *fileRepo) StatsForDoctor(ctx context.Context, doctorID string) (*Stats, error) {
	appts, err := jsonstore.Read[Appointment](r.store, Collection)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	stats := &Stats{}
	for _, a := range appts {
		if a.DoctorID != doctorID {
			continue
		}
		stats.Total++
		if inDay(a.Date, now) {
			stats.Today++
		}
		if isPending(a.Status) {
			stats.Pending++
		}
	}
	return stats, nil
}

func (r *fileRepo) CountToday(ctx context.Context) (int, error) {
	appts, err := jsonstore.Read[Appointment](r.store, Collection)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	n := 0
	for _, a := range appts {
		if inDay(a.Date, now) {
			n++
		}
	}
	return n, nil
}

func (r *fileRepo) Count(ctx context.Context) (int, error) {
	appts, err := jsonstore.Read[Appointment](r.store, Collection)
	if err != nil {
		return 0, err
	}
	return len(appts), nil
}

func (r *fileRepo) DeleteByDoctor(ctx context.Context, doctorID string) error {
	return jsonstore.Update(r.store, Collection, func(appts []Appointment) ([]Appointment, error) {
		kept := appts[:0]
		for _, a := range appts {
			if a.DoctorID != doctorID {
				kept = append(kept, a)
			}
		}
		return kept, nil
	})
}

func (r *fileRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	return jsonstore.Update(r.store, Collection, func(appts []Appointment) ([]Appointment, error) {
		kept := appts[:0]
		for _, a := range appts {
			if a.PatientID != patientID {
				kept = append(kept, a)
			}
		}
		return kept, nil
	})
}
