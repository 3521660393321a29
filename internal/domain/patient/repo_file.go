package patient

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

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

// apptRef is the slice of an appointment record the patient listing needs:
// the patient reference and the appointment date. The appointments
// collection is only ever read here, never written.
type apptRef struct {
	PatientID string    `json:"patient"`
	Date      time.Time `json:"date"`
}

func (r *fileRepo) List(ctx context.Context, filter ListFilter) ([]*Patient, error) {
	patients, err := jsonstore.Read[Patient](r.store, Collection)
	if err != nil {
		return nil, err
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))
		matched := patients[:0]
		for _, p := range patients {
			if re.MatchString(p.Name) {
				matched = append(matched, p)
			}
		}
		patients = matched
	}

	var appts []apptRef
	if filter.HasAppointment || filter.Sort == SortByAppointment {
		appts, err = jsonstore.Read[apptRef](r.store, "appointments")
		if err != nil {
			return nil, err
		}
	}

	if filter.HasAppointment {
		withAppt := make(map[string]bool, len(appts))
		for _, a := range appts {
			withAppt[a.PatientID] = true
		}
		matched := patients[:0]
		for _, p := range patients {
			if withAppt[p.ID] {
				matched = append(matched, p)
			}
		}
		patients = matched
	}

	desc := filter.Order == OrderDesc

	switch filter.Sort {
	case SortByAppointment:
		// Earliest appointment date per patient; patients without one sort
		// to the tail ascending (head descending), relative order preserved.
		earliest := make(map[string]time.Time, len(appts))
		for _, a := range appts {
			if cur, ok := earliest[a.PatientID]; !ok || a.Date.Before(cur) {
				earliest[a.PatientID] = a.Date
			}
		}
		sort.SliceStable(patients, func(i, j int) bool {
			ti, oki := earliest[patients[i].ID]
			tj, okj := earliest[patients[j].ID]
			var cmp int
			switch {
			case oki && okj:
				cmp = compareTimes(ti, tj)
			case oki:
				cmp = -1
			case okj:
				cmp = 1
			}
			if desc {
				cmp = -cmp
			}
			return cmp < 0
		})
	case SortByCreatedAt:
		sort.SliceStable(patients, func(i, j int) bool {
			cmp := compareTimes(patients[i].CreatedAt, patients[j].CreatedAt)
			if desc {
				cmp = -cmp
			}
			return cmp < 0
		})
	default:
		coll := collate.New(language.Und)
		sort.SliceStable(patients, func(i, j int) bool {
			cmp := coll.CompareString(patients[i].Name, patients[j].Name)
			if desc {
				cmp = -cmp
			}
			return cmp < 0
		})
	}

	if len(patients) > ListLimit {
		patients = patients[:ListLimit]
	}

	out := make([]*Patient, len(patients))
	for i := range patients {
		out[i] = &patients[i]
	}
	return out, nil
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func (r *fileRepo) Create(ctx context.Context, p *Patient) error {
	now := time.Now().UTC()
	p.ID = recordid.New()
	if p.Gender == "" {
		p.Gender = "other"
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	return jsonstore.Update(r.store, Collection, func(patients []Patient) ([]Patient, error) {
		return append(patients, *p), nil
	})
}

func (r *fileRepo) GetByID(ctx context.Context, id string) (*Patient, error) {
	patients, err := jsonstore.Read[Patient](r.store, Collection)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].ID == id {
			return &patients[i], nil
		}
	}
	return nil, fmt.Errorf("patient %s: %w", id, storage.ErrNotFound)
}

func (r *fileRepo) Update(ctx context.Context, id string, patch Patch) (*Patient, error) {
	var updated *Patient
	err := jsonstore.Update(r.store, Collection, func(patients []Patient) ([]Patient, error) {
		for i := range patients {
			if patients[i].ID != id {
				continue
			}
			applyPatch(&patients[i], patch)
			patients[i].UpdatedAt = time.Now().UTC()
			p := patients[i]
			updated = &p
			return patients, nil
		}
		return nil, fmt.Errorf("patient %s: %w", id, storage.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyPatch(p *Patient, patch Patch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Age != nil {
		p.Age = patch.Age
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Phone != nil {
		p.Phone = patch.Phone
	}
	if patch.Location != nil {
		p.Location = patch.Location
	}
}

func (r *fileRepo) Delete(ctx context.Context, id string) error {
	return jsonstore.Update(r.store, Collection, func(patients []Patient) ([]Patient, error) {
		kept := patients[:0]
		for _, p := range patients {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(patients) {
			return nil, fmt.Errorf("patient %s: %w", id, storage.ErrNotFound)
		}
		return kept, nil
	})
}

func (r *fileRepo) Exists(ctx context.Context, id string) (bool, error) {
	patients, err := jsonstore.Read[Patient](r.store, Collection)
	if err != nil {
		return false, err
	}
	for i := range patients {
		if patients[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fileRepo) Count(ctx context.Context) (int, error) {
	patients, err := jsonstore.Read[Patient](r.store, Collection)
	if err != nil {
		return 0, err
	}
	return len(patients), nil
}
