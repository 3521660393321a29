package doctor

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

func (r *fileRepo) List(ctx context.Context, filter ListFilter) ([]*Doctor, error) {
	doctors, err := jsonstore.Read[Doctor](r.store, Collection)
	if err != nil {
		return nil, err
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))
		matched := doctors[:0]
		for _, d := range doctors {
			if re.MatchString(d.FirstName) || re.MatchString(d.LastName) || re.MatchString(d.Specialization) {
				matched = append(matched, d)
			}
		}
		doctors = matched
	}

	if spec := strings.TrimSpace(filter.Specialization); spec != "" {
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(spec))
		matched := doctors[:0]
		for _, d := range doctors {
			if re.MatchString(d.Specialization) {
				matched = append(matched, d)
			}
		}
		doctors = matched
	}

	if filter.Status != "" {
		matched := doctors[:0]
		for _, d := range doctors {
			if d.Status == filter.Status {
				matched = append(matched, d)
			}
		}
		doctors = matched
	}

	coll := collate.New(language.Und)
	sort.SliceStable(doctors, func(i, j int) bool {
		return coll.CompareString(doctors[i].FirstName, doctors[j].FirstName) < 0
	})

	out := make([]*Doctor, len(doctors))
	for i := range doctors {
		out[i] = &doctors[i]
	}
	return out, nil
}

func (r *fileRepo) Create(ctx context.Context, d *Doctor) error {
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

	return jsonstore.Update(r.store, Collection, func(doctors []Doctor) ([]Doctor, error) {
		return append(doctors, *d), nil
	})
}

func (r *fileRepo) GetByID(ctx context.Context, id string) (*Doctor, error) {
	doctors, err := jsonstore.Read[Doctor](r.store, Collection)
	if err != nil {
		return nil, err
	}
	for i := range doctors {
		if doctors[i].ID == id {
			return &doctors[i], nil
		}
	}
	return nil, fmt.Errorf("doctor %s: %w", id, storage.ErrNotFound)
}

func (r *fileRepo) GetByUsername(ctx context.Context, username string) (*Doctor, error) {
	doctors, err := jsonstore.Read[Doctor](r.store, Collection)
	if err != nil {
		return nil, err
	}
	for i := range doctors {
		if doctors[i].Username == username {
			return &doctors[i], nil
		}
	}
	return nil, fmt.Errorf("doctor %s: %w", username, storage.ErrNotFound)
}

func (r *fileRepo) Update(ctx context.Context, id string, patch Patch) (*Doctor, error) {
	var updated *Doctor
	err := jsonstore.Update(r.store, Collection, func(doctors []Doctor) ([]Doctor, error) {
		for i := range doctors {
			if doctors[i].ID != id {
				continue
			}
			applyPatch(&doctors[i], patch)
			doctors[i].UpdatedAt = time.Now().UTC()
			d := doctors[i]
			updated = &d
			return doctors, nil
		}
		return nil, fmt.Errorf("doctor %s: %w", id, storage.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyPatch(d *Doctor, patch Patch) {
	if patch.Password != nil {
		d.Password = *patch.Password
	}
	if patch.FirstName != nil {
		d.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		d.LastName = *patch.LastName
	}
	if patch.Email != nil {
		d.Email = *patch.Email
	}
	if patch.Phone != nil {
		d.Phone = patch.Phone
	}
	if patch.Specialization != nil {
		d.Specialization = *patch.Specialization
	}
	if patch.LicenseNumber != nil {
		d.LicenseNumber = patch.LicenseNumber
	}
	if patch.Experience != nil {
		d.Experience = *patch.Experience
	}
	if patch.Status != nil {
		d.Status = *patch.Status
	}
	if patch.Role != nil {
		d.Role = *patch.Role
	}
}

func (r *fileRepo) Delete(ctx context.Context, id string) error {
	return jsonstore.Update(r.store, Collection, func(doctors []Doctor) ([]Doctor, error) {
		kept := doctors[:0]
		for _, d := range doctors {
			if d.ID != id {
				kept = append(kept, d)
			}
		}
		if len(kept) == len(doctors) {
			return nil, fmt.Errorf("doctor %s: %w", id, storage.ErrNotFound)
		}
		return kept, nil
	})
}

func (r *fileRepo) Exists(ctx context.Context, id string) (bool, error) {
	doctors, err := jsonstore.Read[Doctor](r.store, Collection)
	if err != nil {
		return false, err
	}
	for i := range doctors {
		if doctors[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fileRepo) Count(ctx context.Context) (int, error) {
	doctors, err := jsonstore.Read[Doctor](r.store, Collection)
	if err != nil {
		return 0, err
	}
	return len(doctors), nil
}
