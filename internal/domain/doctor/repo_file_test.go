package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicore/clinicore/internal/platform/jsonstore"
	"github.com/clinicore/clinicore/internal/platform/storage"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	return NewFileRepo(jsonstore.New(t.TempDir()))
}

func seedDoctor(t *testing.T, repo Repository, username, first, last, spec string) *Doctor {
	t.Helper()
	d := &Doctor{
		Username:       username,
		FirstName:      first,
		LastName:       last,
		Email:          username + "@clinic.test",
		Specialization: spec,
	}
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("create %s: %v", username, err)
	}
	return d
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newTestRepo(t)

	d := seedDoctor(t, repo, "asmith", "Alice", "Smith", "Orthodontics")
	if d.ID == "" {
		t.Error("expected a generated id")
	}
	if d.Status != StatusActive {
		t.Errorf("expected default status active, got %q", d.Status)
	}
	if d.Role != "doctor" {
		t.Errorf("expected default role doctor, got %q", d.Role)
	}
	if d.Experience != 0 {
		t.Errorf("expected default experience 0, got %d", d.Experience)
	}
}

func TestListMatchesNamesAndSpecialization(t *testing.T) {
	repo := newTestRepo(t)
	seedDoctor(t, repo, "asmith", "Alice", "Smith", "Orthodontics")
	seedDoctor(t, repo, "bortho", "Bruno", "Vega", "Orthodontics")
	seedDoctor(t, repo, "cjones", "Carla", "Jones", "Endodontics")

	got, err := repo.List(context.Background(), ListFilter{Query: "smith"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Username != "asmith" {
		t.Fatalf("expected last-name match, got %d results", len(got))
	}

	got, err = repo.List(context.Background(), ListFilter{Query: "ortho"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected specialization match for 2 doctors, got %d", len(got))
	}
}

func TestListFiltersBySpecializationAndStatus(t *testing.T) {
	repo := newTestRepo(t)
	seedDoctor(t, repo, "asmith", "Alice", "Smith", "Orthodontics")
	d := seedDoctor(t, repo, "cjones", "Carla", "Jones", "Endodontics")
	if _, err := repo.Update(context.Background(), d.ID, Patch{Status: strptr(StatusOnLeave)}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.List(context.Background(), ListFilter{Specialization: "endo"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Username != "cjones" {
		t.Fatalf("expected specialization filter to match, got %d results", len(got))
	}

	got, err = repo.List(context.Background(), ListFilter{Status: StatusActive})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Username != "asmith" {
		t.Fatalf("expected only active doctors, got %d results", len(got))
	}
}

func TestListSortsByFirstName(t *testing.T) {
	repo := newTestRepo(t)
	seedDoctor(t, repo, "c", "Carla", "Jones", "Endodontics")
	seedDoctor(t, repo, "a", "Alice", "Smith", "Orthodontics")
	seedDoctor(t, repo, "b", "Bruno", "Vega", "Orthodontics")

	got, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Alice", "Bruno", "Carla"}
	for i := range want {
		if got[i].FirstName != want[i] {
			t.Fatalf("expected first-name order %v, got %s at %d", want, got[i].FirstName, i)
		}
	}
}

func TestGetByUsername(t *testing.T) {
	repo := newTestRepo(t)
	seedDoctor(t, repo, "asmith", "Alice", "Smith", "Orthodontics")

	d, err := repo.GetByUsername(context.Background(), "asmith")
	if err != nil {
		t.Fatal(err)
	}
	if d.FirstName != "Alice" {
		t.Errorf("unexpected doctor %+v", d)
	}

	if _, err := repo.GetByUsername(context.Background(), "nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUnknownReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func strptr(s string) *string { return &s }
