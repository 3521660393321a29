package patient

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/clinicore/clinicore/internal/platform/jsonstore"
	"github.com/clinicore/clinicore/internal/platform/storage"
)

type apptSeed struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient"`
	Date      time.Time `json:"date"`
}

func newTestRepo(t *testing.T) (Repository, *jsonstore.Store) {
	t.Helper()
	store := jsonstore.New(t.TempDir())
	return NewFileRepo(store), store
}

func mustCreate(t *testing.T, repo Repository, name string) *Patient {
	t.Helper()
	p := &Patient{Name: name}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return p
}

func TestCreateAssignsIDAndDefaults(t *testing.T) {
	repo, _ := newTestRepo(t)

	p := mustCreate(t, repo, "Jane Doe")
	if p.ID == "" {
		t.Error("expected a generated id")
	}
	if p.Gender != "other" {
		t.Errorf("expected default gender other, got %q", p.Gender)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := repo.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Jane Doe" {
		t.Errorf("expected persisted name, got %q", got.Name)
	}
}

func TestListSearchEscapesMetacharacters(t *testing.T) {
	repo, _ := newTestRepo(t)
	mustCreate(t, repo, "J.R. Ewing")
	mustCreate(t, repo, "JxR Smith")

	got, err := repo.List(context.Background(), ListFilter{Query: "J.R"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "J.R. Ewing" {
		t.Fatalf("expected the dot to match literally, got %d results", len(got))
	}
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	repo, _ := newTestRepo(t)
	mustCreate(t, repo, "Omar Hassan")
	mustCreate(t, repo, "Priya Patel")

	got, err := repo.List(context.Background(), ListFilter{Query: "hassan"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Omar Hassan" {
		t.Fatalf("expected case-insensitive match, got %d results", len(got))
	}
}

func TestListSortsByNameByDefault(t *testing.T) {
	repo, _ := newTestRepo(t)
	mustCreate(t, repo, "Cy")
	mustCreate(t, repo, "Al")
	mustCreate(t, repo, "Bob")

	got, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	names := []string{got[0].Name, got[1].Name, got[2].Name}
	want := []string{"Al", "Bob", "Cy"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}

	got, err = repo.List(context.Background(), ListFilter{Order: OrderDesc})
	if err != nil {
		t.Fatalf("list desc: %v", err)
	}
	if got[0].Name != "Cy" || got[2].Name != "Al" {
		t.Errorf("expected descending name order, got %s..%s", got[0].Name, got[2].Name)
	}
}

func TestListAppointmentSortIsStableWithoutAppointments(t *testing.T) {
	repo, _ := newTestRepo(t)
	mustCreate(t, repo, "Al")
	mustCreate(t, repo, "Bob")
	mustCreate(t, repo, "Cy")

	got, err := repo.List(context.Background(), ListFilter{Sort: SortByAppointment})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	names := []string{got[0].Name, got[1].Name, got[2].Name}
	want := []string{"Al", "Bob", "Cy"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected insertion order preserved, got %v", names)
		}
	}
}

func TestListSortsByEarliestAppointment(t *testing.T) {
	repo, store := newTestRepo(t)
	early := mustCreate(t, repo, "Early")
	late := mustCreate(t, repo, "Late")
	none := mustCreate(t, repo, "None")

	appts := []apptSeed{
		{ID: "a1", PatientID: late.ID, Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "a2", PatientID: early.ID, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "a3", PatientID: early.ID, Date: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)},
	}
	if err := jsonstore.Write(store, "appointments", appts); err != nil {
		t.Fatal(err)
	}

	got, err := repo.List(context.Background(), ListFilter{Sort: SortByAppointment})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	order := []string{got[0].ID, got[1].ID, got[2].ID}
	want := []string{early.ID, late.ID, none.ID}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected patients without appointments last, got %v", order)
		}
	}

	got, err = repo.List(context.Background(), ListFilter{Sort: SortByAppointment, Order: OrderDesc})
	if err != nil {
		t.Fatalf("list desc: %v", err)
	}
	if got[0].ID != none.ID {
		t.Errorf("expected patient without appointments first when descending, got %s", got[0].Name)
	}
}

func TestListHasAppointmentFilter(t *testing.T) {
	repo, store := newTestRepo(t)
	with := mustCreate(t, repo, "With")
	mustCreate(t, repo, "Without")

	appts := []apptSeed{{ID: "a1", PatientID: with.ID, Date: time.Now().UTC()}}
	if err := jsonstore.Write(store, "appointments", appts); err != nil {
		t.Fatal(err)
	}

	got, err := repo.List(context.Background(), ListFilter{HasAppointment: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != with.ID {
		t.Fatalf("expected only the patient with an appointment, got %d results", len(got))
	}
}

func TestListCapsAtLimit(t *testing.T) {
	repo, _ := newTestRepo(t)
	for i := 0; i < ListLimit+15; i++ {
		mustCreate(t, repo, fmt.Sprintf("Patient %03d", i))
	}

	got, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != ListLimit {
		t.Errorf("expected listing capped at %d, got %d", ListLimit, len(got))
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := mustCreate(t, repo, "Jane")

	age := 42
	got, err := repo.Update(context.Background(), p.ID, Patch{Age: &age})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Jane" {
		t.Errorf("expected name untouched, got %q", got.Name)
	}
	if got.Age == nil || *got.Age != 42 {
		t.Errorf("expected age 42, got %v", got.Age)
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Error("expected updatedAt bumped")
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := mustCreate(t, repo, "Jane")

	name := "Changed"
	_, err := repo.Update(context.Background(), "missing", Patch{Name: &name})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, err := repo.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Jane" {
		t.Errorf("expected existing record unchanged, got %q", got.Name)
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := mustCreate(t, repo, "Jane")

	if err := repo.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), p.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(context.Background(), p.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestExistsAndCount(t *testing.T) {
	repo, _ := newTestRepo(t)
	p := mustCreate(t, repo, "Jane")
	mustCreate(t, repo, "Omar")

	ok, err := repo.Exists(context.Background(), p.ID)
	if err != nil || !ok {
		t.Fatalf("expected patient to exist, ok=%v err=%v", ok, err)
	}
	ok, err = repo.Exists(context.Background(), "missing")
	if err != nil || ok {
		t.Fatalf("expected missing patient to not exist, ok=%v err=%v", ok, err)
	}

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected count 2, got %d", n)
	}
}
