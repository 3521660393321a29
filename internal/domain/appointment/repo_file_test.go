package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinicore/clinicore/internal/platform/jsonstore"
	"github.com/clinicore/clinicore/internal/platform/storage"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	return NewFileRepo(jsonstore.New(t.TempDir()))
}

func seedAppt(t *testing.T, repo Repository, patientID, doctorID string, date time.Time, clock string) *Appointment {
	t.Helper()
	a := &Appointment{PatientID: patientID, DoctorID: doctorID, Date: date, Time: clock}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return a
}

func localDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newTestRepo(t)

	a := seedAppt(t, repo, "p1", "d1", localDay(2024, 6, 1), "09:00")
	if a.ID == "" {
		t.Error("expected a generated id")
	}
	if a.Duration != DefaultDuration {
		t.Errorf("expected default duration %d, got %d", DefaultDuration, a.Duration)
	}
	if a.Status != StatusScheduled {
		t.Errorf("expected default status scheduled, got %q", a.Status)
	}
	if a.Priority != PriorityMedium {
		t.Errorf("expected default priority medium, got %q", a.Priority)
	}
	if a.AssignedTo != DefaultAssignedTo {
		t.Errorf("expected default assignedTo doctor, got %q", a.AssignedTo)
	}
}

func TestListSortsByDateThenTime(t *testing.T) {
	repo := newTestRepo(t)
	late := seedAppt(t, repo, "p1", "d1", localDay(2024, 6, 2), "08:00")
	second := seedAppt(t, repo, "p2", "d1", localDay(2024, 6, 1), "10:30")
	first := seedAppt(t, repo, "p3", "d1", localDay(2024, 6, 1), "09:00")

	got, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{first.ID, second.ID, late.ID}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i].ID)
		}
	}
}

func TestListDateFilterCoversWholeLocalDay(t *testing.T) {
	repo := newTestRepo(t)
	inWindow := seedAppt(t, repo, "p1", "d1",
		time.Date(2024, 6, 1, 23, 30, 0, 0, time.Local), "23:30")
	seedAppt(t, repo, "p2", "d1",
		time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local), "00:00")

	day := localDay(2024, 6, 1)
	got, err := repo.List(context.Background(), ListFilter{Date: &day})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != inWindow.ID {
		t.Fatalf("expected only the 23:30 appointment inside the day window, got %d results", len(got))
	}
}

func TestListCombinesFilters(t *testing.T) {
	repo := newTestRepo(t)
	match := seedAppt(t, repo, "p1", "d1", localDay(2024, 6, 1), "09:00")
	seedAppt(t, repo, "p1", "d2", localDay(2024, 6, 1), "09:00")
	seedAppt(t, repo, "p2", "d1", localDay(2024, 6, 1), "10:00")

	day := localDay(2024, 6, 1)
	got, err := repo.List(context.Background(), ListFilter{
		Date: &day, DoctorID: "d1", PatientID: "p1", Status: StatusScheduled,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != match.ID {
		t.Fatalf("expected one match for combined filters, got %d", len(got))
	}
}

func TestStatsForDoctor(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now()

	today := seedAppt(t, repo, "p1", "d1", now, "09:00")
	seedAppt(t, repo, "p2", "d1", now.AddDate(0, 0, 5), "10:00")
	done := seedAppt(t, repo, "p3", "d1", now.AddDate(0, 0, -5), "11:00")
	seedAppt(t, repo, "p4", "d2", now, "12:00")

	status := StatusCompleted
	if _, err := repo.Update(context.Background(), done.ID, Patch{Status: &status}); err != nil {
		t.Fatal(err)
	}
	confirmed := StatusConfirmed
	if _, err := repo.Update(context.Background(), today.ID, Patch{Status: &confirmed}); err != nil {
		t.Fatal(err)
	}

	stats, err := repo.StatsForDoctor(context.Background(), "d1")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if stats.Today != 1 {
		t.Errorf("expected 1 today, got %d", stats.Today)
	}
	if stats.Pending != 2 {
		t.Errorf("expected 2 pending (scheduled or confirmed), got %d", stats.Pending)
	}
}

func TestCountToday(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now()
	seedAppt(t, repo, "p1", "d1", now, "09:00")
	seedAppt(t, repo, "p2", "d2", now, "10:00")
	seedAppt(t, repo, "p3", "d1", now.AddDate(0, 0, 1), "09:00")

	n, err := repo.CountToday(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 appointments today, got %d", n)
	}
}

func TestDeleteByPatientRemovesOnlyTheirs(t *testing.T) {
	repo := newTestRepo(t)
	seedAppt(t, repo, "p1", "d1", localDay(2024, 6, 1), "09:00")
	seedAppt(t, repo, "p1", "d2", localDay(2024, 6, 2), "10:00")
	other := seedAppt(t, repo, "p2", "d1", localDay(2024, 6, 3), "11:00")

	if err := repo.DeleteByPatient(context.Background(), "p1"); err != nil {
		t.Fatal(err)
	}

	got, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != other.ID {
		t.Fatalf("expected only the other patient's appointment left, got %d", len(got))
	}
}

func TestDeleteByDoctorWithNoAppointmentsSucceeds(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.DeleteByDoctor(context.Background(), "nobody"); err != nil {
		t.Fatalf("expected no error for empty cascade, got %v", err)
	}
}

func TestDeleteUnknownReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScheduleForDoctorScopesAndSorts(t *testing.T) {
	repo := newTestRepo(t)
	second := seedAppt(t, repo, "p1", "d1", localDay(2024, 6, 1), "14:00")
	first := seedAppt(t, repo, "p2", "d1", localDay(2024, 6, 1), "09:00")
	seedAppt(t, repo, "p3", "d2", localDay(2024, 6, 1), "10:00")
	seedAppt(t, repo, "p4", "d1", localDay(2024, 6, 2), "08:00")

	day := localDay(2024, 6, 1)
	got, err := repo.ListForDoctor(context.Background(), "d1", &day)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("expected d1's day schedule in time order, got %d results", len(got))
	}
}
