package dashboard

import (
	"context"
	"errors"
	"testing"
)

type fixedCounts struct {
	patients, doctors, today, lowStock int
	err                                error
}

func (f fixedCounts) Count(ctx context.Context) (int, error)         { return f.patients, f.err }
func (f fixedCounts) CountToday(ctx context.Context) (int, error)    { return f.today, f.err }
func (f fixedCounts) CountLowStock(ctx context.Context) (int, error) { return f.lowStock, f.err }

type doctorCounts struct{ n int }

func (d doctorCounts) Count(ctx context.Context) (int, error) { return d.n, nil }

func TestSummaryAggregatesAllDomains(t *testing.T) {
	f := fixedCounts{patients: 12, today: 4, lowStock: 2}
	svc := NewService(f, doctorCounts{n: 3}, f, f)

	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Patients != 12 || sum.Doctors != 3 || sum.AppointmentsToday != 4 || sum.LowStockItems != 2 {
		t.Errorf("unexpected summary: %+v", sum)
	}
}

func TestSummaryPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	f := fixedCounts{err: boom}
	svc := NewService(f, doctorCounts{}, f, f)

	if _, err := svc.Summary(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected propagated error, got %v", err)
	}
}
