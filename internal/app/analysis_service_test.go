package app_test

import (
	"context"
	"testing"

	"temptrack/internal/app"
	"temptrack/internal/domain"
)

func TestSummary(t *testing.T) {
	svc := app.NewAnalysisService(sampleHistory(), defaultEngine)
	a, err := svc.Summary(context.Background(), day0.AddDays(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Counts != (app.DataCounts{Readings: 4, CycleStarts: 1, Notes: 2}) {
		t.Errorf("unexpected counts: %+v", a.Counts)
	}
	if a.Temperature == nil || a.Temperature.Count != 4 {
		t.Fatalf("expected temperature stats over 4 readings, got %+v", a.Temperature)
	}
	want := map[domain.Phase]int{
		domain.PhaseMenstrual: 1,
		domain.PhaseOvulatory: 1,
		domain.PhaseLuteal:    1,
	}
	for p, n := range want {
		if a.Distribution[p] != n {
			t.Errorf("expected %d %s readings, got %d", n, p, a.Distribution[p])
		}
	}
	if a.Cycles.Count != 0 {
		t.Errorf("expected no closed cycles, got %d", a.Cycles.Count)
	}
}

func TestSummary_Empty(t *testing.T) {
	svc := app.NewAnalysisService(&fakeHistory{}, defaultEngine)
	a, err := svc.Summary(context.Background(), day0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Temperature != nil || a.Shift != nil {
		t.Errorf("expected no temperature figures, got %+v %+v", a.Temperature, a.Shift)
	}
}
