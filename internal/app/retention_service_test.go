package app_test

import (
	"context"
	"errors"
	"testing"

	"temptrack/internal/app"
	"temptrack/internal/domain"
)

type mockRetentionRepo struct {
	purgeFn func(ctx context.Context, cutoff domain.Date) (domain.PurgeResult, error)
}

func (m *mockRetentionRepo) PurgeBefore(ctx context.Context, cutoff domain.Date) (domain.PurgeResult, error) {
	if m.purgeFn != nil {
		return m.purgeFn(ctx, cutoff)
	}
	return domain.PurgeResult{}, nil
}

func TestPurge_Cutoff(t *testing.T) {
	var gotCutoff domain.Date
	repo := &mockRetentionRepo{
		purgeFn: func(_ context.Context, cutoff domain.Date) (domain.PurgeResult, error) {
			gotCutoff = cutoff
			return domain.PurgeResult{Readings: 3, Notes: 1}, nil
		},
	}
	svc := app.NewRetentionService(repo, app.DefaultRetentionDays)
	today := domain.MustParseDate("2026-06-30")

	res, err := svc.Purge(context.Background(), today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := domain.MustParseDate("2024-06-30"); !gotCutoff.Equal(want) {
		t.Errorf("expected cutoff %s, got %s", want, gotCutoff)
	}
	if res.Readings != 3 || res.Notes != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestPurge_InvalidRetention(t *testing.T) {
	svc := app.NewRetentionService(&mockRetentionRepo{}, 0)
	if _, err := svc.Purge(context.Background(), day0); !errors.Is(err, app.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
