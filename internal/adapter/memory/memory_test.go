package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"temptrack/internal/adapter/storetest"
	"temptrack/internal/domain"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) domain.Store { return New() })
}

func TestConcurrentWrites(t *testing.T) {
	db := New()
	ctx := context.Background()
	start := domain.MustParseDate("2026-01-01")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := db.UpsertReading(ctx, start.AddDays(i), 36.5, time.Now()); err != nil {
				t.Errorf("UpsertReading: %v", err)
			}
			if _, err := db.AddNote(ctx, start.AddDays(i), domain.NoteOther, "n", time.Now()); err != nil {
				t.Errorf("AddNote: %v", err)
			}
		}(i)
	}
	wg.Wait()

	readings, _ := db.ListReadings(ctx)
	if len(readings) != 50 {
		t.Errorf("expected 50 readings, got %d", len(readings))
	}
	notes, _ := db.ListNotes(ctx)
	seen := make(map[int64]bool)
	for _, n := range notes {
		if seen[n.ID] {
			t.Fatalf("duplicate note id %d", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestExportImportState(t *testing.T) {
	ctx := context.Background()
	day := domain.MustParseDate("2026-01-01")

	src := New()
	_, _ = src.UpsertReading(ctx, day, 36.5, time.Now())
	_, _ = src.AddCycleStart(ctx, day, time.Now())
	id, _ := src.AddNote(ctx, day, domain.NoteMood, "fine", time.Now())
	_, _ = src.DeleteNote(ctx, id)

	dst := New()
	dst.ImportState(src.ExportState())

	readings, _ := dst.ListReadings(ctx)
	starts, _ := dst.ListCycleStarts(ctx)
	if len(readings) != 1 || len(starts) != 1 {
		t.Fatalf("expected 1 reading and 1 start, got %d and %d", len(readings), len(starts))
	}
	next, _ := dst.AddNote(ctx, day, domain.NoteMood, "again", time.Now())
	if next <= id {
		t.Errorf("expected note ids to keep increasing after import, got %d after %d", next, id)
	}
}
