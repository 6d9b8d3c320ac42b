// Package memory implements an in-memory store for development and testing.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"temptrack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu          sync.Mutex
	readings    map[domain.Date]domain.TemperatureReading
	cycleStarts map[domain.Date]domain.CycleStartEvent
	notes       []domain.Note

	readingIDCounter int64
	noteIDCounter    int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		readings:    make(map[domain.Date]domain.TemperatureReading),
		cycleStarts: make(map[domain.Date]domain.CycleStartEvent),
	}
}

var _ domain.Store = (*DB)(nil)

// Close is a no-op.
func (db *DB) Close() error { return nil }

// --- ReadingRepository ---

// UpsertReading stores the reading for day, keeping the original ID and
// creation time when one already exists.
func (db *DB) UpsertReading(ctx context.Context, day domain.Date, celsius float64, at time.Time) (*domain.TemperatureReading, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r, ok := db.readings[day]
	if !ok {
		db.readingIDCounter++
		r = domain.TemperatureReading{ID: db.readingIDCounter, Day: day, CreatedAt: at.UTC()}
	}
	r.Value = celsius
	r.Unit = domain.Celsius
	r.UpdatedAt = at.UTC()
	db.readings[day] = r
	return &r, nil
}

// DeleteReading removes the reading for day.
func (db *DB) DeleteReading(ctx context.Context, day domain.Date) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.readings[day]; !ok {
		return false, nil
	}
	delete(db.readings, day)
	return true, nil
}

// ListReadings lists all readings by day.
func (db *DB) ListReadings(ctx context.Context) ([]domain.TemperatureReading, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.TemperatureReading, 0, len(db.readings))
	for _, r := range db.readings {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b domain.TemperatureReading) int { return a.Day.Compare(b.Day) })
	return out, nil
}

// --- CycleStartRepository ---

// AddCycleStart records a cycle start unless one exists on day.
func (db *DB) AddCycleStart(ctx context.Context, day domain.Date, at time.Time) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.cycleStarts[day]; ok {
		return false, nil
	}
	db.cycleStarts[day] = domain.CycleStartEvent{Day: day, CreatedAt: at.UTC()}
	return true, nil
}

// DeleteCycleStart removes the cycle start on day.
func (db *DB) DeleteCycleStart(ctx context.Context, day domain.Date) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.cycleStarts[day]; !ok {
		return false, nil
	}
	delete(db.cycleStarts, day)
	return true, nil
}

// ListCycleStarts lists all cycle starts by day.
func (db *DB) ListCycleStarts(ctx context.Context) ([]domain.CycleStartEvent, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.CycleStartEvent, 0, len(db.cycleStarts))
	for _, s := range db.cycleStarts {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b domain.CycleStartEvent) int { return a.Day.Compare(b.Day) })
	return out, nil
}

// --- NoteRepository ---

// AddNote adds a note.
func (db *DB) AddNote(ctx context.Context, day domain.Date, category domain.NoteCategory, text string, at time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.noteIDCounter++
	db.notes = append(db.notes, domain.Note{
		ID:        db.noteIDCounter,
		Day:       day,
		Category:  category,
		Text:      text,
		CreatedAt: at.UTC(),
	})
	return db.noteIDCounter, nil
}

// DeleteNote deletes a note by ID.
func (db *DB) DeleteNote(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, n := range db.notes {
		if n.ID == id {
			db.notes = slices.Delete(db.notes, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

// ListNotes lists all notes by day, then ID.
func (db *DB) ListNotes(ctx context.Context) ([]domain.Note, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := slices.Clone(db.notes)
	slices.SortStableFunc(out, func(a, b domain.Note) int {
		if c := a.Day.Compare(b.Day); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return out, nil
}

// --- RetentionRepository ---

// PurgeBefore drops everything dated before cutoff.
func (db *DB) PurgeBefore(ctx context.Context, cutoff domain.Date) (domain.PurgeResult, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var res domain.PurgeResult
	for day := range db.readings {
		if day.Before(cutoff) {
			delete(db.readings, day)
			res.Readings++
		}
	}
	for day := range db.cycleStarts {
		if day.Before(cutoff) {
			delete(db.cycleStarts, day)
			res.CycleStarts++
		}
	}
	kept := db.notes[:0]
	for _, n := range db.notes {
		if n.Day.Before(cutoff) {
			res.Notes++
			continue
		}
		kept = append(kept, n)
	}
	db.notes = kept
	return res, nil
}

// State is a full copy of the database, used to persist it elsewhere.
type State struct {
	Readings      []domain.TemperatureReading `json:"readings"`
	CycleStarts   []domain.CycleStartEvent    `json:"cycleStarts"`
	Notes         []domain.Note               `json:"notes"`
	NextReadingID int64                       `json:"nextReadingId"`
	NextNoteID    int64                       `json:"nextNoteId"`
}

// ExportState returns a copy of every row and the ID counters.
func (db *DB) ExportState() State {
	readings, _ := db.ListReadings(context.Background())
	starts, _ := db.ListCycleStarts(context.Background())
	notes, _ := db.ListNotes(context.Background())

	db.mu.Lock()
	defer db.mu.Unlock()
	return State{
		Readings:      readings,
		CycleStarts:   starts,
		Notes:         notes,
		NextReadingID: db.readingIDCounter,
		NextNoteID:    db.noteIDCounter,
	}
}

// ImportState replaces the database contents with s.
func (db *DB) ImportState(s State) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.readings = make(map[domain.Date]domain.TemperatureReading, len(s.Readings))
	for _, r := range s.Readings {
		db.readings[r.Day] = r
	}
	db.cycleStarts = make(map[domain.Date]domain.CycleStartEvent, len(s.CycleStarts))
	for _, c := range s.CycleStarts {
		db.cycleStarts[c.Day] = c
	}
	db.notes = slices.Clone(s.Notes)
	db.readingIDCounter = s.NextReadingID
	db.noteIDCounter = s.NextNoteID
	for _, r := range s.Readings {
		db.readingIDCounter = max(db.readingIDCounter, r.ID)
	}
	for _, n := range s.Notes {
		db.noteIDCounter = max(db.noteIDCounter, n.ID)
	}
}
