// Package sqlite implements the store on an embedded SQLite file using the
// pure Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"temptrack/internal/domain"
)

// DB wraps a *sql.DB and implements domain.Store.
type DB struct {
	sql *sql.DB
}

var _ domain.Store = (*DB)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day TEXT NOT NULL UNIQUE,
		celsius REAL NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cycle_starts (
		day TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day TEXT NOT NULL,
		category TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_day ON notes(day, id)`,
}

// Open creates or opens the database at path and applies the schema.
// ":memory:" opens a private in-memory database.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	s, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows one writer at a time.
	s.SetMaxOpenConns(1)
	s.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx, path); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context, path string) error {
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := d.sql.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("apply %q: %w", p, err)
		}
	}
	for _, stmt := range schema {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func timestamp(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTimestamp(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }

// --- ReadingRepository ---

// UpsertReading inserts or replaces the reading for day.
func (d *DB) UpsertReading(ctx context.Context, day domain.Date, celsius float64, at time.Time) (*domain.TemperatureReading, error) {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO readings(day, celsius, created_at, updated_at) VALUES(?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET celsius = excluded.celsius, updated_at = excluded.updated_at`,
		day, celsius, timestamp(at), timestamp(at),
	)
	if err != nil {
		return nil, err
	}
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, day, celsius, created_at, updated_at FROM readings WHERE day = ?", day)
	return scanReading(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReading(row scanner) (*domain.TemperatureReading, error) {
	var (
		r                domain.TemperatureReading
		created, updated string
		err              error
	)
	if err := row.Scan(&r.ID, &r.Day, &r.Value, &created, &updated); err != nil {
		return nil, err
	}
	if r.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return nil, err
	}
	r.Unit = domain.Celsius
	return &r, nil
}

// DeleteReading removes the reading for day.
func (d *DB) DeleteReading(ctx context.Context, day domain.Date) (bool, error) {
	return d.execAffected(ctx, "DELETE FROM readings WHERE day = ?", day)
}

// ListReadings returns all readings by day.
func (d *DB) ListReadings(ctx context.Context) ([]domain.TemperatureReading, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, day, celsius, created_at, updated_at FROM readings ORDER BY day")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TemperatureReading
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// --- CycleStartRepository ---

// AddCycleStart records a start on day unless one exists.
func (d *DB) AddCycleStart(ctx context.Context, day domain.Date, at time.Time) (bool, error) {
	return d.execAffected(ctx,
		"INSERT INTO cycle_starts(day, created_at) VALUES(?, ?) ON CONFLICT(day) DO NOTHING",
		day, timestamp(at))
}

// DeleteCycleStart removes the start on day.
func (d *DB) DeleteCycleStart(ctx context.Context, day domain.Date) (bool, error) {
	return d.execAffected(ctx, "DELETE FROM cycle_starts WHERE day = ?", day)
}

// ListCycleStarts returns all starts by day.
func (d *DB) ListCycleStarts(ctx context.Context) ([]domain.CycleStartEvent, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT day, created_at FROM cycle_starts ORDER BY day")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CycleStartEvent
	for rows.Next() {
		var (
			e       domain.CycleStartEvent
			created string
		)
		if err := rows.Scan(&e.Day, &created); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = parseTimestamp(created); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// --- NoteRepository ---

// AddNote inserts a note and returns its ID.
func (d *DB) AddNote(ctx context.Context, day domain.Date, category domain.NoteCategory, text string, at time.Time) (int64, error) {
	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO notes(day, category, body, created_at) VALUES(?, ?, ?, ?)",
		day, string(category), text, timestamp(at))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteNote removes a note by ID.
func (d *DB) DeleteNote(ctx context.Context, id int64) (bool, error) {
	return d.execAffected(ctx, "DELETE FROM notes WHERE id = ?", id)
}

// ListNotes returns all notes by day, then ID.
func (d *DB) ListNotes(ctx context.Context) ([]domain.Note, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, day, category, body, created_at FROM notes ORDER BY day, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Note
	for rows.Next() {
		var (
			n       domain.Note
			created string
		)
		if err := rows.Scan(&n.ID, &n.Day, &n.Category, &n.Text, &created); err != nil {
			return nil, err
		}
		if n.CreatedAt, err = parseTimestamp(created); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// --- RetentionRepository ---

// PurgeBefore deletes rows dated before cutoff in one transaction.
func (d *DB) PurgeBefore(ctx context.Context, cutoff domain.Date) (res domain.PurgeResult, err error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return res, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	counts := []struct {
		table string
		n     *int
	}{
		{"readings", &res.Readings},
		{"cycle_starts", &res.CycleStarts},
		{"notes", &res.Notes},
	}
	for _, c := range counts {
		r, err := tx.ExecContext(ctx, "DELETE FROM "+c.table+" WHERE day < ?", cutoff)
		if err != nil {
			return domain.PurgeResult{}, fmt.Errorf("purge %s: %w", c.table, err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return domain.PurgeResult{}, err
		}
		*c.n = int(n)
	}
	return res, tx.Commit()
}

// execAffected runs a write statement and reports whether it touched a row.
func (d *DB) execAffected(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := d.sql.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
