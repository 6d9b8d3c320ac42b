// Package postgres implements the store on PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"temptrack/internal/domain"
)

// DB wraps a *sql.DB and implements domain.Store.
type DB struct {
	sql *sql.DB
}

var _ domain.Store = (*DB)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS readings (id BIGSERIAL PRIMARY KEY, day DATE NOT NULL UNIQUE, celsius DOUBLE PRECISION NOT NULL, created_at TIMESTAMPTZ NOT NULL, updated_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS cycle_starts (day DATE PRIMARY KEY, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS notes (id BIGSERIAL PRIMARY KEY, day DATE NOT NULL, category TEXT NOT NULL CHECK(category IN ('Symptoms','Mood','Sex','Medication','Other')), body TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_notes_day ON notes(day, id);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// PurgeBefore deletes rows dated before cutoff in one transaction.
func (d *DB) PurgeBefore(ctx context.Context, cutoff domain.Date) (domain.PurgeResult, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return domain.PurgeResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var res domain.PurgeResult
	for table, n := range map[string]*int{
		"readings":     &res.Readings,
		"cycle_starts": &res.CycleStarts,
		"notes":        &res.Notes,
	} {
		r, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE day < $1;", cutoff)
		if err != nil {
			return domain.PurgeResult{}, fmt.Errorf("purge %s: %w", table, err)
		}
		affected, err := r.RowsAffected()
		if err != nil {
			return domain.PurgeResult{}, err
		}
		*n = int(affected)
	}
	if err := tx.Commit(); err != nil {
		return domain.PurgeResult{}, err
	}
	return res, nil
}

func (d *DB) execAffected(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := d.sql.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
