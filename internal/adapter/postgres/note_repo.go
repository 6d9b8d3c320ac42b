package postgres

import (
	"context"
	"time"

	"temptrack/internal/domain"
)

// AddNote inserts a note and returns its ID.
func (d *DB) AddNote(ctx context.Context, day domain.Date, category domain.NoteCategory, text string, at time.Time) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO notes(day, category, body, created_at) VALUES($1, $2, $3, $4) RETURNING id;",
		day, string(category), text, at.UTC(),
	).Scan(&id)
	return id, err
}

// DeleteNote deletes a note by ID.
func (d *DB) DeleteNote(ctx context.Context, id int64) (bool, error) {
	return d.execAffected(ctx, "DELETE FROM notes WHERE id = $1;", id)
}

// ListNotes returns every note ordered by day, then ID.
func (d *DB) ListNotes(ctx context.Context) ([]domain.Note, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, day, category, body, created_at FROM notes ORDER BY day, id;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Day, &n.Category, &n.Text, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
