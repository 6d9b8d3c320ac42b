package postgres

import (
	"context"
	"time"

	"temptrack/internal/domain"
)

// AddCycleStart records a start on day. An existing start is kept.
func (d *DB) AddCycleStart(ctx context.Context, day domain.Date, at time.Time) (bool, error) {
	return d.execAffected(ctx,
		"INSERT INTO cycle_starts(day, created_at) VALUES($1, $2) ON CONFLICT(day) DO NOTHING;",
		day, at.UTC())
}

// DeleteCycleStart removes the start on day.
func (d *DB) DeleteCycleStart(ctx context.Context, day domain.Date) (bool, error) {
	return d.execAffected(ctx, "DELETE FROM cycle_starts WHERE day = $1;", day)
}

// ListCycleStarts returns every start ordered by day.
func (d *DB) ListCycleStarts(ctx context.Context) ([]domain.CycleStartEvent, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT day, created_at FROM cycle_starts ORDER BY day;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CycleStartEvent
	for rows.Next() {
		var e domain.CycleStartEvent
		if err := rows.Scan(&e.Day, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
