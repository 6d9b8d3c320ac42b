package postgres

import (
	"context"
	"time"

	"temptrack/internal/domain"
)

// UpsertReading inserts the reading for day or replaces its value.
func (d *DB) UpsertReading(ctx context.Context, day domain.Date, celsius float64, at time.Time) (*domain.TemperatureReading, error) {
	r := domain.TemperatureReading{Unit: domain.Celsius}
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO readings(day, celsius, created_at, updated_at) VALUES($1, $2, $3, $3)
		 ON CONFLICT(day) DO UPDATE SET celsius = EXCLUDED.celsius, updated_at = EXCLUDED.updated_at
		 RETURNING id, day, celsius, created_at, updated_at;`,
		day, celsius, at.UTC(),
	).Scan(&r.ID, &r.Day, &r.Value, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteReading removes the reading for day.
func (d *DB) DeleteReading(ctx context.Context, day domain.Date) (bool, error) {
	return d.execAffected(ctx, "DELETE FROM readings WHERE day = $1;", day)
}

// ListReadings returns every reading ordered by day.
func (d *DB) ListReadings(ctx context.Context) ([]domain.TemperatureReading, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, day, celsius, created_at, updated_at FROM readings ORDER BY day;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TemperatureReading
	for rows.Next() {
		r := domain.TemperatureReading{Unit: domain.Celsius}
		if err := rows.Scan(&r.ID, &r.Day, &r.Value, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
