// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// TemperatureReading is a basal body temperature logged for one day.
// Stores keep at most one reading per day, normalized to Celsius.
type TemperatureReading struct {
	ID        int64     `json:"id"`
	Day       Date      `json:"day"`
	Value     float64   `json:"value"`
	Unit      Unit      `json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Celsius returns the reading's value in degrees Celsius.
func (r TemperatureReading) Celsius() float64 {
	return ConvertTemperature(r.Value, r.Unit, Celsius)
}

// In returns a copy of r expressed in unit u.
func (r TemperatureReading) In(u Unit) TemperatureReading {
	r.Value = ConvertTemperature(r.Value, r.Unit, u)
	r.Unit = u
	return r
}

// ReadingRepository is the port for temperature persistence.
type ReadingRepository interface {
	// UpsertReading stores the Celsius value for day, replacing any
	// existing reading on that day.
	UpsertReading(ctx context.Context, day Date, celsius float64, at time.Time) (*TemperatureReading, error)
	DeleteReading(ctx context.Context, day Date) (bool, error)
	// ListReadings returns every reading ordered by day ascending.
	ListReadings(ctx context.Context) ([]TemperatureReading, error)
}
