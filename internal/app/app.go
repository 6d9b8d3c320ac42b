// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"

	"temptrack/internal/domain"
)

// ErrValidation marks input rejected by a service. The wrapped message
// says which field was wrong.
var ErrValidation = errors.New("validation failed")

// HistoryReader is the read side shared by every analysis use case.
type HistoryReader interface {
	ListReadings(ctx context.Context) ([]domain.TemperatureReading, error)
	ListCycleStarts(ctx context.Context) ([]domain.CycleStartEvent, error)
	ListNotes(ctx context.Context) ([]domain.Note, error)
}

// LoadHistory reads the complete history from r.
func LoadHistory(ctx context.Context, r HistoryReader) (domain.History, error) {
	readings, err := r.ListReadings(ctx)
	if err != nil {
		return domain.History{}, err
	}
	starts, err := r.ListCycleStarts(ctx)
	if err != nil {
		return domain.History{}, err
	}
	notes, err := r.ListNotes(ctx)
	if err != nil {
		return domain.History{}, err
	}
	return domain.History{Readings: readings, CycleStarts: starts, Notes: notes}, nil
}

// newestFirst returns up to limit items from the end of an ascending
// slice, most recent first.
func newestFirst[T any](items []T, limit int) []T {
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}
	out := make([]T, 0, limit)
	for i := len(items) - 1; i >= len(items)-limit; i-- {
		out = append(out, items[i])
	}
	return out
}
