package app

import (
	"context"
	"fmt"
	"time"

	"temptrack/internal/domain"
)

// Plausible basal body temperatures accepted at input.
const (
	minCelsius    = 30.0
	maxCelsius    = 45.0
	minFahrenheit = 86.0
	maxFahrenheit = 113.0
)

// ReadingService encapsulates temperature-logging use cases.
type ReadingService struct {
	repo domain.ReadingRepository
}

// NewReadingService creates a ReadingService backed by the given repository.
func NewReadingService(repo domain.ReadingRepository) *ReadingService {
	return &ReadingService{repo: repo}
}

// Record validates a reading, normalizes it to Celsius and stores it,
// replacing any reading already logged for day.
func (s *ReadingService) Record(ctx context.Context, day domain.Date, value float64, unit domain.Unit) (*domain.TemperatureReading, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrValidation)
	}
	switch unit {
	case domain.Celsius:
		if value < minCelsius || value > maxCelsius {
			return nil, fmt.Errorf("%w: value must be within [%.0f, %.0f] °C", ErrValidation, minCelsius, maxCelsius)
		}
	case domain.Fahrenheit:
		if value < minFahrenheit || value > maxFahrenheit {
			return nil, fmt.Errorf("%w: value must be within [%.0f, %.0f] °F", ErrValidation, minFahrenheit, maxFahrenheit)
		}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidUnit, unit)
	}

	celsius := domain.ConvertTemperature(value, unit, domain.Celsius)
	return s.repo.UpsertReading(ctx, day, celsius, time.Now())
}

// Delete removes the reading logged for day.
func (s *ReadingService) Delete(ctx context.Context, day domain.Date) (bool, error) {
	if day.IsZero() {
		return false, fmt.Errorf("%w: day is required", ErrValidation)
	}
	return s.repo.DeleteReading(ctx, day)
}

// ListRecent returns up to limit readings, newest first, expressed in unit.
func (s *ReadingService) ListRecent(ctx context.Context, limit int, unit domain.Unit) ([]domain.TemperatureReading, error) {
	all, err := s.repo.ListReadings(ctx)
	if err != nil {
		return nil, err
	}
	out := newestFirst(all, limit)
	for i := range out {
		out[i] = out[i].In(unit)
	}
	return out, nil
}
