package app

import (
	"context"
	"fmt"
	"time"

	"temptrack/internal/cycle"
	"temptrack/internal/domain"
)

// CycleService records cycle starts and answers phase and prediction
// queries. Every query reloads the starts and recomputes.
type CycleService struct {
	repo   domain.CycleStartRepository
	engine cycle.Engine
}

// NewCycleService creates a CycleService backed by the given repository.
func NewCycleService(repo domain.CycleStartRepository, engine cycle.Engine) *CycleService {
	return &CycleService{repo: repo, engine: engine}
}

// StartCycle records day as the first day of a cycle. A start already
// recorded on day is kept and created is false.
func (s *CycleService) StartCycle(ctx context.Context, day domain.Date) (created bool, err error) {
	if day.IsZero() {
		return false, fmt.Errorf("%w: day is required", ErrValidation)
	}
	return s.repo.AddCycleStart(ctx, day, time.Now())
}

// DeleteStart removes the start recorded on day.
func (s *CycleService) DeleteStart(ctx context.Context, day domain.Date) (bool, error) {
	if day.IsZero() {
		return false, fmt.Errorf("%w: day is required", ErrValidation)
	}
	return s.repo.DeleteCycleStart(ctx, day)
}

// ListCycles derives all cycles from the recorded starts.
func (s *CycleService) ListCycles(ctx context.Context) ([]cycle.Cycle, error) {
	starts, err := s.repo.ListCycleStarts(ctx)
	if err != nil {
		return nil, err
	}
	return cycle.BuildCycles(starts), nil
}

// PhaseFor returns the phase of day.
func (s *CycleService) PhaseFor(ctx context.Context, day domain.Date) (cycle.PhaseAssignment, error) {
	cycles, err := s.ListCycles(ctx)
	if err != nil {
		return cycle.PhaseAssignment{}, err
	}
	return s.engine.PhaseFor(day, cycles)
}

// Stats summarises closed cycle lengths.
func (s *CycleService) Stats(ctx context.Context) (cycle.CycleStats, error) {
	cycles, err := s.ListCycles(ctx)
	if err != nil {
		return cycle.CycleStats{}, err
	}
	return cycle.Stats(cycles), nil
}

// Predict returns the expected next start and ovulation window.
func (s *CycleService) Predict(ctx context.Context, today domain.Date) (cycle.Prediction, error) {
	cycles, err := s.ListCycles(ctx)
	if err != nil {
		return cycle.Prediction{}, err
	}
	return s.engine.Predict(cycles, today)
}

// Current returns today's cycle day and phase.
func (s *CycleService) Current(ctx context.Context, today domain.Date) (cycle.PhaseAssignment, error) {
	return s.PhaseFor(ctx, today)
}
