package app

import (
	"context"
	"fmt"

	"temptrack/internal/cycle"
	"temptrack/internal/domain"
)

const maxChartDays = 366

// ChartsService encapsulates chart data retrieval use cases.
type ChartsService struct {
	history HistoryReader
	engine  cycle.Engine
}

// NewChartsService creates a ChartsService backed by the given history.
func NewChartsService(history HistoryReader, engine cycle.Engine) *ChartsService {
	return &ChartsService{history: history, engine: engine}
}

// DayPoint is a single data point returned by GetDaily.
type DayPoint struct {
	Day         domain.Date       `json:"day"`
	Temperature *TemperaturePoint `json:"temperature"`
	Phase       domain.Phase      `json:"phase,omitempty"`
	CycleDay    int               `json:"cycleDay,omitempty"`
	CycleStart  bool              `json:"cycleStart"`
	Notes       int               `json:"notes"`
}

// TemperaturePoint is the optional temperature within a DayPoint.
type TemperaturePoint struct {
	Value float64     `json:"value"`
	Unit  domain.Unit `json:"unit"`
}

// GetDaily returns one point per day for the last days days ending at
// today, with temperatures converted to unit.
func (s *ChartsService) GetDaily(ctx context.Context, days int, unit domain.Unit, today domain.Date) ([]DayPoint, error) {
	if unit != domain.Celsius && unit != domain.Fahrenheit {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidUnit, unit)
	}
	days = max(1, min(days, maxChartDays))

	h, err := LoadHistory(ctx, s.history)
	if err != nil {
		return nil, err
	}
	cycles := cycle.BuildCycles(h.CycleStarts)

	readings := make(map[domain.Date]domain.TemperatureReading, len(h.Readings))
	for _, r := range h.Readings {
		readings[r.Day] = r
	}
	starts := make(map[domain.Date]bool, len(cycles))
	for _, c := range cycles {
		starts[c.Start] = true
	}
	notes := cycle.NotesByDay(h.Notes)

	points := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := today.AddDays(-i)
		p := DayPoint{Day: d, CycleStart: starts[d], Notes: len(notes[d])}
		if r, ok := readings[d]; ok {
			p.Temperature = &TemperaturePoint{Value: r.In(unit).Value, Unit: unit}
		}
		if a, err := s.engine.PhaseFor(d, cycles); err == nil {
			p.Phase = a.Phase
			p.CycleDay = a.CycleDay
		}
		points = append(points, p)
	}
	return points, nil
}
