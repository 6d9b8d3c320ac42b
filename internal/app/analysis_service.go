package app

import (
	"context"

	"temptrack/internal/cycle"
	"temptrack/internal/domain"
)

// AnalysisService produces the summary shown on the analysis page.
type AnalysisService struct {
	history HistoryReader
	engine  cycle.Engine
}

// NewAnalysisService creates an AnalysisService backed by the given history.
func NewAnalysisService(history HistoryReader, engine cycle.Engine) *AnalysisService {
	return &AnalysisService{history: history, engine: engine}
}

// DataCounts is the number of stored rows of each kind.
type DataCounts struct {
	Readings    int `json:"readings"`
	CycleStarts int `json:"cycleStarts"`
	Notes       int `json:"notes"`
}

// Analysis aggregates the derived figures. Temperature and Shift are nil
// when there is not enough data for them.
type Analysis struct {
	Counts       DataCounts              `json:"counts"`
	Temperature  *cycle.TemperatureStats `json:"temperature"`
	Shift        *cycle.TemperatureShift `json:"shift"`
	Distribution map[domain.Phase]int    `json:"distribution"`
	Cycles       cycle.CycleStats        `json:"cycles"`
}

// Summary computes the analysis as of today.
func (s *AnalysisService) Summary(ctx context.Context, today domain.Date) (*Analysis, error) {
	h, err := LoadHistory(ctx, s.history)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		Counts: DataCounts{
			Readings:    len(h.Readings),
			CycleStarts: len(h.CycleStarts),
			Notes:       len(h.Notes),
		},
		Distribution: s.engine.PhaseDistribution(h),
		Cycles:       cycle.Stats(cycle.BuildCycles(h.CycleStarts)),
	}
	if ts, ok := cycle.ComputeTemperatureStats(h.Readings); ok {
		a.Temperature = &ts
	}
	if shift, ok := s.engine.TemperatureShift(h, today); ok {
		a.Shift = &shift
	}
	return a, nil
}
