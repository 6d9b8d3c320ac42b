package cycle

import (
	"math"

	"temptrack/internal/domain"
)

// Confidence grades a prediction by how many closed cycles back it.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Prediction is the expected next cycle start and ovulation window. The
// ovulation window is inclusive on both ends.
type Prediction struct {
	LastStart      domain.Date `json:"lastStart"`
	PredictedStart domain.Date `json:"predictedStart"`
	OvulationStart domain.Date `json:"ovulationStart"`
	OvulationEnd   domain.Date `json:"ovulationEnd"`
	CycleLength    int         `json:"cycleLength"`
	LowConfidence  bool        `json:"lowConfidence"`
	Confidence     Confidence  `json:"confidence"`
	// DaysUntil counts from today to PredictedStart; negative when the
	// predicted start has already passed.
	DaysUntil int `json:"daysUntil"`
}

// Predict anchors on the most recent start and adds the rounded average
// closed-cycle length, or DefaultCycleLength flagged LowConfidence when no
// cycle has closed yet.
func (e Engine) Predict(cycles []Cycle, today domain.Date) (Prediction, error) {
	if len(cycles) == 0 {
		return Prediction{}, ErrInsufficientHistory
	}
	last := cycles[len(cycles)-1].Start

	stats := Stats(cycles)
	p := Prediction{LastStart: last}
	switch {
	case stats.Count == 0:
		p.CycleLength = e.p.DefaultCycleLength
		p.LowConfidence = true
		p.Confidence = ConfidenceLow
	case stats.Count < 3:
		p.CycleLength = int(math.Round(stats.AverageLength))
		p.Confidence = ConfidenceMedium
	default:
		p.CycleLength = int(math.Round(stats.AverageLength))
		p.Confidence = ConfidenceHigh
	}

	p.PredictedStart = last.AddDays(p.CycleLength)
	ovulation := p.PredictedStart.AddDays(-e.p.LutealDays)
	p.OvulationStart = ovulation.AddDays(-e.p.OvulationHalfWidth)
	p.OvulationEnd = ovulation.AddDays(e.p.OvulationHalfWidth)
	p.DaysUntil = p.PredictedStart.DaysSince(today)
	return p, nil
}
