package domain

import (
	"context"
	"time"
)

// CycleStartEvent marks day 1 of a new cycle.
type CycleStartEvent struct {
	Day       Date      `json:"day"`
	CreatedAt time.Time `json:"createdAt"`
}

// Phase labels a day within a cycle.
type Phase string

// The four phases, in cycle order.
const (
	PhaseMenstrual  Phase = "Menstrual"
	PhaseFollicular Phase = "Follicular"
	PhaseOvulatory  Phase = "Ovulatory"
	PhaseLuteal     Phase = "Luteal"
)

// Phases lists every phase in cycle order.
var Phases = []Phase{PhaseMenstrual, PhaseFollicular, PhaseOvulatory, PhaseLuteal}

// CycleStartRepository is the port for cycle-start persistence.
type CycleStartRepository interface {
	// AddCycleStart records a start on day. A start already recorded on
	// the same day is left untouched and created is false.
	AddCycleStart(ctx context.Context, day Date, at time.Time) (created bool, err error)
	DeleteCycleStart(ctx context.Context, day Date) (bool, error)
	// ListCycleStarts returns every start ordered by day ascending.
	ListCycleStarts(ctx context.Context) ([]CycleStartEvent, error)
}
