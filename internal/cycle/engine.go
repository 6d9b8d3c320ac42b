// Package cycle derives menstrual cycles, phase labels, statistics and
// predictions from one user's logged history.
//
// The package holds no state. An Engine carries only its tuning Params;
// every method recomputes from the events passed in, so callers always
// hand over the complete, current history read from their store.
package cycle

import (
	"errors"
	"fmt"

	"temptrack/internal/domain"
)

var (
	// ErrNoCycleData indicates that no cycle start precedes the queried day.
	ErrNoCycleData = errors.New("no cycle start recorded on or before this day")
	// ErrInsufficientHistory indicates that no cycle start exists at all,
	// so a prediction has nothing to anchor to.
	ErrInsufficientHistory = errors.New("no cycle start recorded yet")
)

// Params tunes the phase and prediction heuristics. All values are days
// unless stated otherwise.
type Params struct {
	MenstrualDays      int `yaml:"menstrual_days"`
	LutealDays         int `yaml:"luteal_days"`
	OvulationHalfWidth int `yaml:"ovulation_half_width"`
	DefaultCycleLength int `yaml:"default_cycle_length"`
	// AverageWindow is how many of the most recent closed cycles give the
	// expected length of the open cycle.
	AverageWindow     int `yaml:"average_window"`
	ShiftLookbackDays int `yaml:"shift_lookback_days"`
	// MinShiftReadings is the number of readings needed in each of the
	// follicular and luteal phases before a temperature shift is reported.
	MinShiftReadings int `yaml:"min_shift_readings"`
}

// DefaultParams returns the stock heuristics: a 5-day period, a 14-day
// luteal phase, a ±1 day ovulation window and a 28-day default cycle.
func DefaultParams() Params {
	return Params{
		MenstrualDays:      5,
		LutealDays:         14,
		OvulationHalfWidth: 1,
		DefaultCycleLength: 28,
		AverageWindow:      6,
		ShiftLookbackDays:  35,
		MinShiftReadings:   3,
	}
}

// Validate rejects parameters the heuristics cannot work with.
func (p Params) Validate() error {
	switch {
	case p.MenstrualDays < 1:
		return fmt.Errorf("menstrual_days must be >= 1, got %d", p.MenstrualDays)
	case p.LutealDays < 1:
		return fmt.Errorf("luteal_days must be >= 1, got %d", p.LutealDays)
	case p.OvulationHalfWidth < 0:
		return fmt.Errorf("ovulation_half_width must be >= 0, got %d", p.OvulationHalfWidth)
	case p.DefaultCycleLength < 1:
		return fmt.Errorf("default_cycle_length must be >= 1, got %d", p.DefaultCycleLength)
	case p.AverageWindow < 1:
		return fmt.Errorf("average_window must be >= 1, got %d", p.AverageWindow)
	case p.ShiftLookbackDays < 1:
		return fmt.Errorf("shift_lookback_days must be >= 1, got %d", p.ShiftLookbackDays)
	case p.MinShiftReadings < 1:
		return fmt.Errorf("min_shift_readings must be >= 1, got %d", p.MinShiftReadings)
	}
	return nil
}

// Engine evaluates the cycle heuristics for a fixed set of Params.
type Engine struct {
	p Params
}

// New returns an Engine using p.
func New(p Params) Engine {
	return Engine{p: p}
}

// Params returns the engine's parameters.
func (e Engine) Params() Params { return e.p }

// Current returns the phase assignment for today given the full history.
func (e Engine) Current(h domain.History, today domain.Date) (PhaseAssignment, error) {
	return e.PhaseFor(today, BuildCycles(h.CycleStarts))
}
