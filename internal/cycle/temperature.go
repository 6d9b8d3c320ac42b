package cycle

import (
	"slices"
	"strings"

	"temptrack/internal/domain"
)

// TemperatureStats summarises readings in degrees Celsius.
type TemperatureStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stdDev"`
}

// ComputeTemperatureStats normalizes every reading to Celsius before
// averaging. ok is false when there are no readings.
func ComputeTemperatureStats(readings []domain.TemperatureReading) (stats TemperatureStats, ok bool) {
	if len(readings) == 0 {
		return TemperatureStats{}, false
	}
	vals := make([]float64, len(readings))
	for i, r := range readings {
		vals[i] = r.Celsius()
	}
	mean, sd := meanStdDev(vals)
	return TemperatureStats{
		Count:  len(vals),
		Mean:   mean,
		Min:    slices.Min(vals),
		Max:    slices.Max(vals),
		StdDev: sd,
	}, true
}

// TemperatureShift is the rise of the luteal mean over the follicular
// mean, the biphasic pattern BBT charting looks for.
type TemperatureShift struct {
	FollicularMean     float64 `json:"follicularMean"`
	LutealMean         float64 `json:"lutealMean"`
	ShiftCelsius       float64 `json:"shiftCelsius"`
	ShiftFahrenheit    float64 `json:"shiftFahrenheit"`
	FollicularReadings int     `json:"follicularReadings"`
	LutealReadings     int     `json:"lutealReadings"`
}

// TemperatureShift compares follicular and luteal readings taken within
// the last ShiftLookbackDays. ok is false until both phases have at least
// MinShiftReadings readings.
func (e Engine) TemperatureShift(h domain.History, today domain.Date) (shift TemperatureShift, ok bool) {
	cycles := BuildCycles(h.CycleStarts)
	cutoff := today.AddDays(-e.p.ShiftLookbackDays)

	var follicular, luteal []float64
	for _, r := range h.Readings {
		if r.Day.Before(cutoff) || r.Day.After(today) {
			continue
		}
		a, err := e.PhaseFor(r.Day, cycles)
		if err != nil {
			continue
		}
		switch a.Phase {
		case domain.PhaseFollicular:
			follicular = append(follicular, r.Celsius())
		case domain.PhaseLuteal:
			luteal = append(luteal, r.Celsius())
		}
	}
	if len(follicular) < e.p.MinShiftReadings || len(luteal) < e.p.MinShiftReadings {
		return TemperatureShift{}, false
	}

	fMean, _ := meanStdDev(follicular)
	lMean, _ := meanStdDev(luteal)
	delta := lMean - fMean
	return TemperatureShift{
		FollicularMean:     fMean,
		LutealMean:         lMean,
		ShiftCelsius:       delta,
		ShiftFahrenheit:    delta * 9 / 5,
		FollicularReadings: len(follicular),
		LutealReadings:     len(luteal),
	}, true
}

// PhaseDistribution counts readings per phase. Readings before the first
// cycle start have no phase and are not counted.
func (e Engine) PhaseDistribution(h domain.History) map[domain.Phase]int {
	cycles := BuildCycles(h.CycleStarts)
	out := make(map[domain.Phase]int, len(domain.Phases))
	for _, p := range domain.Phases {
		out[p] = 0
	}
	for _, r := range h.Readings {
		if a, err := e.PhaseFor(r.Day, cycles); err == nil {
			out[a.Phase]++
		}
	}
	return out
}

// AnnotatedReading is a reading joined with its derived phase and the
// notes of the same day. Phase is empty and CycleDay 0 when no cycle
// start precedes the reading.
type AnnotatedReading struct {
	Day      domain.Date   `json:"day"`
	Celsius  float64       `json:"celsius"`
	Phase    domain.Phase  `json:"phase,omitempty"`
	CycleDay int           `json:"cycleDay,omitempty"`
	Notes    []domain.Note `json:"notes,omitempty"`
}

// Annotate returns one row per reading, ordered by day.
func (e Engine) Annotate(h domain.History) []AnnotatedReading {
	cycles := BuildCycles(h.CycleStarts)
	notes := NotesByDay(h.Notes)

	readings := slices.Clone(h.Readings)
	slices.SortStableFunc(readings, func(a, b domain.TemperatureReading) int { return a.Day.Compare(b.Day) })

	out := make([]AnnotatedReading, 0, len(readings))
	for _, r := range readings {
		row := AnnotatedReading{Day: r.Day, Celsius: r.Celsius(), Notes: notes[r.Day]}
		if a, err := e.PhaseFor(r.Day, cycles); err == nil {
			row.Phase = a.Phase
			row.CycleDay = a.CycleDay
		}
		out = append(out, row)
	}
	return out
}

// NotesByDay groups notes by their day, keeping input order within a day.
func NotesByDay(notes []domain.Note) map[domain.Date][]domain.Note {
	out := make(map[domain.Date][]domain.Note)
	for _, n := range notes {
		out[n.Day] = append(out[n.Day], n)
	}
	return out
}

// JoinNotes renders notes as "Category: text; Category: text".
func JoinNotes(notes []domain.Note) string {
	parts := make([]string, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, string(n.Category)+": "+n.Text)
	}
	return strings.Join(parts, "; ")
}
