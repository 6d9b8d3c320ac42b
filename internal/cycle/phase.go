package cycle

import (
	"fmt"
	"math"

	"temptrack/internal/domain"
)

// Window is the half-open offset range [Start, End) a phase covers within
// a cycle. Start == End means the phase was squeezed out.
type Window struct {
	Phase domain.Phase `json:"phase"`
	Start int          `json:"start"`
	End   int          `json:"end"`
}

// Contains reports whether offset falls inside w.
func (w Window) Contains(offset int) bool { return offset >= w.Start && offset < w.End }

// PhaseTable lists the four phase windows of one cycle length in cycle
// order. The windows are contiguous and together cover [0, length).
type PhaseTable []Window

// Lookup returns the phase of a day offset. Offsets at or past the end of
// the table belong to a cycle that is running long and count as Luteal.
func (t PhaseTable) Lookup(offset int) domain.Phase {
	for _, w := range t {
		if w.Contains(offset) {
			return w.Phase
		}
	}
	return domain.PhaseLuteal
}

// PhaseTable computes the phase windows for a cycle of the given length.
//
// Menstrual covers the first MenstrualDays. Ovulatory is centred on
// length-LutealDays with ±OvulationHalfWidth, and is clamped so it never
// starts inside Menstrual nor ends past the cycle. Follicular and Luteal
// take whatever lies between. Short cycles shrink Follicular, Ovulatory
// and Luteal in that priority order but never produce an error.
func (e Engine) PhaseTable(length int) PhaseTable {
	if length < 1 {
		length = 1
	}
	menstrualEnd := clamp(e.p.MenstrualDays, 0, length)
	centre := length - e.p.LutealDays
	ovStart := clamp(centre-e.p.OvulationHalfWidth, menstrualEnd, length)
	ovEnd := clamp(centre+e.p.OvulationHalfWidth+1, ovStart, length)

	return PhaseTable{
		{Phase: domain.PhaseMenstrual, Start: 0, End: menstrualEnd},
		{Phase: domain.PhaseFollicular, Start: menstrualEnd, End: ovStart},
		{Phase: domain.PhaseOvulatory, Start: ovStart, End: ovEnd},
		{Phase: domain.PhaseLuteal, Start: ovEnd, End: length},
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// LengthSource says where the cycle length behind a phase came from.
type LengthSource string

const (
	LengthClosed  LengthSource = "closed"
	LengthAverage LengthSource = "average"
	LengthDefault LengthSource = "default"
)

// PhaseAssignment is the phase of one day together with the cycle context
// it was derived from. CycleDay is 1-based.
type PhaseAssignment struct {
	Day          domain.Date  `json:"day"`
	Phase        domain.Phase `json:"phase"`
	CycleDay     int          `json:"cycleDay"`
	CycleStart   domain.Date  `json:"cycleStart"`
	CycleLength  int          `json:"cycleLength"`
	LengthSource LengthSource `json:"lengthSource"`
}

// PhaseFor classifies day within cycles, which must come from BuildCycles.
func (e Engine) PhaseFor(day domain.Date, cycles []Cycle) (PhaseAssignment, error) {
	idx := locate(day, cycles)
	if idx < 0 {
		return PhaseAssignment{}, fmt.Errorf("%w: %s", ErrNoCycleData, day)
	}
	c := cycles[idx]
	length, src := e.expectedLength(c, cycles)
	offset := day.DaysSince(c.Start)

	return PhaseAssignment{
		Day:          day,
		Phase:        e.PhaseTable(length).Lookup(offset),
		CycleDay:     offset + 1,
		CycleStart:   c.Start,
		CycleLength:  length,
		LengthSource: src,
	}, nil
}

// expectedLength is the closed cycle's own length, or for the open cycle
// the rounded mean of the most recent closed cycles, or the default.
func (e Engine) expectedLength(c Cycle, cycles []Cycle) (int, LengthSource) {
	if c.Closed() {
		return c.Length, LengthClosed
	}
	lengths := closedLengths(cycles)
	if len(lengths) == 0 {
		return e.p.DefaultCycleLength, LengthDefault
	}
	if len(lengths) > e.p.AverageWindow {
		lengths = lengths[len(lengths)-e.p.AverageWindow:]
	}
	mean, _ := meanStdDev(intsToFloats(lengths))
	return int(math.Round(mean)), LengthAverage
}
