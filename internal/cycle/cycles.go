package cycle

import (
	"slices"
	"sort"

	"temptrack/internal/domain"
)

// Cycle spans [Start, End). End is nil for the most recent, still open
// cycle. Cycles are derived on demand and never stored.
type Cycle struct {
	Start  domain.Date  `json:"start"`
	End    *domain.Date `json:"end,omitempty"`
	Length int          `json:"length,omitempty"`
}

// Closed reports whether a later start ends the cycle.
func (c Cycle) Closed() bool { return c.End != nil }

// BuildCycles partitions the timeline at every start day. Input order does
// not matter and duplicate days collapse into one start, so a backfilled
// start simply splits the cycle it falls into.
func BuildCycles(starts []domain.CycleStartEvent) []Cycle {
	days := make([]domain.Date, 0, len(starts))
	for _, s := range starts {
		if !s.Day.IsZero() {
			days = append(days, s.Day)
		}
	}
	slices.SortFunc(days, domain.Date.Compare)
	days = slices.CompactFunc(days, domain.Date.Equal)

	out := make([]Cycle, len(days))
	for i, d := range days {
		out[i] = Cycle{Start: d}
		if i+1 < len(days) {
			end := days[i+1]
			out[i].End = &end
			out[i].Length = end.DaysSince(d)
		}
	}
	return out
}

// locate returns the index of the last cycle starting on or before day,
// or -1.
func locate(day domain.Date, cycles []Cycle) int {
	i := sort.Search(len(cycles), func(i int) bool { return cycles[i].Start.After(day) })
	return i - 1
}

func closedLengths(cycles []Cycle) []int {
	var out []int
	for _, c := range cycles {
		if c.Closed() {
			out = append(out, c.Length)
		}
	}
	return out
}
