package cycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temptrack/internal/cycle"
	"temptrack/internal/domain"
)

var day0 = domain.MustParseDate("2026-01-01")

func day(n int) domain.Date { return day0.AddDays(n) }

func starts(offsets ...int) []domain.CycleStartEvent {
	out := make([]domain.CycleStartEvent, len(offsets))
	for i, o := range offsets {
		out[i] = domain.CycleStartEvent{Day: day(o)}
	}
	return out
}

func engine() cycle.Engine { return cycle.New(cycle.DefaultParams()) }

func TestBuildCycles(t *testing.T) {
	cycles := cycle.BuildCycles(starts(58, 0, 30, 30))
	require.Len(t, cycles, 3)

	assert.Equal(t, day(0), cycles[0].Start)
	assert.Equal(t, 30, cycles[0].Length)
	assert.Equal(t, day(30), *cycles[0].End)
	assert.Equal(t, 28, cycles[1].Length)
	assert.False(t, cycles[2].Closed())
	assert.Equal(t, 0, cycles[2].Length)
}

func TestBuildCycles_Backfill(t *testing.T) {
	cycles := cycle.BuildCycles(starts(0, 60, 31))
	require.Len(t, cycles, 3)
	assert.Equal(t, 31, cycles[0].Length)
	assert.Equal(t, 29, cycles[1].Length)
}

func TestPhaseTable_Partitions(t *testing.T) {
	e := engine()
	for length := 19; length <= 60; length++ {
		table := e.PhaseTable(length)
		require.Len(t, table, 4)
		require.Equal(t, 0, table[0].Start)
		for i := 1; i < len(table); i++ {
			require.Equal(t, table[i-1].End, table[i].Start, "gap or overlap at length %d", length)
		}
		require.Equal(t, length, table[3].End)

		for off := 0; off < length; off++ {
			hits := 0
			for _, w := range table {
				if w.Contains(off) {
					hits++
				}
			}
			require.Equal(t, 1, hits, "offset %d of length %d", off, length)
		}
	}
}

func TestPhaseTable_Default28(t *testing.T) {
	table := engine().PhaseTable(28)
	assert.Equal(t, cycle.PhaseTable{
		{Phase: domain.PhaseMenstrual, Start: 0, End: 5},
		{Phase: domain.PhaseFollicular, Start: 5, End: 13},
		{Phase: domain.PhaseOvulatory, Start: 13, End: 16},
		{Phase: domain.PhaseLuteal, Start: 16, End: 28},
	}, table)
}

func TestPhaseTable_ShortCyclesClamp(t *testing.T) {
	e := engine()

	t.Run("length 1", func(t *testing.T) {
		table := e.PhaseTable(1)
		assert.Equal(t, domain.PhaseMenstrual, table.Lookup(0))
		assert.Equal(t, 1, table[0].End)
		for _, w := range table[1:] {
			assert.Equal(t, w.Start, w.End, "%s should be empty", w.Phase)
		}
	})

	t.Run("ovulatory beats follicular", func(t *testing.T) {
		// centre 4 falls inside menstruation; ovulatory starts right after.
		table := e.PhaseTable(18)
		assert.Equal(t, domain.PhaseMenstrual, table.Lookup(4))
		assert.Equal(t, domain.PhaseOvulatory, table.Lookup(5))
		assert.Equal(t, table[1].Start, table[1].End, "follicular squeezed out")
	})

	t.Run("non positive length", func(t *testing.T) {
		assert.Equal(t, domain.PhaseMenstrual, e.PhaseTable(0).Lookup(0))
	})
}

func TestPhaseFor(t *testing.T) {
	e := engine()
	cycles := cycle.BuildCycles(starts(0, 30, 58))

	tests := []struct {
		name   string
		day    domain.Date
		phase  domain.Phase
		cday   int
		length int
		source cycle.LengthSource
	}{
		{"first day", day(0), domain.PhaseMenstrual, 1, 30, cycle.LengthClosed},
		{"follicular", day(10), domain.PhaseFollicular, 11, 30, cycle.LengthClosed},
		{"ovulatory centre of 30", day(16), domain.PhaseOvulatory, 17, 30, cycle.LengthClosed},
		{"luteal", day(29), domain.PhaseLuteal, 30, 30, cycle.LengthClosed},
		{"second cycle start", day(30), domain.PhaseMenstrual, 1, 28, cycle.LengthClosed},
		{"open cycle uses average", day(58 + 14), domain.PhaseOvulatory, 15, 29, cycle.LengthAverage},
		{"open cycle running long", day(58 + 40), domain.PhaseLuteal, 41, 29, cycle.LengthAverage},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.PhaseFor(tc.day, cycles)
			require.NoError(t, err)
			assert.Equal(t, tc.phase, got.Phase)
			assert.Equal(t, tc.cday, got.CycleDay)
			assert.Equal(t, tc.length, got.CycleLength)
			assert.Equal(t, tc.source, got.LengthSource)
		})
	}
}

func TestPhaseFor_SingleStartUsesDefault(t *testing.T) {
	got, err := engine().PhaseFor(day(2), cycle.BuildCycles(starts(1)))
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseMenstrual, got.Phase)
	assert.Equal(t, 28, got.CycleLength)
	assert.Equal(t, cycle.LengthDefault, got.LengthSource)
}

func TestPhaseFor_AverageWindow(t *testing.T) {
	p := cycle.DefaultParams()
	p.AverageWindow = 2
	// lengths 40, 26, 30: only the last two count.
	cycles := cycle.BuildCycles(starts(0, 40, 66, 96))
	got, err := cycle.New(p).PhaseFor(day(100), cycles)
	require.NoError(t, err)
	assert.Equal(t, 28, got.CycleLength)
}

func TestPhaseFor_DegenerateLength(t *testing.T) {
	e := engine()
	cycles := cycle.BuildCycles(starts(0, 1))
	got, err := e.PhaseFor(day(0), cycles)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseMenstrual, got.Phase)
	assert.Equal(t, 1, got.CycleLength)

	// the open cycle averages the single 1-day cycle
	got, err = e.PhaseFor(day(5), cycles)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseLuteal, got.Phase)
}

func TestPhaseFor_NoCycleData(t *testing.T) {
	e := engine()
	_, err := e.PhaseFor(day(0), nil)
	require.ErrorIs(t, err, cycle.ErrNoCycleData)

	_, err = e.PhaseFor(day(-1), cycle.BuildCycles(starts(0)))
	require.ErrorIs(t, err, cycle.ErrNoCycleData)
}

func TestCurrent_UsesAverageLength(t *testing.T) {
	h := domain.History{CycleStarts: starts(30, 0)}

	got, err := engine().Current(h, day(33))
	require.NoError(t, err)
	assert.Equal(t, day(30), got.CycleStart)
	assert.Equal(t, 4, got.CycleDay)
	assert.Equal(t, domain.PhaseMenstrual, got.Phase)
	assert.Equal(t, 30, got.CycleLength)
	assert.Equal(t, cycle.LengthAverage, got.LengthSource)

	_, err = engine().Current(domain.History{}, day(33))
	require.ErrorIs(t, err, cycle.ErrNoCycleData)
}

func TestStats(t *testing.T) {
	s := cycle.Stats(cycle.BuildCycles(starts(0, 30, 58)))
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 29.0, s.AverageLength, 1e-9)
	assert.InDelta(t, 1.41421, s.StdDev, 1e-4)
	assert.Equal(t, 28, s.MinLength)
	assert.Equal(t, 30, s.MaxLength)
}

func TestStats_Empty(t *testing.T) {
	assert.Equal(t, cycle.CycleStats{}, cycle.Stats(nil))
	s := cycle.Stats(cycle.BuildCycles(starts(0)))
	assert.Equal(t, 0, s.Count)
}

func TestPredict(t *testing.T) {
	p, err := engine().Predict(cycle.BuildCycles(starts(0, 30, 58)), day(70))
	require.NoError(t, err)
	assert.Equal(t, day(58), p.LastStart)
	assert.Equal(t, day(87), p.PredictedStart)
	// Ovulation is [predicted - luteal - 1, predicted - luteal + 1].
	assert.Equal(t, day(72), p.OvulationStart)
	assert.Equal(t, day(74), p.OvulationEnd)
	assert.Equal(t, 29, p.CycleLength)
	assert.False(t, p.LowConfidence)
	assert.Equal(t, cycle.ConfidenceMedium, p.Confidence)
	assert.Equal(t, 17, p.DaysUntil)
}

func TestPredict_SingleStartLowConfidence(t *testing.T) {
	p, err := engine().Predict(cycle.BuildCycles(starts(10)), day(12))
	require.NoError(t, err)
	assert.True(t, p.LowConfidence)
	assert.Equal(t, cycle.ConfidenceLow, p.Confidence)
	assert.Equal(t, day(38), p.PredictedStart)
	assert.Equal(t, day(23), p.OvulationStart)
	assert.Equal(t, day(25), p.OvulationEnd)
}

func TestPredict_HighConfidenceAndOverdue(t *testing.T) {
	p, err := engine().Predict(cycle.BuildCycles(starts(0, 28, 56, 84)), day(120))
	require.NoError(t, err)
	assert.Equal(t, cycle.ConfidenceHigh, p.Confidence)
	assert.Equal(t, day(112), p.PredictedStart)
	assert.Equal(t, -8, p.DaysUntil)
}

func TestPredict_NoStarts(t *testing.T) {
	_, err := engine().Predict(nil, day(0))
	require.ErrorIs(t, err, cycle.ErrInsufficientHistory)
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, cycle.DefaultParams().Validate())

	p := cycle.DefaultParams()
	p.MenstrualDays = 0
	require.Error(t, p.Validate())

	p = cycle.DefaultParams()
	p.OvulationHalfWidth = 0
	require.NoError(t, p.Validate())
}
