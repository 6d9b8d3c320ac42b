// Package storetest holds the behaviour every domain.Store implementation
// must share. Adapter packages call Run from their own tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temptrack/internal/domain"
)

// Factory returns an empty store. Run closes it when the subtest ends.
type Factory func(t *testing.T) domain.Store

var (
	day0 = domain.MustParseDate("2026-03-01")
	at   = time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC)
)

func day(n int) domain.Date { return day0.AddDays(n) }

// Run exercises newStore against the shared store contract.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s domain.Store)
	}{
		{"ReadingUpsert", testReadingUpsert},
		{"ReadingDelete", testReadingDelete},
		{"ReadingOrder", testReadingOrder},
		{"CycleStartDuplicate", testCycleStartDuplicate},
		{"CycleStartDelete", testCycleStartDelete},
		{"Notes", testNotes},
		{"PurgeBefore", testPurgeBefore},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { _ = s.Close() })
			tc.fn(t, s)
		})
	}
}

func testReadingUpsert(t *testing.T, s domain.Store) {
	ctx := context.Background()

	first, err := s.UpsertReading(ctx, day(0), 36.4, at)
	require.NoError(t, err)
	assert.True(t, first.Day.Equal(day(0)))
	assert.InDelta(t, 36.4, first.Value, 1e-9)
	assert.Equal(t, domain.Celsius, first.Unit)

	second, err := s.UpsertReading(ctx, day(0), 36.7, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 36.7, second.Value, 1e-9)
	assert.True(t, second.UpdatedAt.After(second.CreatedAt))

	all, err := s.ListReadings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.InDelta(t, 36.7, all[0].Value, 1e-9)
}

func testReadingDelete(t *testing.T, s domain.Store) {
	ctx := context.Background()

	_, err := s.UpsertReading(ctx, day(0), 36.4, at)
	require.NoError(t, err)

	ok, err := s.DeleteReading(ctx, day(0))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteReading(ctx, day(0))
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := s.ListReadings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testReadingOrder(t *testing.T, s domain.Store) {
	ctx := context.Background()
	for _, n := range []int{5, -3, 0, 12} {
		_, err := s.UpsertReading(ctx, day(n), 36.5, at)
		require.NoError(t, err)
	}

	all, err := s.ListReadings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, n := range []int{-3, 0, 5, 12} {
		assert.Equal(t, day(n).String(), all[i].Day.String())
	}
}

func testCycleStartDuplicate(t *testing.T, s domain.Store) {
	ctx := context.Background()

	created, err := s.AddCycleStart(ctx, day(28), at)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.AddCycleStart(ctx, day(0), at)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.AddCycleStart(ctx, day(28), at.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, created)

	all, err := s.ListCycleStarts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, day(0).String(), all[0].Day.String())
	assert.Equal(t, day(28).String(), all[1].Day.String())
	assert.True(t, all[1].CreatedAt.Equal(at), "duplicate must not overwrite the original start")
}

func testCycleStartDelete(t *testing.T, s domain.Store) {
	ctx := context.Background()

	_, err := s.AddCycleStart(ctx, day(0), at)
	require.NoError(t, err)

	ok, err := s.DeleteCycleStart(ctx, day(0))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteCycleStart(ctx, day(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func testNotes(t *testing.T, s domain.Store) {
	ctx := context.Background()

	late, err := s.AddNote(ctx, day(2), domain.NoteMood, "calm", at)
	require.NoError(t, err)
	early, err := s.AddNote(ctx, day(1), domain.NoteSymptoms, "cramps", at)
	require.NoError(t, err)
	sameDay, err := s.AddNote(ctx, day(2), domain.NoteOther, "slept badly", at)
	require.NoError(t, err)
	assert.NotEqual(t, late, sameDay)

	all, err := s.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{early, late, sameDay}, []int64{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, domain.NoteSymptoms, all[0].Category)
	assert.Equal(t, "cramps", all[0].Text)

	ok, err := s.DeleteNote(ctx, late)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteNote(ctx, late)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err = s.ListNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testPurgeBefore(t *testing.T, s domain.Store) {
	ctx := context.Background()
	for _, n := range []int{0, 1, 10} {
		_, err := s.UpsertReading(ctx, day(n), 36.5, at)
		require.NoError(t, err)
	}
	for _, n := range []int{0, 10} {
		_, err := s.AddCycleStart(ctx, day(n), at)
		require.NoError(t, err)
	}
	for _, n := range []int{1, 2, 10} {
		_, err := s.AddNote(ctx, day(n), domain.NoteOther, "x", at)
		require.NoError(t, err)
	}

	res, err := s.PurgeBefore(ctx, day(2))
	require.NoError(t, err)
	assert.Equal(t, domain.PurgeResult{Readings: 2, CycleStarts: 1, Notes: 1}, res)

	readings, err := s.ListReadings(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, day(10).String(), readings[0].Day.String())

	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}
