package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"temptrack/internal/adapter/storetest"
	"temptrack/internal/domain"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) domain.Store {
		s, err := Open(filepath.Join(t.TempDir(), "data.json"))
		require.NoError(t, err)
		return s
	})
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	day := domain.MustParseDate("2026-02-14")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.UpsertReading(ctx, day, 36.6, time.Now())
	require.NoError(t, err)
	_, err = s.AddCycleStart(ctx, day, time.Now())
	require.NoError(t, err)
	first, err := s.AddNote(ctx, day, domain.NoteSex, "yes", time.Now())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	readings, err := s.ListReadings(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, "2026-02-14", readings[0].Day.String())
	assert.InDelta(t, 36.6, readings[0].Value, 1e-9)

	starts, err := s.ListCycleStarts(ctx)
	require.NoError(t, err)
	assert.Len(t, starts, 1)

	second, err := s.AddNote(ctx, day, domain.NoteMood, "ok", time.Now())
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestFailedWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "data.json")
	day := domain.MustParseDate("2026-02-14")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.UpsertReading(ctx, day, 36.5, time.Now())
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))

	_, err = s.UpsertReading(ctx, day, 37.0, time.Now())
	assert.Error(t, err)
	created, err := s.AddCycleStart(ctx, day, time.Now())
	assert.Error(t, err)
	assert.False(t, created)
	_, err = s.AddNote(ctx, day, domain.NoteMood, "tired", time.Now())
	assert.Error(t, err)
	_, err = s.PurgeBefore(ctx, day.AddDays(1))
	assert.Error(t, err)
	deleted, err := s.DeleteReading(ctx, day)
	assert.Error(t, err)
	assert.False(t, deleted)

	readings, err := s.ListReadings(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.InDelta(t, 36.5, readings[0].Value, 1e-9)
	starts, err := s.ListCycleStarts(ctx)
	require.NoError(t, err)
	assert.Empty(t, starts)
	notes, err := s.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	require.NoError(t, os.MkdirAll(dir, 0o750))
	created, err = s.AddCycleStart(ctx, day, time.Now())
	require.NoError(t, err)
	assert.True(t, created, "retry after a failed write must record the start")

	reopened, err := Open(path)
	require.NoError(t, err)
	starts, err = reopened.ListCycleStarts(ctx)
	require.NoError(t, err)
	assert.Len(t, starts, 1)
	readings, err = reopened.ListReadings(ctx)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.InDelta(t, 36.5, readings[0].Value, 1e-9)
}
