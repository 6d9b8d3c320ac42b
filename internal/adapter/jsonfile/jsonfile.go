// Package jsonfile implements a store persisted as a single JSON document.
// Every successful write rewrites the file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"temptrack/internal/adapter/memory"
	"temptrack/internal/domain"
)

// Store keeps the data in memory and snapshots it to path.
type Store struct {
	*memory.DB
	mu   sync.Mutex
	path string
}

var _ domain.Store = (*Store)(nil)

// Open loads path, creating its directory when needed. A missing file is
// an empty store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("jsonfile: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	s := &Store{DB: memory.New(), path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var state memory.State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decode %s: %w", s.path, err)
	}
	s.ImportState(state)
	return nil
}

// write applies fn to the in-memory data and persists the result. fn
// reports whether it changed anything. When the file cannot be written the
// data is rolled back, so memory never holds a row the file lacks.
func (s *Store) write(fn func() (changed bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.ExportState()
	changed, err := fn()
	if err != nil || !changed {
		return err
	}
	if err := s.persist(); err != nil {
		s.ImportState(prev)
		return fmt.Errorf("persist %s: %w", s.path, err)
	}
	return nil
}

// persist writes the snapshot to a temporary file and renames it over
// path so readers never see a partial document. Callers hold s.mu.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.ExportState(), "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Close flushes nothing; every write is already on disk.
func (s *Store) Close() error { return nil }

func (s *Store) UpsertReading(ctx context.Context, day domain.Date, celsius float64, at time.Time) (*domain.TemperatureReading, error) {
	var r *domain.TemperatureReading
	err := s.write(func() (bool, error) {
		var err error
		r, err = s.DB.UpsertReading(ctx, day, celsius, at)
		return true, err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) DeleteReading(ctx context.Context, day domain.Date) (bool, error) {
	var ok bool
	err := s.write(func() (bool, error) {
		var err error
		ok, err = s.DB.DeleteReading(ctx, day)
		return ok, err
	})
	return ok && err == nil, err
}

func (s *Store) AddCycleStart(ctx context.Context, day domain.Date, at time.Time) (bool, error) {
	var created bool
	err := s.write(func() (bool, error) {
		var err error
		created, err = s.DB.AddCycleStart(ctx, day, at)
		return created, err
	})
	return created && err == nil, err
}

func (s *Store) DeleteCycleStart(ctx context.Context, day domain.Date) (bool, error) {
	var ok bool
	err := s.write(func() (bool, error) {
		var err error
		ok, err = s.DB.DeleteCycleStart(ctx, day)
		return ok, err
	})
	return ok && err == nil, err
}

func (s *Store) AddNote(ctx context.Context, day domain.Date, category domain.NoteCategory, text string, at time.Time) (int64, error) {
	var id int64
	err := s.write(func() (bool, error) {
		var err error
		id, err = s.DB.AddNote(ctx, day, category, text, at)
		return true, err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) DeleteNote(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := s.write(func() (bool, error) {
		var err error
		ok, err = s.DB.DeleteNote(ctx, id)
		return ok, err
	})
	return ok && err == nil, err
}

func (s *Store) PurgeBefore(ctx context.Context, cutoff domain.Date) (domain.PurgeResult, error) {
	var res domain.PurgeResult
	err := s.write(func() (bool, error) {
		var err error
		res, err = s.DB.PurgeBefore(ctx, cutoff)
		return res != domain.PurgeResult{}, err
	})
	if err != nil {
		return domain.PurgeResult{}, err
	}
	return res, nil
}
