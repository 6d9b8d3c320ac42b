package app

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"temptrack/internal/domain"
)

const maxNoteLength = 2000

// NoteService encapsulates note-taking use cases.
type NoteService struct {
	repo domain.NoteRepository
}

// NewNoteService creates a NoteService backed by the given repository.
func NewNoteService(repo domain.NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

// Add validates and stores a note for day.
func (s *NoteService) Add(ctx context.Context, day domain.Date, category domain.NoteCategory, text string) (int64, error) {
	if day.IsZero() {
		return 0, fmt.Errorf("%w: day is required", ErrValidation)
	}
	category, err := domain.ParseNoteCategory(string(category))
	if err != nil {
		return 0, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: text must not be empty", ErrValidation)
	}
	if utf8.RuneCountInString(text) > maxNoteLength {
		return 0, fmt.Errorf("%w: text longer than %d characters", ErrValidation, maxNoteLength)
	}
	return s.repo.AddNote(ctx, day, category, text, time.Now())
}

// Delete removes a note by ID.
func (s *NoteService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.DeleteNote(ctx, id)
}

// ListRecent returns up to limit notes, newest first.
func (s *NoteService) ListRecent(ctx context.Context, limit int) ([]domain.Note, error) {
	all, err := s.repo.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(all, limit), nil
}
