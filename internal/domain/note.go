package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// NoteCategory classifies a Note.
type NoteCategory string

// The accepted note categories, in their canonical spelling.
const (
	NoteSymptoms   NoteCategory = "Symptoms"
	NoteMood       NoteCategory = "Mood"
	NoteSex        NoteCategory = "Sex"
	NoteMedication NoteCategory = "Medication"
	NoteOther      NoteCategory = "Other"
)

var noteCategories = []NoteCategory{NoteSymptoms, NoteMood, NoteSex, NoteMedication, NoteOther}

// ParseNoteCategory matches s case-insensitively against the known categories.
func ParseNoteCategory(s string) (NoteCategory, error) {
	for _, c := range noteCategories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Note is free text attached to a day. Many notes may share a day.
type Note struct {
	ID        int64        `json:"id"`
	Day       Date         `json:"day"`
	Category  NoteCategory `json:"category"`
	Text      string       `json:"text"`
	CreatedAt time.Time    `json:"createdAt"`
}

// NoteRepository is the port for note persistence.
type NoteRepository interface {
	AddNote(ctx context.Context, day Date, category NoteCategory, text string, at time.Time) (int64, error)
	DeleteNote(ctx context.Context, id int64) (bool, error)
	// ListNotes returns every note ordered by day, then id.
	ListNotes(ctx context.Context) ([]Note, error)
}
