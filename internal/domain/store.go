package domain

import "context"

// History is the complete logged data of one user, each slice ordered by
// day ascending.
type History struct {
	Readings    []TemperatureReading `json:"readings"`
	CycleStarts []CycleStartEvent    `json:"cycleStarts"`
	Notes       []Note               `json:"notes"`
}

// PurgeResult counts the rows removed by a retention purge.
type PurgeResult struct {
	Readings    int `json:"readings"`
	CycleStarts int `json:"cycleStarts"`
	Notes       int `json:"notes"`
}

// RetentionRepository removes rows older than a cutoff day.
type RetentionRepository interface {
	PurgeBefore(ctx context.Context, cutoff Date) (PurgeResult, error)
}

// Store is one user's storage handle.
type Store interface {
	ReadingRepository
	CycleStartRepository
	NoteRepository
	RetentionRepository
	Close() error
}

// BlobStore is the port for off-site backup uploads.
type BlobStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}
