package app

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"temptrack/internal/domain"
)

// Snapshot is the JSON document written by a backup.
type Snapshot struct {
	ExportedAt time.Time      `json:"exportedAt"`
	History    domain.History `json:"history"`
}

// BackupService uploads full-history snapshots to a blob store.
type BackupService struct {
	history HistoryReader
	blobs   domain.BlobStore
	prefix  string
}

// NewBackupService creates a BackupService writing under prefix.
func NewBackupService(history HistoryReader, blobs domain.BlobStore, prefix string) *BackupService {
	return &BackupService{history: history, blobs: blobs, prefix: prefix}
}

// Backup uploads a snapshot taken at now and returns its key.
func (s *BackupService) Backup(ctx context.Context, now time.Time) (string, error) {
	h, err := LoadHistory(ctx, s.history)
	if err != nil {
		return "", err
	}
	body, err := json.MarshalIndent(Snapshot{ExportedAt: now.UTC(), History: h}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	key := path.Join(s.prefix, "temptrack-"+now.UTC().Format("20060102T150405Z")+".json")
	if err := s.blobs.Put(ctx, key, body, "application/json"); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}
