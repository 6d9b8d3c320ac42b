package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"temptrack/internal/app"
)

type mockBlobStore struct {
	key         string
	body        []byte
	contentType string
	err         error
}

func (m *mockBlobStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	m.key, m.body, m.contentType = key, body, contentType
	return m.err
}

func TestBackup(t *testing.T) {
	blobs := &mockBlobStore{}
	svc := app.NewBackupService(sampleHistory(), blobs, "nightly")
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	key, err := svc.Backup(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "nightly/temptrack-20260102T030405Z.json" {
		t.Errorf("unexpected key %q", key)
	}
	if blobs.key != key || blobs.contentType != "application/json" {
		t.Errorf("unexpected upload %q %q", blobs.key, blobs.contentType)
	}

	var snap app.Snapshot
	if err := json.Unmarshal(blobs.body, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if !snap.ExportedAt.Equal(now) {
		t.Errorf("expected exportedAt %v, got %v", now, snap.ExportedAt)
	}
	if len(snap.History.Readings) != 4 || len(snap.History.Notes) != 2 || len(snap.History.CycleStarts) != 1 {
		t.Errorf("unexpected snapshot contents: %+v", snap.History)
	}
	if !snap.History.CycleStarts[0].Day.Equal(day0) {
		t.Errorf("expected start %s, got %s", day0, snap.History.CycleStarts[0].Day)
	}
}

func TestBackup_UploadError(t *testing.T) {
	svc := app.NewBackupService(sampleHistory(), &mockBlobStore{err: errors.New("denied")}, "")
	if _, err := svc.Backup(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error")
	}
}
