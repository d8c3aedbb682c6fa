package workspace

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/steferic/workbench/internal/agent"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return s
}

func TestAddAndList(t *testing.T) {
	s := newTestStore(t)
	dir1 := t.TempDir()
	dir2 := t.TempDir()

	ws1, err := s.Add(dir1, "alpha")
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if ws1.Name != "alpha" || ws1.Path != dir1 {
		t.Fatalf("ws1 = %+v", ws1)
	}
	ws2, err := s.Add(dir2, "")
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if ws2.Name != filepath.Base(dir2) {
		t.Fatalf("default name = %q", ws2.Name)
	}

	list := s.List()
	if len(list) != 2 || list[0].ID != ws1.ID || list[1].ID != ws2.ID {
		t.Fatalf("List() order wrong: %+v", list)
	}
}

func TestAddDuplicatePath(t *testing.T) {
	s := newTestStore(t)
	dir := t.TempDir()
	if _, err := s.Add(dir, ""); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	_, err := s.Add(dir, "other")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAddInvalidPath(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(filepath.Join(t.TempDir(), "missing"), "")
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
	if _, err := s.Add("  ", ""); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath for blank, got %v", err)
	}
}

func TestRenameRemove(t *testing.T) {
	s := newTestStore(t)
	ws, err := s.Add(t.TempDir(), "old")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Rename(ws.ID, "new"); err != nil {
		t.Fatalf("Rename() error: %v", err)
	}
	got, err := s.Find(ws.ID)
	if err != nil || got.Name != "new" {
		t.Fatalf("Find() = %+v, %v", got, err)
	}
	if err := s.Remove(ws.ID); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if err := s.Remove(ws.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Remove() = %v", err)
	}
}

func TestSaveLoadRoundTripDemotesRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	ws, err := s.Add(t.TempDir(), "w")
	if err != nil {
		t.Fatal(err)
	}
	s.RecordSession(SessionRecord{
		ID:          "sess-1",
		WorkspaceID: ws.ID,
		Agent:       agent.KindClaude,
		Running:     true,
		StartedAt:   time.Now().UTC(),
	})
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded.Workspaces) != 1 || loaded.Workspaces[0].ID != ws.ID {
		t.Fatalf("workspaces = %+v", loaded.Workspaces)
	}
	records := loaded.Sessions[ws.ID]
	if len(records) != 1 {
		t.Fatalf("records = %+v", records)
	}
	if records[0].Running {
		t.Fatalf("expected running session demoted to stopped")
	}
	if records[0].StoppedAt == nil {
		t.Fatalf("expected StoppedAt backfilled")
	}
}

func TestRecordSessionUpdatesInPlace(t *testing.T) {
	s := newTestStore(t)
	rec := SessionRecord{ID: "a", WorkspaceID: "w", Agent: agent.KindCodex, Running: true, StartedAt: time.Now()}
	s.RecordSession(rec)
	rec.Running = false
	s.RecordSession(rec)
	if got := s.Sessions["w"]; len(got) != 1 || got[0].Running {
		t.Fatalf("Sessions = %+v", got)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{30 * time.Hour, "yesterday"},
		{3 * 24 * time.Hour, "3d ago"},
		{10 * 24 * time.Hour, "1w ago"},
	}
	for _, tt := range tests {
		ts := now.Add(-tt.ago)
		if got := relativeTime(&ts, now); got != tt.want {
			t.Errorf("relativeTime(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
	if got := relativeTime(nil, now); got != "never" {
		t.Errorf("relativeTime(nil) = %q", got)
	}
}
