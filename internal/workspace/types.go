// Package workspace manages named filesystem roots and their persisted state.
package workspace

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/steferic/workbench/internal/agent"
)

// Status organizes workspaces into active vs paused.
type Status string

const (
	StatusWorking Status = "working"
	StatusPaused  Status = "paused"
)

// Workspace is a named filesystem root. Identity is the path; the name is
// display-only and may be changed after creation.
type Workspace struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Path         string     `json:"path"`
	Status       Status     `json:"status,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

// NewWorkspace creates a workspace for an absolute path.
func NewWorkspace(name, path string) Workspace {
	now := time.Now().UTC()
	if name == "" {
		name = filepath.Base(path)
	}
	return Workspace{
		ID:           uuid.NewString(),
		Name:         name,
		Path:         path,
		Status:       StatusWorking,
		CreatedAt:    now,
		LastActiveAt: &now,
	}
}

// Touch records activity (session created, input sent).
func (w *Workspace) Touch() {
	now := time.Now().UTC()
	w.LastActiveAt = &now
}

// ToggleStatus flips between working and paused.
func (w *Workspace) ToggleStatus() {
	if w.Status == StatusPaused {
		w.Status = StatusWorking
		return
	}
	w.Status = StatusPaused
}

// LastActiveDisplay formats last activity as a relative time.
func (w Workspace) LastActiveDisplay() string {
	return relativeTime(w.LastActiveAt, time.Now().UTC())
}

func relativeTime(ts *time.Time, now time.Time) string {
	if ts == nil {
		return "never"
	}
	d := now.Sub(*ts)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "yesterday"
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 28*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	default:
		return ts.Format("2006-01-02")
	}
}

// SessionRecord is the persisted trace of a session. Live PTYs do not
// survive a restart, so records always reload as stopped.
type SessionRecord struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	Agent       agent.Kind `json:"agent"`
	Running     bool       `json:"running"`
	StartedAt   time.Time  `json:"started_at"`
	StoppedAt   *time.Time `json:"stopped_at,omitempty"`
	ExitCode    *int       `json:"exit_code,omitempty"`
}
