// Package registry owns the set of live agent sessions: ordered listing,
// focus routing, and shared resize fan-out.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/steferic/workbench/internal/agent"
	"github.com/steferic/workbench/internal/limits"
	"github.com/steferic/workbench/internal/terminal"
	"github.com/steferic/workbench/internal/workspace"
	"github.com/steferic/workbench/internal/worktree"
)

var (
	ErrNotFound = errors.New("registry: session not found")
	ErrNoFocus  = errors.New("registry: no focused session")
)

// Session is the surface the registry manages. Satisfied by
// *terminal.Session; an interface so registry logic is testable without
// real PTYs.
type Session interface {
	ID() string
	Title() string
	Status() terminal.Status
	Exited() bool
	ExitStatus() int
	SendInput(input []byte) error
	Resize(cols, rows int) error
	Close() error
	Updates() <-chan struct{}
	ViewLipgloss(opts terminal.RenderOptions) string
	PlainSnapshot() string
	TakeBell() bool
}

// Entry pairs a live session with its launch metadata.
type Entry struct {
	Session       Session
	WorkspaceID   string
	WorkspacePath string
	Agent         agent.Kind

	// WorktreePath and Branch are set when the session runs in an
	// isolated git worktree rather than the workspace directory.
	WorktreePath string
	Branch       string
}

// worktreeManager is the slice of worktree.Client the registry uses.
// An interface so session creation is testable without git.
type worktreeManager interface {
	Add(ctx context.Context, repo, branch, path string) error
	Remove(ctx context.Context, repo, path, branch string) error
}

// Registry tracks sessions in creation order with one focused session.
// Input goes only to the focused session; resizes go to every session.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Entry
	order   []string
	focused string

	cols int
	rows int

	newSession func(opts terminal.Options) (Session, error)
	worktrees  worktreeManager
}

// New creates a registry whose sessions start at the given dimensions.
// Worktree isolation is available only when git is installed.
func New(cols, rows int) *Registry {
	cols, rows = limits.Normalize(cols, rows)
	r := &Registry{
		entries: make(map[string]*Entry),
		cols:    cols,
		rows:    rows,
		newSession: func(opts terminal.Options) (Session, error) {
			return terminal.NewSession(opts)
		},
	}
	if c, err := worktree.NewClient(); err == nil {
		r.worktrees = c
	}
	return r
}

// CreateSession launches an agent in the workspace directory and focuses
// it. With launch.Worktree set, agent sessions in a git repository get
// their own worktree and branch; when provisioning fails the session
// falls back to the workspace directory.
func (r *Registry) CreateSession(ws workspace.Workspace, launch agent.Launch) (*Entry, error) {
	command, args, err := launch.Argv()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	title := fmt.Sprintf("%s · %s", launch.Kind.DisplayName(), ws.Name)

	r.mu.Lock()
	cols, rows := r.cols, r.rows
	r.mu.Unlock()

	dir := ws.Path
	wtPath, branch := "", ""
	if launch.Worktree && !launch.Kind.IsTerminal() && r.worktrees != nil && worktree.IsGitRepo(ws.Path) {
		short := id
		if len(short) > 8 {
			short = short[:8]
		}
		branch = worktree.BranchName(string(launch.Kind), short)
		path := worktree.SessionPath(ws.Path, short)
		if err := r.worktrees.Add(context.Background(), ws.Path, branch, path); err != nil {
			slog.Warn("registry.worktree.add_failed", "workspace", ws.Path, "error", err)
			branch = ""
		} else {
			dir = path
			wtPath = path
		}
	}

	sess, err := r.newSession(terminal.Options{
		ID:      id,
		Title:   title,
		Command: command,
		Args:    args,
		Dir:     dir,
		Cols:    cols,
		Rows:    rows,
	})
	if err != nil {
		if wtPath != "" {
			_ = r.worktrees.Remove(context.Background(), ws.Path, wtPath, branch)
		}
		return nil, fmt.Errorf("registry: start session: %w", err)
	}

	entry := &Entry{
		Session:       sess,
		WorkspaceID:   ws.ID,
		WorkspacePath: ws.Path,
		Agent:         launch.Kind,
		WorktreePath:  wtPath,
		Branch:        branch,
	}

	r.mu.Lock()
	r.entries[id] = entry
	r.order = append(r.order, id)
	r.focused = id
	r.mu.Unlock()

	return entry, nil
}

// Focus makes the session the input target.
func (r *Registry) Focus(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return ErrNotFound
	}
	r.focused = id
	return nil
}

// FocusedID returns the focused session id, or "".
func (r *Registry) FocusedID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.focused
}

// Focused returns the focused entry, or nil.
func (r *Registry) Focused() *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.focused == "" {
		return nil
	}
	return r.entries[r.focused]
}

// Get returns the entry for an id.
func (r *Registry) Get(id string) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return entry, nil
}

// RouteInput forwards bytes to the focused session only. Exited sessions
// reject input with a SessionClosedError.
func (r *Registry) RouteInput(input []byte) error {
	r.mu.Lock()
	entry := r.entries[r.focused]
	r.mu.Unlock()
	if entry == nil {
		return ErrNoFocus
	}
	return entry.Session.SendInput(input)
}

// BroadcastResize applies new dimensions to every session, focused or
// not, and to sessions created later.
func (r *Registry) BroadcastResize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	cols, rows = limits.Clamp(cols, rows)

	r.mu.Lock()
	r.cols, r.rows = cols, rows
	sessions := make([]Session, 0, len(r.order))
	for _, id := range r.order {
		sessions = append(sessions, r.entries[id].Session)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		_ = s.Resize(cols, rows)
	}
}

// CloseSession closes and removes a session. Unknown ids count as
// already closed, so repeated closes are safe. Closing the focused
// session moves focus to the most recent remaining session.
func (r *Registry) CloseSession(id string) error {
	r.mu.Lock()
	entry, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return nil
	}
	delete(r.entries, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.focused == id {
		r.focused = ""
		if n := len(r.order); n > 0 {
			r.focused = r.order[n-1]
		}
	}
	r.mu.Unlock()

	err := entry.Session.Close()
	r.removeWorktree(entry)
	return err
}

// CloseAll closes every session. Errors are ignored; close is
// best-effort on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	closing := make([]*Entry, 0, len(r.order))
	for _, id := range r.order {
		closing = append(closing, r.entries[id])
	}
	r.entries = make(map[string]*Entry)
	r.order = nil
	r.focused = ""
	r.mu.Unlock()

	for _, entry := range closing {
		_ = entry.Session.Close()
		r.removeWorktree(entry)
	}
}

// removeWorktree tears down a session's worktree after its process is
// gone. Best-effort: the directory stays behind on failure.
func (r *Registry) removeWorktree(entry *Entry) {
	if entry.WorktreePath == "" || r.worktrees == nil {
		return
	}
	if err := r.worktrees.Remove(context.Background(), entry.WorkspacePath, entry.WorktreePath, entry.Branch); err != nil {
		slog.Warn("registry.worktree.remove_failed", "path", entry.WorktreePath, "error", err)
	}
}

// Entries returns sessions in creation order. Exited sessions stay
// listed until closed explicitly, so their final screen remains
// inspectable.
func (r *Registry) Entries() []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// ForWorkspace returns the entries belonging to one workspace, in
// creation order.
func (r *Registry) ForWorkspace(workspaceID string) []*Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Entry, 0, 4)
	for _, id := range r.order {
		if e := r.entries[id]; e.WorkspaceID == workspaceID {
			out = append(out, e)
		}
	}
	return out
}

// Len reports the number of tracked sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}
