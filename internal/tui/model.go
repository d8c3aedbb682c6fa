// Package tui is the bubbletea front end: workspace and session lists
// on the left, the focused session's terminal on the right.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/steferic/workbench/internal/audio"
	"github.com/steferic/workbench/internal/registry"
	"github.com/steferic/workbench/internal/workspace"
)

const (
	sidebarWidth    = 34
	refreshInterval = 250 * time.Millisecond
	statusLifetime  = 5 * time.Second
)

type focusArea int

const (
	focusWorkspaces focusArea = iota
	focusSessions
	focusTerminal
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogAddWorkspace
	dialogRenameWorkspace
	dialogConfirmRemove
	dialogNewSession
)

// refreshTickMsg drives the fixed redraw cadence.
type refreshTickMsg struct{}

// sessionUpdateMsg is a coalesced change signal from one session.
type sessionUpdateMsg struct{ ID string }

// sessionGoneMsg means the session's update channel closed.
type sessionGoneMsg struct{ ID string }

// Model is the top-level bubbletea model.
type Model struct {
	store *workspace.Store
	reg   *registry.Registry
	noise *audio.Player

	profile termenv.Profile

	width  int
	height int

	focus     focusArea
	wsIndex   int
	sessIndex int

	dialog      dialogKind
	inputs      []textinput.Model
	dialogFocus int
	dialogErr   string

	// New-session dialog state.
	agentIndex   int
	resume       bool
	skipPerms    bool
	worktree     bool
	cmdEditing   bool
	cmdInput     textinput.Model
	removeTarget string

	status      string
	statusErr   bool
	statusSetAt time.Time

	notified map[string]bool

	quitting bool
}

// Options configures the TUI.
type Options struct {
	// Profile selects the color profile for terminal pane rendering.
	Profile termenv.Profile

	// InitialWorkspace preselects a workspace by id.
	InitialWorkspace string
}

// New builds the model. The audio player may be nil when the audio
// device is unavailable; the noise toggle then reports an error.
func New(store *workspace.Store, reg *registry.Registry, noise *audio.Player, opts Options) *Model {
	m := &Model{
		store:    store,
		reg:      reg,
		noise:    noise,
		profile:  opts.Profile,
		notified: make(map[string]bool),
	}
	if opts.InitialWorkspace != "" {
		for i, ws := range store.List() {
			if ws.ID == opts.InitialWorkspace {
				m.wsIndex = i
				break
			}
		}
	}
	return m
}

// Run starts the TUI and blocks until quit. Sessions are closed and the
// store saved on the way out.
func Run(store *workspace.Store, reg *registry.Registry, noise *audio.Player, opts Options) error {
	m := New(store, reg, noise, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	reg.CloseAll()
	if noise != nil {
		_ = noise.Close()
	}
	if saveErr := store.Save(); saveErr != nil {
		slog.Warn("tui.store.save", "error", saveErr)
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func watchSession(id string, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return sessionGoneMsg{ID: id}
		}
		return sessionUpdateMsg{ID: id}
	}
}

func (m *Model) workspaces() []workspace.Workspace {
	return m.store.List()
}

func (m *Model) selectedWorkspace() *workspace.Workspace {
	list := m.store.Workspaces
	if m.wsIndex < 0 || m.wsIndex >= len(list) {
		return nil
	}
	return &list[m.wsIndex]
}

func (m *Model) workspaceEntries() []*registry.Entry {
	ws := m.selectedWorkspace()
	if ws == nil {
		return nil
	}
	return m.reg.ForWorkspace(ws.ID)
}

func (m *Model) selectedEntry() *registry.Entry {
	entries := m.workspaceEntries()
	if m.sessIndex < 0 || m.sessIndex >= len(entries) {
		return nil
	}
	return entries[m.sessIndex]
}

func (m *Model) clampSelection() {
	if n := len(m.store.Workspaces); m.wsIndex >= n {
		m.wsIndex = n - 1
	}
	if m.wsIndex < 0 {
		m.wsIndex = 0
	}
	if n := len(m.workspaceEntries()); m.sessIndex >= n {
		m.sessIndex = n - 1
	}
	if m.sessIndex < 0 {
		m.sessIndex = 0
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	m.statusSetAt = time.Now()
}

func (m *Model) saveStore() {
	if err := m.store.Save(); err != nil {
		slog.Warn("tui.store.save", "error", err)
		m.setStatus("save failed: "+err.Error(), true)
	}
}

// terminalPaneSize reports the cell dimensions available to the
// terminal pane after sidebar, borders, and status bar.
func (m *Model) terminalPaneSize() (cols, rows int) {
	cols = m.width - sidebarWidth - 2
	rows = m.height - 3
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func newDialogInput(prompt, placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = 256
	return in
}
