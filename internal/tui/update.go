package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/steferic/workbench/internal/terminal"
	"github.com/steferic/workbench/internal/workspace"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cols, rows := m.terminalPaneSize()
		m.reg.BroadcastResize(cols, rows)
		return m, nil

	case refreshTickMsg:
		m.expireStatus()
		m.noteExits()
		return m, tickCmd()

	case sessionUpdateMsg:
		// Redraw happens on any message; re-arm the watcher.
		if entry, err := m.reg.Get(msg.ID); err == nil {
			return m, watchSession(msg.ID, entry.Session.Updates())
		}
		return m, nil

	case sessionGoneMsg:
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		if m.dialog != dialogNone {
			return m.updateDialog(msg)
		}
		if m.focus == focusTerminal {
			return m.updateTerminalKey(msg)
		}
		return m.updateListKey(msg)
	}

	return m, nil
}

func (m *Model) expireStatus() {
	if m.status != "" && time.Since(m.statusSetAt) > statusLifetime {
		m.status = ""
		m.statusErr = false
	}
}

// noteExits surfaces a one-time notification per exited session and
// updates its persisted record.
func (m *Model) noteExits() {
	for _, entry := range m.reg.Entries() {
		s := entry.Session
		if !s.Exited() || m.notified[s.ID()] {
			continue
		}
		m.notified[s.ID()] = true
		code := s.ExitStatus()
		m.setStatus(fmt.Sprintf("%s exited (code %d)", s.Title(), code), code != 0)

		now := time.Now().UTC()
		m.store.RecordSession(workspace.SessionRecord{
			ID:          s.ID(),
			WorkspaceID: entry.WorkspaceID,
			Agent:       entry.Agent,
			Running:     false,
			StoppedAt:   &now,
			ExitCode:    &code,
		})
		m.saveStore()
	}
}

func (m *Model) updateTerminalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+q detaches from the terminal; everything else goes to the PTY.
	if msg.String() == "ctrl+q" {
		m.focus = focusSessions
		return m, nil
	}
	seq := encodeKeyMsg(msg)
	if seq == nil {
		return m, nil
	}
	if err := m.reg.RouteInput(seq); err != nil {
		if errors.Is(err, terminal.ErrSessionClosed) {
			m.setStatus("session is not running", true)
			m.focus = focusSessions
			return m, nil
		}
		m.setStatus(err.Error(), true)
	}
	if ws := m.selectedWorkspace(); ws != nil {
		ws.Touch()
	}
	return m, nil
}

func (m *Model) updateListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.moveSelection(-1)
	case "down", "j":
		m.moveSelection(1)

	case "tab":
		if m.focus == focusWorkspaces {
			m.focus = focusSessions
		} else {
			m.focus = focusWorkspaces
		}

	case "enter":
		return m.activateSelection()

	case "a":
		return m.openAddWorkspace()

	case "r":
		if m.focus == focusWorkspaces {
			return m.openRenameWorkspace()
		}

	case "d":
		if m.focus == focusWorkspaces {
			return m.openConfirmRemove()
		}
		return m.closeSelectedSession()

	case "x":
		return m.closeSelectedSession()

	case "n":
		return m.openNewSession()

	case "p":
		if ws := m.selectedWorkspace(); ws != nil {
			ws.ToggleStatus()
			m.saveStore()
		}

	case "y":
		return m.copyScreen()

	case "b":
		m.toggleNoise()
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	if m.focus == focusWorkspaces {
		n := len(m.store.Workspaces)
		if n == 0 {
			return
		}
		m.wsIndex = (m.wsIndex + delta + n) % n
		m.sessIndex = 0
		return
	}
	n := len(m.workspaceEntries())
	if n == 0 {
		return
	}
	m.sessIndex = (m.sessIndex + delta + n) % n
}

func (m *Model) activateSelection() (tea.Model, tea.Cmd) {
	if m.focus == focusWorkspaces {
		if len(m.workspaceEntries()) > 0 {
			m.focus = focusSessions
		} else {
			return m.openNewSession()
		}
		return m, nil
	}
	entry := m.selectedEntry()
	if entry == nil {
		return m, nil
	}
	if err := m.reg.Focus(entry.Session.ID()); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.focus = focusTerminal
	return m, nil
}

func (m *Model) closeSelectedSession() (tea.Model, tea.Cmd) {
	entry := m.selectedEntry()
	if entry == nil {
		return m, nil
	}
	if err := m.reg.CloseSession(entry.Session.ID()); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.clampSelection()
	return m, nil
}

func (m *Model) copyScreen() (tea.Model, tea.Cmd) {
	entry := m.reg.Focused()
	if entry == nil {
		entry = m.selectedEntry()
	}
	if entry == nil {
		m.setStatus("no session to copy", true)
		return m, nil
	}
	if err := clipboard.WriteAll(entry.Session.PlainSnapshot()); err != nil {
		m.setStatus("copy failed: "+err.Error(), true)
		return m, nil
	}
	m.setStatus("screen copied", false)
	return m, nil
}

func (m *Model) toggleNoise() {
	if m.noise == nil {
		m.setStatus("audio unavailable", true)
		return
	}
	if m.noise.Toggle() {
		m.setStatus("focus noise on", false)
	} else {
		m.setStatus("focus noise off", false)
	}
}
