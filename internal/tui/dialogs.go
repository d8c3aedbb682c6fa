package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/steferic/workbench/internal/agent"
	"github.com/steferic/workbench/internal/workspace"
)

func (m *Model) openAddWorkspace() (tea.Model, tea.Cmd) {
	name := newDialogInput("Name: ", "display name (optional)")
	path := newDialogInput("Path: ", "/path/to/project")
	path.Focus()
	m.inputs = []textinput.Model{path, name}
	m.dialogFocus = 0
	m.dialogErr = ""
	m.dialog = dialogAddWorkspace
	return m, textinput.Blink
}

func (m *Model) openRenameWorkspace() (tea.Model, tea.Cmd) {
	ws := m.selectedWorkspace()
	if ws == nil {
		return m, nil
	}
	name := newDialogInput("Name: ", ws.Name)
	name.SetValue(ws.Name)
	name.Focus()
	m.inputs = []textinput.Model{name}
	m.dialogFocus = 0
	m.dialogErr = ""
	m.dialog = dialogRenameWorkspace
	return m, textinput.Blink
}

func (m *Model) openConfirmRemove() (tea.Model, tea.Cmd) {
	ws := m.selectedWorkspace()
	if ws == nil {
		return m, nil
	}
	m.removeTarget = ws.ID
	m.dialogErr = ""
	m.dialog = dialogConfirmRemove
	return m, nil
}

func (m *Model) openNewSession() (tea.Model, tea.Cmd) {
	if m.selectedWorkspace() == nil {
		m.setStatus("add a workspace first", true)
		return m, nil
	}
	m.agentIndex = 0
	m.resume = false
	m.skipPerms = false
	m.worktree = false
	m.cmdEditing = false
	m.cmdInput = newDialogInput("Command: ", "$SHELL")
	m.dialogErr = ""
	m.dialog = dialogNewSession
	return m, nil
}

func (m *Model) closeDialog() {
	m.dialog = dialogNone
	m.inputs = nil
	m.dialogErr = ""
	m.cmdEditing = false
	m.removeTarget = ""
}

func (m *Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.dialog {
	case dialogAddWorkspace, dialogRenameWorkspace:
		return m.updateInputDialog(msg)
	case dialogConfirmRemove:
		return m.updateConfirmRemove(msg)
	case dialogNewSession:
		return m.updateNewSession(msg)
	}
	return m, nil
}

func (m *Model) updateInputDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.closeDialog()
		return m, nil
	case "tab", "shift+tab":
		if len(m.inputs) > 1 {
			m.dialogFocus = (m.dialogFocus + 1) % len(m.inputs)
			for i := range m.inputs {
				if i == m.dialogFocus {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
		}
		return m, nil
	case "enter":
		return m.submitInputDialog()
	}

	var cmd tea.Cmd
	m.inputs[m.dialogFocus], cmd = m.inputs[m.dialogFocus].Update(msg)
	return m, cmd
}

func (m *Model) submitInputDialog() (tea.Model, tea.Cmd) {
	switch m.dialog {
	case dialogAddWorkspace:
		path := strings.TrimSpace(m.inputs[0].Value())
		name := strings.TrimSpace(m.inputs[1].Value())
		ws, err := m.store.Add(path, name)
		if err != nil {
			m.dialogErr = err.Error()
			return m, nil
		}
		m.saveStore()
		m.closeDialog()
		for i := range m.store.Workspaces {
			if m.store.Workspaces[i].ID == ws.ID {
				m.wsIndex = i
			}
		}
		m.setStatus("workspace added: "+ws.Name, false)

	case dialogRenameWorkspace:
		ws := m.selectedWorkspace()
		if ws == nil {
			m.closeDialog()
			return m, nil
		}
		if err := m.store.Rename(ws.ID, m.inputs[0].Value()); err != nil {
			m.dialogErr = err.Error()
			return m, nil
		}
		m.saveStore()
		m.closeDialog()
	}
	return m, nil
}

func (m *Model) updateConfirmRemove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.removeTarget
		for _, entry := range m.reg.ForWorkspace(id) {
			_ = m.reg.CloseSession(entry.Session.ID())
		}
		if err := m.store.Remove(id); err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.saveStore()
		}
		m.closeDialog()
		m.clampSelection()
	case "n", "esc", "ctrl+c":
		m.closeDialog()
	}
	return m, nil
}

func (m *Model) updateNewSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.cmdEditing {
		switch msg.String() {
		case "esc":
			m.cmdEditing = false
			m.cmdInput.Blur()
			return m, nil
		case "enter":
			return m.launchSelected()
		case "ctrl+c":
			m.closeDialog()
			return m, nil
		}
		var cmd tea.Cmd
		m.cmdInput, cmd = m.cmdInput.Update(msg)
		return m, cmd
	}

	kinds := agent.Kinds()
	switch msg.String() {
	case "esc", "ctrl+c":
		m.closeDialog()
	case "up", "k":
		m.agentIndex = (m.agentIndex - 1 + len(kinds)) % len(kinds)
	case "down", "j":
		m.agentIndex = (m.agentIndex + 1) % len(kinds)
	case "r":
		m.resume = !m.resume
	case "s":
		m.skipPerms = !m.skipPerms
	case "w":
		if !kinds[m.agentIndex].IsTerminal() {
			m.worktree = !m.worktree
		}
	case "c":
		if kinds[m.agentIndex].IsTerminal() {
			m.cmdEditing = true
			m.cmdInput.Focus()
			return m, textinput.Blink
		}
	case "enter":
		return m.launchSelected()
	}
	return m, nil
}

func (m *Model) launchSelected() (tea.Model, tea.Cmd) {
	ws := m.selectedWorkspace()
	if ws == nil {
		m.closeDialog()
		return m, nil
	}
	kinds := agent.Kinds()
	launch := agent.Launch{
		Kind:            kinds[m.agentIndex],
		Resume:          m.resume,
		SkipPermissions: m.skipPerms,
		Worktree:        m.worktree,
	}
	if launch.Kind.IsTerminal() {
		launch.StartCommand = strings.TrimSpace(m.cmdInput.Value())
	}

	entry, err := m.reg.CreateSession(*ws, launch)
	if err != nil {
		m.dialogErr = err.Error()
		return m, nil
	}

	ws.Touch()
	m.store.RecordSession(workspace.SessionRecord{
		ID:          entry.Session.ID(),
		WorkspaceID: ws.ID,
		Agent:       launch.Kind,
		Running:     true,
		StartedAt:   time.Now().UTC(),
	})
	m.saveStore()

	if entry.Branch != "" {
		m.setStatus("working on branch "+entry.Branch, false)
	}

	m.closeDialog()
	entries := m.workspaceEntries()
	for i, e := range entries {
		if e == entry {
			m.sessIndex = i
		}
	}
	m.focus = focusTerminal
	return m, watchSession(entry.Session.ID(), entry.Session.Updates())
}
