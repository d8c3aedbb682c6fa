package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/steferic/workbench/internal/agent"
	"github.com/steferic/workbench/internal/terminal"
	"github.com/steferic/workbench/internal/userpath"
	"github.com/steferic/workbench/internal/workspace"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "starting..."
	}

	if m.dialog != dialogNone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.dialogView())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), m.terminalView())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusView())
}

func (m *Model) sidebarView() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("workbench"))
	b.WriteString("\n\n")

	b.WriteString(styleSectionTitle.Render("Workspaces"))
	b.WriteString("\n")
	workspaces := m.workspaces()
	if len(workspaces) == 0 {
		b.WriteString(styleMeta.Render("  none — press a to add"))
		b.WriteString("\n")
	}
	for i, ws := range workspaces {
		b.WriteString(m.workspaceLine(i, ws))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleSectionTitle.Render("Sessions"))
	b.WriteString("\n")
	entries := m.workspaceEntries()
	if len(entries) == 0 {
		b.WriteString(styleMeta.Render("  none — press n to launch"))
		b.WriteString("\n")
	}
	for i, entry := range entries {
		b.WriteString(m.sessionLine(i, entry.Agent, entry.Session.Title(), entry.Session.Status()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render(m.helpLine()))

	style := styleSidebar
	if m.focus != focusTerminal {
		style = styleSidebarFocused
	}
	return style.
		Width(sidebarWidth - 2).
		Height(m.height - 3).
		Render(b.String())
}

func (m *Model) workspaceLine(i int, ws workspace.Workspace) string {
	marker := "  "
	style := styleWorkspace
	if i == m.wsIndex {
		marker = "> "
		style = styleWorkspaceSelected
	}
	if ws.Status == workspace.StatusPaused {
		style = styleWorkspacePaused
	}
	line := marker + ws.Name
	meta := " " + ws.LastActiveDisplay()
	if ws.Status == workspace.StatusPaused {
		meta = " paused"
	}
	return style.Render(truncate(line, sidebarWidth-6-len(meta))) + styleMeta.Render(meta)
}

func (m *Model) sessionLine(i int, kind agent.Kind, title string, status terminal.Status) string {
	marker := "  "
	style := styleSession
	if i == m.sessIndex {
		marker = "> "
		style = styleSessionSelected
	}
	if status == terminal.StatusExited {
		style = styleSessionExited
	}
	badge := styleBadge.Render("[" + kind.Badge() + "]")
	suffix := ""
	if status == terminal.StatusExited {
		suffix = styleMeta.Render(" (exited)")
	}
	return marker + badge + " " + style.Render(truncate(title, sidebarWidth-16)) + suffix
}

func (m *Model) helpLine() string {
	if m.focus == focusTerminal {
		return "ctrl+q detach"
	}
	return "enter open · n new · a add ws\nd close · y copy · b noise · q quit"
}

func (m *Model) terminalView() string {
	cols, rows := m.terminalPaneSize()

	style := stylePane
	if m.focus == focusTerminal {
		style = stylePaneFocused
	}

	entry := m.reg.Focused()
	if entry == nil {
		entry = m.selectedEntry()
	}
	if entry == nil {
		blank := lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
			styleMeta.Render("no session"))
		return style.Render(blank)
	}

	view := entry.Session.ViewLipgloss(terminal.RenderOptions{
		ShowCursor: m.focus == focusTerminal && !entry.Session.Exited(),
		Profile:    m.profile,
	})
	return style.Render(lipgloss.Place(cols, rows, lipgloss.Left, lipgloss.Top, view))
}

func (m *Model) statusView() string {
	left := ""
	if ws := m.selectedWorkspace(); ws != nil {
		left = ws.Name + " · " + userpath.Shorten(ws.Path)
	}
	right := fmt.Sprintf("%d session(s)", m.reg.Len())
	if m.noise != nil && m.noise.Playing() {
		right = "♪ noise · " + right
	}

	middle := ""
	if m.status != "" {
		switch {
		case m.statusErr:
			middle = styleStatusError.Render(m.status)
		default:
			middle = styleStatusMessage.Render(m.status)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	line := left + " " + middle + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(truncate(line, m.width-2))
}

func (m *Model) dialogView() string {
	var b strings.Builder
	switch m.dialog {
	case dialogAddWorkspace:
		b.WriteString(styleDialogTitle.Render("Add workspace"))
		b.WriteString("\n\n")
		for i := range m.inputs {
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styleDialogLabel.Render("tab switch · enter add · esc cancel"))

	case dialogRenameWorkspace:
		b.WriteString(styleDialogTitle.Render("Rename workspace"))
		b.WriteString("\n\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n\n")
		b.WriteString(styleDialogLabel.Render("enter rename · esc cancel"))

	case dialogConfirmRemove:
		ws := m.selectedWorkspace()
		name := ""
		if ws != nil {
			name = ws.Name
		}
		b.WriteString(styleDialogTitle.Render("Remove workspace"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Remove %q and close its sessions?\n\n", name))
		b.WriteString(styleDialogChoice.Render("y") + styleDialogLabel.Render(" remove · ") +
			styleDialogChoice.Render("n") + styleDialogLabel.Render(" cancel"))

	case dialogNewSession:
		b.WriteString(styleDialogTitle.Render("New session"))
		b.WriteString("\n\n")
		kinds := agent.Kinds()
		for i, kind := range kinds {
			marker := "  "
			style := styleSession
			if i == m.agentIndex {
				marker = "> "
				style = styleSessionSelected
			}
			b.WriteString(marker + style.Render(kind.DisplayName()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		flags := flagLine("resume", m.resume) + "   " + flagLine("skip permissions", m.skipPerms)
		if !kinds[m.agentIndex].IsTerminal() {
			flags += "   " + flagLine("worktree", m.worktree)
		}
		b.WriteString(flags)
		b.WriteString("\n")
		if kinds[m.agentIndex].IsTerminal() {
			b.WriteString("\n")
			b.WriteString(m.cmdInput.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		hint := "enter launch · r resume · s skip-perms · w worktree · esc cancel"
		if kinds[m.agentIndex].IsTerminal() && !m.cmdEditing {
			hint = "enter launch · c command · esc cancel"
		}
		b.WriteString(styleDialogLabel.Render(hint))
	}

	if m.dialogErr != "" {
		b.WriteString("\n\n")
		b.WriteString(styleStatusError.Render(m.dialogErr))
	}
	return styleDialog.Render(b.String())
}

func flagLine(label string, on bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	return styleDialogChoice.Render(box) + " " + styleDialogLabel.Render(label)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
