package tui

import "github.com/charmbracelet/lipgloss"

// Design tokens. All TUI colors live here so views stay consistent.
var (
	colorAccent    = lipgloss.Color("#3B82F6")
	colorAccentAlt = lipgloss.Color("#22C55E")

	colorSuccess = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#22C55E"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	colorError   = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}

	colorTextPrimary   = lipgloss.Color("#F8FAFC")
	colorTextSecondary = lipgloss.Color("#CBD5E1")
	colorTextMuted     = lipgloss.Color("#94A3B8")
	colorTextDim       = lipgloss.Color("#64748B")

	colorBorder = lipgloss.Color("#3A3A3A")
)

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorTextPrimary).
			Background(colorAccent).
			Padding(0, 1)

	styleSectionTitle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorTextPrimary)

	styleSidebar = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	styleSidebarFocused = styleSidebar.BorderForeground(colorAccent)

	stylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	stylePaneFocused = stylePane.BorderForeground(colorAccent)

	styleWorkspaceSelected = lipgloss.NewStyle().
				Foreground(colorTextPrimary).
				Bold(true)

	styleWorkspace = lipgloss.NewStyle().
			Foreground(colorTextSecondary)

	styleWorkspacePaused = lipgloss.NewStyle().
				Foreground(colorTextDim)

	styleSessionSelected = lipgloss.NewStyle().
				Foreground(colorTextPrimary).
				Bold(true)

	styleSession = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	styleSessionExited = lipgloss.NewStyle().
				Foreground(colorTextDim)

	styleBadge = lipgloss.NewStyle().
			Foreground(colorAccentAlt).
			Bold(true)

	styleMeta = lipgloss.NewStyle().
			Foreground(colorTextDim)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorTextSecondary).
			Background(lipgloss.Color("#181818")).
			Padding(0, 1)

	styleStatusMessage = lipgloss.NewStyle().
				Foreground(colorSuccess)

	styleStatusError = lipgloss.NewStyle().
				Foreground(colorError)

	styleStatusWarning = lipgloss.NewStyle().
				Foreground(colorWarning)

	styleDialog = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	styleDialogTitle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	styleDialogLabel = lipgloss.NewStyle().
				Foreground(colorTextMuted)

	styleDialogChoice = lipgloss.NewStyle().
				Foreground(colorAccentAlt).
				Bold(true)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorTextDim)
)
