// Package agent maps agent kinds to the command lines that launch them.
package agent

import (
	"fmt"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Kind identifies which agent CLI a session runs.
type Kind string

const (
	KindClaude   Kind = "claude"
	KindGemini   Kind = "gemini"
	KindCodex    Kind = "codex"
	KindGrok     Kind = "grok"
	KindTerminal Kind = "terminal"
)

// Kinds lists all launchable kinds in display order.
func Kinds() []Kind {
	return []Kind{KindClaude, KindGemini, KindCodex, KindGrok, KindTerminal}
}

// ParseKind resolves a user-supplied kind name.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindClaude:
		return KindClaude, nil
	case KindGemini:
		return KindGemini, nil
	case KindCodex:
		return KindCodex, nil
	case KindGrok:
		return KindGrok, nil
	case KindTerminal, "shell", "":
		return KindTerminal, nil
	}
	return "", fmt.Errorf("agent: unknown kind %q", value)
}

func (k Kind) DisplayName() string {
	switch k {
	case KindClaude:
		return "Claude"
	case KindGemini:
		return "Gemini"
	case KindCodex:
		return "Codex"
	case KindGrok:
		return "Grok"
	default:
		return "Terminal"
	}
}

// Badge is the single-letter marker shown in session lists.
func (k Kind) Badge() string {
	switch k {
	case KindClaude:
		return "C"
	case KindGemini:
		return "G"
	case KindCodex:
		return "X"
	case KindGrok:
		return "K"
	default:
		return "T"
	}
}

func (k Kind) IsTerminal() bool { return k == KindTerminal }

// Launch describes how to start an agent session.
type Launch struct {
	Kind Kind

	// Resume continues the most recent conversation where the CLI supports it.
	Resume bool

	// SkipPermissions passes the agent's unattended/dangerous flag.
	SkipPermissions bool

	// Worktree runs the agent in an isolated git worktree when the
	// workspace is a git repository. Ignored for terminal sessions.
	Worktree bool

	// StartCommand overrides the command for terminal sessions.
	// Parsed shell-style; ignored for agent kinds.
	StartCommand string
}

// Argv builds the command and arguments for the launch.
// Terminal sessions fall back to $SHELL when no start command is given.
func (l Launch) Argv() (string, []string, error) {
	if l.Kind.IsTerminal() {
		cmd := strings.TrimSpace(l.StartCommand)
		if cmd == "" {
			return defaultShell(), nil, nil
		}
		words, err := shellquote.Split(cmd)
		if err != nil {
			return "", nil, fmt.Errorf("agent: parse start command: %w", err)
		}
		if len(words) == 0 {
			return defaultShell(), nil, nil
		}
		return words[0], words[1:], nil
	}

	var args []string
	switch l.Kind {
	case KindClaude:
		if l.SkipPermissions {
			args = append(args, "--dangerously-skip-permissions")
		}
		if l.Resume {
			args = append(args, "--continue")
		}
	case KindGemini:
		if l.SkipPermissions {
			args = append(args, "--yolo")
		}
		if l.Resume {
			args = append(args, "--resume")
		}
	case KindCodex:
		// Codex resumes via a subcommand rather than a flag.
		if l.Resume {
			args = append(args, "resume", "--last")
		}
		if l.SkipPermissions {
			args = append(args, "--dangerously-bypass-approvals-and-sandbox")
		}
	case KindGrok:
		if l.SkipPermissions {
			args = append(args, "--permission-mode", "full")
		}
		if l.Resume {
			args = append(args, "--continue")
		}
	default:
		return "", nil, fmt.Errorf("agent: unknown kind %q", l.Kind)
	}
	return string(l.Kind), args, nil
}

func defaultShell() string {
	if shell := strings.TrimSpace(os.Getenv("SHELL")); shell != "" {
		return shell
	}
	for _, s := range []string{"/bin/zsh", "/bin/bash", "/bin/sh"} {
		if _, err := os.Stat(s); err == nil {
			return s
		}
	}
	return "/bin/sh"
}
