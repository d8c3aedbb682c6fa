// Package terminal runs one agent process on a PTY and mirrors its output
// into a VT emulator for rendering.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	xpty "github.com/charmbracelet/x/xpty"

	"github.com/steferic/workbench/internal/identity"
	"github.com/steferic/workbench/internal/limits"
	"github.com/steferic/workbench/internal/vt"
)

// Status is the lifecycle state of a session.
type Status int32

const (
	StatusStarting Status = iota
	StatusRunning
	StatusExited
)

func (s Status) String() string {
	switch s {
	case StatusStarting:
		return "starting"
	case StatusRunning:
		return "running"
	case StatusExited:
		return "exited"
	default:
		return "unknown"
	}
}

// vtEmulator is the subset of the VT emulator API Session depends on.
// It keeps rendering and input paths testable without a real PTY.
type vtEmulator interface {
	io.Reader
	io.Writer
	Close() error
	Resize(cols, rows int)
	Render() string
	RenderLine(y int) string
	PlainScreen() string
	CellAt(x, y int) *uv.Cell
	CursorPosition() (int, int)
	Damage() *vt.DamageTracker
	SetCallbacks(vt.Callbacks)
	Width() int
	Height() int
	IsAltScreen() bool
}

// Options describes how to start a session process.
type Options struct {
	ID    string
	Title string

	// Command is executed directly (no shell wrapping).
	// If empty, a platform-appropriate shell is used.
	Command string
	Args    []string
	Dir     string
	Env     []string

	Cols int
	Rows int
}

// Session is one interactive agent terminal: PTY <-> VT emulator, plus
// rendering helpers.
type Session struct {
	id    string
	title atomic.Value // string

	cmd *exec.Cmd
	pty xpty.Pty

	term   vtEmulator
	termMu sync.Mutex // guards term.Write/Resize/Render/CellAt
	ptyMu  sync.Mutex // guards pty pointer swaps during close

	sizeMu sync.Mutex
	cols   int
	rows   int

	updates chan struct{} // coalesced "something changed" signal

	cancel context.CancelFunc
	wg     sync.WaitGroup

	closed  atomic.Bool
	running atomic.Bool
	exited  atomic.Bool

	exitStatus    atomic.Int64
	cursorVisible atomic.Bool
	altScreen     atomic.Bool
	bellPending   atomic.Bool

	writeMu sync.Mutex // serialize PTY writes from the UI thread

	startedAt  time.Time
	lastUpdate atomic.Int64 // unix nanos
}

// NewSession starts a new process attached to a PTY and backed by a VT
// emulator.
func NewSession(opts Options) (*Session, error) {
	if strings.TrimSpace(opts.ID) == "" {
		return nil, fmt.Errorf("terminal: session id is required")
	}

	cols, rows := limits.Normalize(opts.Cols, opts.Rows)

	cmdName := strings.TrimSpace(opts.Command)
	args := opts.Args
	if cmdName == "" {
		cmdName = detectShell()
		args = nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	// #nosec G204 - the command is user-controlled by design.
	cmd := exec.CommandContext(ctx, cmdName, args...)
	if strings.TrimSpace(opts.Dir) != "" {
		cmd.Dir = opts.Dir
	}

	env := append([]string{}, os.Environ()...)
	if len(opts.Env) > 0 {
		env = mergeEnv(env, opts.Env)
	}
	if !hasEnv(env, "TERM") {
		env = append(env, "TERM=xterm-256color")
	}
	if !hasEnv(env, "COLORTERM") {
		env = append(env, "COLORTERM=truecolor")
	}
	env = append(env,
		"TERM_PROGRAM="+strings.ToUpper(identity.AppSlug),
		identity.EnvPrefix+"_SESSION_ID="+opts.ID,
	)
	cmd.Env = env

	// Platform-specific: controlling terminal, session leader.
	setupPTYCommand(cmd)

	term := vt.NewEmulator(cols, rows)

	pty, err := xpty.NewPty(cols, rows)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("terminal: create pty: %w", err)
	}
	if err := pty.Start(cmd); err != nil {
		cancel()
		_ = pty.Close()
		return nil, fmt.Errorf("terminal: start process: %w", err)
	}
	_ = pty.Resize(cols, rows)

	s := &Session{
		id:        opts.ID,
		cmd:       cmd,
		pty:       pty,
		term:      term,
		cols:      cols,
		rows:      rows,
		updates:   make(chan struct{}, 1),
		cancel:    cancel,
		startedAt: time.Now(),
	}
	s.title.Store(opts.Title)
	s.cursorVisible.Store(true)
	s.lastUpdate.Store(time.Now().UnixNano())
	term.SetCallbacks(vt.Callbacks{
		CursorVisibility: func(visible bool) {
			s.cursorVisible.Store(visible)
			s.markDirty()
		},
		Title: func(title string) {
			s.title.Store(title)
			s.markDirty()
		},
		AltScreen: func(active bool) {
			s.altScreen.Store(active)
			s.markDirty()
		},
		Bell: func() {
			s.bellPending.Store(true)
			s.markDirty()
		},
	})

	s.startIO(ctx)
	s.wg.Add(1)
	go s.waitExit(ctx)

	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Title() string {
	if v := s.title.Load(); v != nil {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func (s *Session) SetTitle(title string) { s.title.Store(title) }

// Status reports the session lifecycle state. A session stays Starting
// until its first successful PTY read or write.
func (s *Session) Status() Status {
	switch {
	case s.exited.Load():
		return StatusExited
	case s.running.Load():
		return StatusRunning
	default:
		return StatusStarting
	}
}

func (s *Session) Exited() bool { return s.exited.Load() }

func (s *Session) ExitStatus() int { return int(s.exitStatus.Load()) }

func (s *Session) PID() int {
	if s == nil || s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

func (s *Session) Size() (cols, rows int) {
	s.sizeMu.Lock()
	defer s.sizeMu.Unlock()
	return s.cols, s.rows
}

func (s *Session) StartedAt() time.Time { return s.startedAt }

// LastUpdate returns the time of the last screen or state change.
func (s *Session) LastUpdate() time.Time {
	return time.Unix(0, s.lastUpdate.Load())
}

// TakeBell reports and clears a pending bell.
func (s *Session) TakeBell() bool { return s.bellPending.Swap(false) }

func (s *Session) CursorVisible() bool { return s.cursorVisible.Load() }
func (s *Session) AltScreen() bool     { return s.altScreen.Load() }

// Updates returns a coalesced signal channel. Read from it in the UI loop
// to know when to re-render.
func (s *Session) Updates() <-chan struct{} { return s.updates }

// Close shuts down goroutines and releases PTY/VT resources. It is
// idempotent.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	if s.closed.Swap(true) {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	// Closing PTY/VT unblocks the pump goroutines.
	var pty xpty.Pty
	s.ptyMu.Lock()
	pty = s.pty
	s.pty = nil
	s.ptyMu.Unlock()
	if pty != nil {
		_ = pty.Close()
	}

	var term vtEmulator
	s.termMu.Lock()
	term = s.term
	s.term = nil
	s.termMu.Unlock()
	if term != nil {
		_ = term.Close()
	}

	s.wg.Wait()

	// Safe to close after goroutines exit.
	close(s.updates)
	return nil
}

func (s *Session) waitExit(ctx context.Context) {
	defer s.wg.Done()
	if s.cmd == nil {
		return
	}
	_ = xpty.WaitProcess(ctx, s.cmd)
	if s.cmd.ProcessState != nil {
		s.exitStatus.Store(int64(s.cmd.ProcessState.ExitCode()))
	}
	s.running.Store(false)
	s.exited.Store(true)
	s.markDirty()
}

// markRunning flips Starting -> Running on the first byte that crosses
// the PTY in either direction.
func (s *Session) markRunning() {
	if s.running.CompareAndSwap(false, true) {
		s.markDirty()
	}
}

func (s *Session) markDirty() {
	s.lastUpdate.Store(time.Now().UnixNano())

	// Coalesce signals.
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// detectShell is a conservative default for sessions without a command.
func detectShell() string {
	if shell := os.Getenv("SHELL"); strings.TrimSpace(shell) != "" {
		return shell
	}
	if runtime.GOOS == "windows" {
		return "cmd.exe"
	}
	for _, sh := range []string{"/bin/zsh", "/bin/bash", "/bin/sh"} {
		if _, err := os.Stat(sh); err == nil {
			return sh
		}
	}
	return "/bin/sh"
}

// mergeEnv applies overrides by key (KEY=VALUE).
func mergeEnv(base []string, overrides []string) []string {
	out := append([]string{}, base...)
	index := map[string]int{}
	for i, kv := range out {
		if k := envKey(kv); k != "" {
			index[k] = i
		}
	}
	for _, kv := range overrides {
		k := envKey(kv)
		if k == "" {
			continue
		}
		if i, ok := index[k]; ok {
			out[i] = kv
			continue
		}
		index[k] = len(out)
		out = append(out, kv)
	}
	return out
}

func hasEnv(env []string, key string) bool {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	prefix := key + "="
	for _, kv := range env {
		if strings.HasPrefix(strings.ToUpper(kv), prefix) {
			return true
		}
	}
	return false
}

func envKey(kv string) string {
	kv = strings.TrimSpace(kv)
	if kv == "" {
		return ""
	}
	i := strings.IndexByte(kv, '=')
	if i <= 0 {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(kv[:i]))
}
