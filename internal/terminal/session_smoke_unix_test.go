//go:build unix

package terminal

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestSessionSmoke(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PTY smoke test in short mode")
	}

	s, err := NewSession(Options{
		ID:      "smoke-1",
		Command: "/bin/sh",
		Args:    []string{"-c", "printf 'hello-smoke'; sleep 30"},
		Cols:    40,
		Rows:    10,
	})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer s.Close()

	if s.ID() != "smoke-1" {
		t.Fatalf("ID = %q", s.ID())
	}
	if s.PID() == 0 {
		t.Fatalf("expected nonzero pid")
	}

	if !waitFor(t, 5*time.Second, func() bool {
		return strings.Contains(s.PlainSnapshot(), "hello-smoke")
	}) {
		t.Fatalf("output never appeared: %q", s.PlainSnapshot())
	}

	if got := s.Status(); got != StatusRunning {
		t.Fatalf("status = %v", got)
	}

	if err := s.Resize(60, 20); err != nil {
		t.Fatalf("Resize() error: %v", err)
	}
	cols, rows := s.Size()
	if cols != 60 || rows != 20 {
		t.Fatalf("size = %dx%d", cols, rows)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	// Close is idempotent.
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}

	if err := s.SendInput([]byte("x")); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("SendInput after close = %v", err)
	}
}

func TestSessionExit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PTY smoke test in short mode")
	}

	s, err := NewSession(Options{
		ID:      "exit-1",
		Command: "/bin/sh",
		Args:    []string{"-c", "exit 3"},
		Cols:    20,
		Rows:    5,
	})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer s.Close()

	if !waitFor(t, 5*time.Second, s.Exited) {
		t.Fatalf("process never exited")
	}
	if got := s.ExitStatus(); got != 3 {
		t.Fatalf("exit status = %d", got)
	}
	if got := s.Status(); got != StatusExited {
		t.Fatalf("status = %v", got)
	}
	if err := s.SendInput([]byte("x")); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("SendInput after exit = %v", err)
	}
}

func TestSessionStartsInStartingState(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PTY smoke test in short mode")
	}

	// cat produces no output until it gets input, so the session sits in
	// Starting until the first byte crosses the PTY.
	s, err := NewSession(Options{
		ID:      "starting-1",
		Command: "/bin/cat",
		Cols:    40,
		Rows:    10,
	})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer s.Close()

	if got := s.Status(); got != StatusStarting {
		t.Fatalf("status before first I/O = %v", got)
	}

	if err := s.SendInput([]byte("ready\n")); err != nil {
		t.Fatalf("SendInput() error: %v", err)
	}
	if got := s.Status(); got != StatusRunning {
		t.Fatalf("status after first write = %v", got)
	}
}

func TestSessionEcho(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PTY smoke test in short mode")
	}

	s, err := NewSession(Options{
		ID:      "echo-1",
		Command: "/bin/cat",
		Cols:    40,
		Rows:    10,
	})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer s.Close()

	if err := s.SendInput([]byte("ping\n")); err != nil {
		t.Fatalf("SendInput() error: %v", err)
	}
	if !waitFor(t, 5*time.Second, func() bool {
		return strings.Contains(s.PlainSnapshot(), "ping")
	}) {
		t.Fatalf("echo never appeared: %q", s.PlainSnapshot())
	}

	// The updates channel carries a coalesced change signal.
	select {
	case <-s.Updates():
	case <-time.After(time.Second):
		t.Fatalf("no update signal")
	}
}
