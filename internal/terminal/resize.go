package terminal

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/steferic/workbench/internal/limits"
	"github.com/steferic/workbench/internal/logging"
)

// Resize resizes both the VT and PTY (PTY resize is best-effort).
func (s *Session) Resize(cols, rows int) error {
	if s == nil {
		return errors.New("terminal: nil session")
	}
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cols, rows = limits.Clamp(cols, rows)
	if s.closed.Load() {
		return ErrSessionClosed
	}

	s.sizeMu.Lock()
	if cols == s.cols && rows == s.rows {
		s.sizeMu.Unlock()
		return nil
	}
	s.cols, s.rows = cols, rows
	s.sizeMu.Unlock()

	s.termMu.Lock()
	if s.term != nil {
		s.term.Resize(cols, rows)
	}
	s.termMu.Unlock()

	s.ptyMu.Lock()
	pty := s.pty
	s.ptyMu.Unlock()
	if pty != nil {
		if err := pty.Resize(cols, rows); err != nil {
			logging.LogEvery(
				context.Background(),
				"terminal.pty.resize",
				2*time.Second,
				slog.LevelDebug,
				"terminal: pty resize failed",
				slog.Any("err", err),
				slog.Int("cols", cols),
				slog.Int("rows", rows),
			)
		}
	}

	s.markDirty()
	return nil
}
