package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// SendInput writes bytes to the underlying PTY. This is what the UI calls
// for focused-session input.
func (s *Session) SendInput(input []byte) error {
	if s == nil {
		return errors.New("terminal: nil session")
	}
	if len(input) == 0 {
		return nil
	}
	if s.closed.Load() {
		return &SessionClosedError{Reason: SessionClosedByUser}
	}
	if s.exited.Load() {
		return &SessionClosedError{Reason: SessionClosedProcessExited}
	}
	s.ptyMu.Lock()
	pty := s.pty
	s.ptyMu.Unlock()
	if pty == nil {
		return &SessionClosedError{Reason: SessionClosedPTYClosed}
	}

	s.writeMu.Lock()
	n, err := pty.Write(input)
	s.writeMu.Unlock()
	if err != nil {
		if isPTYClosedWriteError(err) {
			return &SessionClosedError{Reason: SessionClosedPTYClosed, Cause: err}
		}
		return fmt.Errorf("terminal: pty write: %w", err)
	}
	if n != len(input) {
		return fmt.Errorf("terminal: partial write: wrote %d of %d", n, len(input))
	}
	s.markRunning()

	// Input usually changes the screen (echo, app updates).
	s.markDirty()
	return nil
}

func isPTYClosedWriteError(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, syscall.EIO):
		return true
	case errors.Is(err, syscall.EPIPE):
		return true
	case errors.Is(err, syscall.EBADF):
		return true
	case errors.Is(err, os.ErrClosed):
		return true
	case errors.Is(err, io.ErrClosedPipe):
		return true
	default:
		return false
	}
}

func (s *Session) startIO(ctx context.Context) {
	s.startPtyToVt(ctx)
	s.startVtToPty(ctx)
}

func (s *Session) startPtyToVt(ctx context.Context) {
	// PTY -> VT (screen updates)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		buf := make([]byte, 32*1024)
		for {
			pty := s.currentPTY()
			if pty == nil {
				return
			}

			n, err := pty.Read(buf)
			if n > 0 {
				s.markRunning()
				s.handleTerminalWrite(buf[:n])
			}
			if err != nil {
				// Best-effort: treat read errors as exit.
				return
			}
			if ctxDone(ctx) {
				return
			}
		}
	}()
}

func (s *Session) startVtToPty(ctx context.Context) {
	// VT -> PTY (terminal query responses like DSR/DA). Apps like vim and
	// htop block waiting for these.
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		buf := make([]byte, 4096)
		for {
			term := s.currentTerminal()
			pty := s.currentPTY()
			if term == nil || pty == nil {
				return
			}

			n, err := term.Read(buf)
			if n > 0 {
				s.writeToPTY(pty, buf[:n])
			}
			if err != nil {
				return
			}
			if ctxDone(ctx) {
				return
			}
		}
	}()
}

func (s *Session) currentPTY() io.ReadWriter {
	s.ptyMu.Lock()
	defer s.ptyMu.Unlock()
	return s.pty
}

func (s *Session) currentTerminal() vtEmulator {
	s.termMu.Lock()
	defer s.termMu.Unlock()
	return s.term
}

func (s *Session) handleTerminalWrite(data []byte) {
	s.termMu.Lock()
	if s.term != nil {
		_, _ = s.term.Write(data)
	}
	s.termMu.Unlock()
	s.markDirty()
}

func (s *Session) writeToPTY(pty io.Writer, data []byte) {
	s.writeMu.Lock()
	_, _ = pty.Write(data)
	s.writeMu.Unlock()
}

func ctxDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
