package terminal

import "errors"

// ErrSessionClosed indicates the session can no longer accept input.
var ErrSessionClosed = errors.New("session closed")

// SessionClosedReason describes why a session stopped accepting input.
type SessionClosedReason int32

const (
	SessionClosedUnknown SessionClosedReason = iota
	SessionClosedProcessExited
	SessionClosedPTYClosed
	SessionClosedByUser
)

// SessionClosedError reports a closed-session condition without exposing
// low-level I/O details.
type SessionClosedError struct {
	Reason SessionClosedReason
	Cause  error
}

func (e *SessionClosedError) Error() string {
	switch e.Reason {
	case SessionClosedProcessExited:
		return "session closed (process exited)"
	case SessionClosedPTYClosed:
		return "session closed (pty disconnected)"
	default:
		return "session closed"
	}
}

func (e *SessionClosedError) Unwrap() error { return e.Cause }

func (e *SessionClosedError) Is(target error) bool { return target == ErrSessionClosed }
