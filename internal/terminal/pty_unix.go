//go:build unix

package terminal

import (
	"os/exec"
	"syscall"
)

// setupPTYCommand configures the command to use the PTY as controlling
// terminal. Required for shells and interactive agents on Unix.
func setupPTYCommand(cmd *exec.Cmd) {
	// Ctty is the FD number in the child process (0 = stdin); the PTY
	// start routine wires stdin to the PTY slave.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}
}
