//go:build windows

package terminal

import "os/exec"

// setupPTYCommand is a no-op on Windows; ConPTY handles the plumbing.
func setupPTYCommand(_ *exec.Cmd) {}
