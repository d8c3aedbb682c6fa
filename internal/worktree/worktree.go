// Package worktree provisions per-session git worktrees so multiple
// agents can edit the same repository without clobbering each other.
package worktree

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Dir is the workspace subdirectory that holds session worktrees.
const Dir = ".worktrees"

// Client shells out to git for worktree management.
type Client struct {
	bin string
	run func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewClient resolves the git binary from PATH.
func NewClient() (*Client, error) {
	bin, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("worktree: git not found in PATH: %w", err)
	}
	return &Client{bin: bin, run: exec.CommandContext}, nil
}

// WithExec overrides how commands are constructed. Tests use this to
// substitute a fake git.
func (c *Client) WithExec(run func(ctx context.Context, name string, args ...string) *exec.Cmd) *Client {
	c.run = run
	return c
}

// IsGitRepo reports whether path has a .git entry. A plain file counts:
// submodules and linked worktrees use a pointer file.
func IsGitRepo(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// SessionPath returns where a session's worktree lives inside the
// workspace.
func SessionPath(workspacePath, shortID string) string {
	return filepath.Join(workspacePath, Dir, "session-"+shortID)
}

// BranchName returns the branch a session works on.
func BranchName(kind, shortID string) string {
	return "agent-" + strings.ToLower(kind) + "-" + shortID
}

// Add creates the branch if needed and checks out a worktree for it at
// path. An existing branch is reused.
func (c *Client) Add(ctx context.Context, repo, branch, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("worktree: create %s dir: %w", Dir, err)
	}
	// Fails when the branch already exists; the add below reuses it.
	_ = c.git(ctx, repo, "branch", branch)
	return c.git(ctx, repo, "worktree", "add", path, branch)
}

// Remove detaches the worktree and, when branch is non-empty, deletes
// its branch. A worktree that is already gone is not an error.
func (c *Client) Remove(ctx context.Context, repo, path, branch string) error {
	if err := c.git(ctx, repo, "worktree", "remove", "--force", path); err != nil {
		if !strings.Contains(err.Error(), "is not a working tree") {
			return err
		}
	}
	if branch != "" {
		// Best-effort: the branch may be checked out elsewhere or kept
		// by the user on purpose.
		_ = c.git(ctx, repo, "branch", "-D", branch)
	}
	return nil
}

func (c *Client) git(ctx context.Context, repo string, args ...string) error {
	cmd := c.run(ctx, c.bin, append([]string{"-C", repo}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("worktree: git %s: %s", strings.Join(args, " "), msg)
		}
		return fmt.Errorf("worktree: git %s: %w", strings.Join(args, " "), err)
	}
	return nil
}
