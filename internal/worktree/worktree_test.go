//go:build unix

package worktree

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// execRecorder captures every command the client builds and can make
// individual calls fail with a given stderr message.
type execRecorder struct {
	calls [][]string
	fail  map[int]string // call index -> stderr
}

func (r *execRecorder) run(ctx context.Context, name string, args ...string) *exec.Cmd {
	idx := len(r.calls)
	r.calls = append(r.calls, append([]string{name}, args...))
	if msg, ok := r.fail[idx]; ok {
		return exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf("echo %q >&2; exit 1", msg))
	}
	return exec.CommandContext(ctx, "true")
}

func testClient(rec *execRecorder) *Client {
	return (&Client{bin: "git"}).WithExec(rec.run)
}

func TestSessionPathAndBranchName(t *testing.T) {
	got := SessionPath("/home/u/proj", "ab12cd34")
	want := filepath.Join("/home/u/proj", ".worktrees", "session-ab12cd34")
	if got != want {
		t.Fatalf("SessionPath = %q, want %q", got, want)
	}
	if got := BranchName("Claude", "ab12cd34"); got != "agent-claude-ab12cd34" {
		t.Fatalf("BranchName = %q", got)
	}
}

func TestIsGitRepo(t *testing.T) {
	dir := t.TempDir()
	if IsGitRepo(dir) {
		t.Fatalf("bare dir reported as git repo")
	}
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if !IsGitRepo(dir) {
		t.Fatalf(".git dir not detected")
	}

	// Linked worktrees keep a .git pointer file instead of a directory.
	linked := t.TempDir()
	if err := os.WriteFile(filepath.Join(linked, ".git"), []byte("gitdir: elsewhere\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsGitRepo(linked) {
		t.Fatalf(".git file not detected")
	}
}

func TestAddRunsBranchThenWorktreeAdd(t *testing.T) {
	rec := &execRecorder{}
	c := testClient(rec)
	repo := t.TempDir()
	path := SessionPath(repo, "ab12cd34")

	if err := c.Add(context.Background(), repo, "agent-claude-ab12cd34", path); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	want := [][]string{
		{"git", "-C", repo, "branch", "agent-claude-ab12cd34"},
		{"git", "-C", repo, "worktree", "add", path, "agent-claude-ab12cd34"},
	}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v", rec.calls)
	}
	for i := range want {
		if strings.Join(rec.calls[i], " ") != strings.Join(want[i], " ") {
			t.Fatalf("call %d = %v, want %v", i, rec.calls[i], want[i])
		}
	}

	// The parent dir was created for git.
	if _, err := os.Stat(filepath.Join(repo, Dir)); err != nil {
		t.Fatalf("worktrees dir missing: %v", err)
	}
}

func TestAddReusesExistingBranch(t *testing.T) {
	rec := &execRecorder{fail: map[int]string{
		0: "fatal: a branch named 'agent-claude-ab12cd34' already exists",
	}}
	c := testClient(rec)
	repo := t.TempDir()

	err := c.Add(context.Background(), repo, "agent-claude-ab12cd34", SessionPath(repo, "ab12cd34"))
	if err != nil {
		t.Fatalf("Add() with existing branch error: %v", err)
	}
	if len(rec.calls) != 2 {
		t.Fatalf("calls = %v", rec.calls)
	}
}

func TestAddPropagatesWorktreeFailure(t *testing.T) {
	rec := &execRecorder{fail: map[int]string{
		1: "fatal: '/x' already exists",
	}}
	c := testClient(rec)
	repo := t.TempDir()

	err := c.Add(context.Background(), repo, "b", SessionPath(repo, "x"))
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("Add() error = %v", err)
	}
}

func TestRemoveToleratesMissingWorktree(t *testing.T) {
	rec := &execRecorder{fail: map[int]string{
		0: "fatal: '/x/.worktrees/session-a' is not a working tree",
	}}
	c := testClient(rec)

	if err := c.Remove(context.Background(), "/x", "/x/.worktrees/session-a", "agent-claude-a"); err != nil {
		t.Fatalf("Remove() of missing worktree error: %v", err)
	}
	// The branch delete still ran.
	if len(rec.calls) != 2 || rec.calls[1][3] != "branch" {
		t.Fatalf("calls = %v", rec.calls)
	}
}

func TestRemovePropagatesOtherErrors(t *testing.T) {
	rec := &execRecorder{fail: map[int]string{
		0: "fatal: working tree is dirty",
	}}
	c := testClient(rec)

	err := c.Remove(context.Background(), "/x", "/x/.worktrees/session-a", "")
	if err == nil || !strings.Contains(err.Error(), "dirty") {
		t.Fatalf("Remove() error = %v", err)
	}
}

func TestRemoveSkipsBranchDeleteWhenUnset(t *testing.T) {
	rec := &execRecorder{}
	c := testClient(rec)

	if err := c.Remove(context.Background(), "/x", "/x/.worktrees/session-a", ""); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("calls = %v", rec.calls)
	}
}
