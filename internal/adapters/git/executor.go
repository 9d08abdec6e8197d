// Package git shells out to the git CLI for diffs and commits.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gitmsg/gitmsg/internal/log"
)

var (
	// ErrGitNotFound means the git executable is not on PATH.
	ErrGitNotFound = errors.New("git executable not found in PATH")

	// ErrNotARepository means the working directory is not inside a work tree.
	ErrNotARepository = errors.New("not inside a git repository")
)

// Executor implements ports.Git using os/exec.
type Executor struct{}

// NewExecutor creates a new git executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// CheckTool verifies that git is installed and that the current directory is
// inside a work tree. Both failures are reported to the user the same way, so
// callers usually only care that the error is non-nil.
func (e *Executor) CheckTool(ctx context.Context) error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	out, err := e.run(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil || strings.TrimSpace(out) != "true" {
		return ErrNotARepository
	}
	return nil
}

// StagedDiff returns the diff of staged changes.
func (e *Executor) StagedDiff(ctx context.Context) (string, error) {
	return e.run(ctx, "diff", "--cached", "--no-color", "--diff-filter=ACMRU")
}

// UnstagedDiff returns the diff of unstaged changes in tracked files.
func (e *Executor) UnstagedDiff(ctx context.Context) (string, error) {
	return e.run(ctx, "diff", "--no-color", "--diff-filter=ACMRU")
}

// Commit creates a commit with the given message and returns the short hash.
func (e *Executor) Commit(ctx context.Context, message string) (string, error) {
	out, err := e.run(ctx, "commit", "-m", message)
	if err != nil {
		return "", err
	}
	hash := extractCommitHash(out)
	if hash == "" {
		hash = "[commit created]"
	}
	return hash, nil
}

// run executes git with the given arguments, echoing the command in debug
// mode and folding stderr into the returned error.
func (e *Executor) run(ctx context.Context, args ...string) (string, error) {
	log.FromContext(ctx).Command("git", args...)

	cmd := exec.CommandContext(ctx, "git", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

// extractCommitHash pulls the short hash out of git commit output, which
// looks like "[main abc123d] message" or "[main (root-commit) abc123d] msg".
func extractCommitHash(output string) string {
	for _, line := range strings.Split(output, "\n") {
		start := strings.Index(line, "[")
		end := strings.Index(line, "]")
		if start == -1 || end == -1 || end < start {
			continue
		}
		parts := strings.Fields(line[start+1 : end])
		if len(parts) >= 2 {
			return parts[len(parts)-1]
		}
	}
	return ""
}
