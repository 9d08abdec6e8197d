// Package fzf drives an external fzf process as the interactive chooser.
package fzf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gitmsg/gitmsg/internal/log"
	"github.com/gitmsg/gitmsg/internal/ports"
)

// cancelExitCode is what fzf exits with when the user presses ESC.
const cancelExitCode = 130

// Chooser implements ports.Chooser by running fzf. fzf draws its finder on
// /dev/tty, so stdout and stderr can both be captured.
type Chooser struct{}

// NewChooser returns an fzf-backed chooser.
func NewChooser() *Chooser {
	return &Chooser{}
}

// Available reports whether fzf is on PATH.
func Available() bool {
	_, err := exec.LookPath("fzf")
	return err == nil
}

// Pick presents the entries in fzf and returns the selected line.
func (c *Chooser) Pick(ctx context.Context, entries []string, opts ports.PickOptions) (ports.PickResult, error) {
	args := buildArgs(len(entries), opts)
	log.FromContext(ctx).Command("fzf", args...)

	cmd := exec.CommandContext(ctx, "fzf", args...)
	cmd.Stdin = strings.NewReader(strings.Join(entries, "\n"))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == cancelExitCode {
			return ports.PickResult{Cancelled: true}, nil
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return ports.PickResult{}, fmt.Errorf("fzf: %w: %s", err, msg)
		}
		return ports.PickResult{}, fmt.Errorf("fzf: %w", err)
	}

	return ports.PickResult{Line: strings.TrimSpace(stdout.String())}, nil
}

// buildArgs assembles the fzf argument list for n entries.
func buildArgs(n int, opts ports.PickOptions) []string {
	args := []string{
		"--height=10",
		"--layout=reverse",
		"--prompt=Select a commit message (ESC to cancel): ",
		"--no-info",
		"--margin=1,2",
		"--border",
		"--color=prompt:#D73BC9,pointer:#D73BC9",
	}

	if opts.Vim {
		args = append(args, "--bind", "j:down,k:up")
	}

	if opts.Numeric {
		// Only single-key digits can be bound.
		if n > 9 {
			n = 9
		}
		binds := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			binds = append(binds, fmt.Sprintf("%d:accept-non-empty", i))
		}
		if len(binds) > 0 {
			args = append(args, "--bind", strings.Join(binds, ","))
		}
	}

	return args
}
