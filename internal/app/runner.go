package app

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/briandowns/spinner"

	"github.com/gitmsg/gitmsg/internal/domain"
	"github.com/gitmsg/gitmsg/internal/erruser"
	"github.com/gitmsg/gitmsg/internal/log"
	"github.com/gitmsg/gitmsg/internal/output"
	"github.com/gitmsg/gitmsg/internal/ports"
	"github.com/gitmsg/gitmsg/internal/selector"
)

// Result describes how a run ended. When Run returns an error the result is
// ResultRejected.
type Result int

const (
	// ResultCommitted means a commit was created.
	ResultCommitted Result = iota
	// ResultCopied means the chosen message went to the clipboard instead.
	ResultCopied
	// ResultNoChanges means there was nothing to describe.
	ResultNoChanges
	// ResultRejected means the user backed out without committing.
	ResultRejected
)

// RunOptions carries per-run presentation settings. Backend and Model are
// display strings for the analytics block.
type RunOptions struct {
	Backend   string
	Model     string
	Analytics bool
	Copy      bool
	Spinner   bool
	Vim       bool
	Num       bool
}

// Runner owns the generate, choose, commit loop.
type Runner struct {
	app   *App
	sel   *selector.Selector
	clock ports.Clock
	clip  func(string) error
}

// NewRunner creates a runner. The clipboard writer is swappable for tests.
func NewRunner(app *App, sel *selector.Selector, clock ports.Clock) *Runner {
	return &Runner{
		app:   app,
		sel:   sel,
		clock: clock,
		clip:  clipboard.WriteAll,
	}
}

// Run performs one full pipeline run: acquire the diff once, then loop
// generate → choose until the user commits, copies, or backs out.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (Result, error) {
	out := output.FromContext(ctx)

	start := r.clock.Now()
	diff, err := r.app.Diff.Acquire(ctx)
	if err != nil {
		return ResultRejected, err
	}
	if diff.Empty() {
		out.Println("No changes to commit.")
		return ResultNoChanges, nil
	}

	candidates, err := r.generate(ctx, diff, opts)
	if err != nil {
		return ResultRejected, err
	}
	if opts.Analytics {
		printAnalytics(out, r.clock.Now().Sub(start), opts)
	}

	for {
		outcome := r.sel.Select(ctx, candidates, selector.Options{Vim: opts.Vim, Num: opts.Num})

		switch outcome.Kind {
		case selector.Regenerate:
			start = r.clock.Now()
			candidates, err = r.generate(ctx, diff, opts)
			if err != nil {
				return ResultRejected, err
			}
			if opts.Analytics {
				printRegenAnalytics(out, r.clock.Now().Sub(start))
			}

		case selector.Chosen:
			return r.finish(ctx, out, outcome.Message, opts)

		default:
			out.Println("Commit messages rejected. Please create commit message manually.")
			return ResultRejected, nil
		}
	}
}

// generate runs one model round, with a spinner when stderr is interactive.
func (r *Runner) generate(ctx context.Context, diff domain.Diff, opts RunOptions) (domain.CandidateSet, error) {
	var spin *spinner.Spinner
	if opts.Spinner {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " Generating commit messages..."
		spin.Start()
	}

	candidates, err := r.app.Generate.Generate(ctx, diff)
	if spin != nil {
		spin.Stop()
	}

	if errors.Is(err, domain.ErrNoCandidates) {
		return nil, erruser.New("Could not generate commit messages.", err)
	}
	return candidates, err
}

func (r *Runner) finish(ctx context.Context, out *output.Printer, message string, opts RunOptions) (Result, error) {
	if opts.Copy {
		if err := r.clip(message); err != nil {
			return ResultRejected, erruser.New("Failed to copy message to clipboard.", err)
		}
		out.Printf("Copied to clipboard: %s\n", message)
		return ResultCopied, nil
	}

	hash, err := r.app.Commit.Commit(ctx, message)
	if err != nil {
		return ResultRejected, err
	}
	out.Printf("Committed with message: %s\n", message)
	log.FromContext(ctx).Debugf("created commit %s\n", hash)
	return ResultCommitted, nil
}

func printAnalytics(out *output.Printer, elapsed time.Duration, opts RunOptions) {
	out.Println("\nAnalytics:")
	out.Printf("Time taken to generate commit messages: %.2f seconds\n", elapsed.Seconds())
	out.Printf("Inference used: %s\n", opts.Backend)
	out.Printf("Model name: %s\n", opts.Model)
	out.Println("")
}

func printRegenAnalytics(out *output.Printer, elapsed time.Duration) {
	out.Println("\nRegeneration Analytics:")
	out.Printf("Time taken to regenerate commit messages: %.2f seconds\n", elapsed.Seconds())
	out.Println("")
}
