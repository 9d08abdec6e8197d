package testutil

import (
	"context"
	"time"

	"github.com/gitmsg/gitmsg/internal/ports"
)

// FakeModel is a deterministic fake inference backend. Replies are consumed
// in order, one per Query call; the last reply repeats once the script runs
// out. Every prompt received is recorded.
type FakeModel struct {
	Replies []string
	Err     error
	Prompts []string
}

func (f *FakeModel) Query(ctx context.Context, prompt string) (string, error) {
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Replies) == 0 {
		return "", nil
	}
	i := len(f.Prompts) - 1
	if i >= len(f.Replies) {
		i = len(f.Replies) - 1
	}
	return f.Replies[i], nil
}

// FakeGit is a fake git adapter backed by canned diff content.
type FakeGit struct {
	Staged      string
	Unstaged    string
	StagedErr   error
	UnstagedErr error
	CommitErr   error
	Hash        string

	StagedCalls   int
	UnstagedCalls int
	Committed     []string
}

func (f *FakeGit) StagedDiff(ctx context.Context) (string, error) {
	f.StagedCalls++
	if f.StagedErr != nil {
		return "", f.StagedErr
	}
	return f.Staged, nil
}

func (f *FakeGit) UnstagedDiff(ctx context.Context) (string, error) {
	f.UnstagedCalls++
	if f.UnstagedErr != nil {
		return "", f.UnstagedErr
	}
	return f.Unstaged, nil
}

func (f *FakeGit) Commit(ctx context.Context, message string) (string, error) {
	if f.CommitErr != nil {
		return "", f.CommitErr
	}
	f.Committed = append(f.Committed, message)
	if f.Hash == "" {
		return "abc123f", nil
	}
	return f.Hash, nil
}

// PickCall records the entries and options one chooser round was given.
type PickCall struct {
	Entries []string
	Opts    ports.PickOptions
}

// FakeChooser replays scripted pick results. Like FakeModel, results are
// consumed in order with the last one repeating, so a regenerate-then-choose
// script is just two entries.
type FakeChooser struct {
	Results []ports.PickResult
	Err     error
	Calls   []PickCall
}

func (f *FakeChooser) Pick(ctx context.Context, entries []string, opts ports.PickOptions) (ports.PickResult, error) {
	f.Calls = append(f.Calls, PickCall{Entries: append([]string(nil), entries...), Opts: opts})
	if f.Err != nil {
		return ports.PickResult{}, f.Err
	}
	if len(f.Results) == 0 {
		return ports.PickResult{Cancelled: true}, nil
	}
	i := len(f.Calls) - 1
	if i >= len(f.Results) {
		i = len(f.Results) - 1
	}
	return f.Results[i], nil
}

// FakeClock advances by Step on every Now call, giving tests a fixed elapsed
// time for the analytics block.
type FakeClock struct {
	T    time.Time
	Step time.Duration
}

func (c *FakeClock) Now() time.Time {
	t := c.T
	c.T = c.T.Add(c.Step)
	return t
}

// FakeRedactor is a redactor that does nothing.
type FakeRedactor struct{}

func (FakeRedactor) Redact(text string) string {
	return text
}

func (FakeRedactor) RedactLog(text string) string {
	return text
}
