package ports

import (
	"context"
	"time"
)

// Model is the interface for inference backends.
type Model interface {
	// Query sends a single prompt and returns the raw completion text.
	Query(ctx context.Context, prompt string) (string, error)
}

// Git is the interface for version-control operations.
type Git interface {
	StagedDiff(ctx context.Context) (string, error)
	UnstagedDiff(ctx context.Context) (string, error)
	Commit(ctx context.Context, message string) (hash string, err error)
}

// Chooser presents entries and returns the line the user picked.
type Chooser interface {
	Pick(ctx context.Context, entries []string, opts PickOptions) (PickResult, error)
}

// PickOptions controls chooser key bindings.
type PickOptions struct {
	Vim     bool // j/k move the cursor
	Numeric bool // digit keys accept the matching entry
}

// PickResult is the outcome of one chooser round.
type PickResult struct {
	Line      string
	Cancelled bool
}

// Redactor redacts sensitive data from text.
type Redactor interface {
	Redact(text string) string
	RedactLog(text string) string // for logging (more aggressive)
}

// Clock provides current time (mockable).
type Clock interface {
	Now() time.Time
}

// ServiceError is a failure talking to an inference backend. It carries the
// backend name so callers can report which service misbehaved.
type ServiceError struct {
	Backend string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Backend + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
