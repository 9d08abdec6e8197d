// Package app wires the generation pipeline together and drives one run.
package app

import (
	"time"

	"github.com/gitmsg/gitmsg/internal/ports"
	"github.com/gitmsg/gitmsg/internal/security"
)

// App is the application container with all services.
type App struct {
	Diff     *DiffSource
	Generate *GenerateService
	Commit   *CommitService
}

// NewApp creates a new application with all dependencies wired.
func NewApp(model ports.Model, git ports.Git, diffLimit, maxChars int, redact bool, timeout time.Duration) *App {
	redactor := security.NewRedactor()
	return &App{
		Diff:     NewDiffSource(git, diffLimit),
		Generate: NewGenerateService(model, redactor, maxChars, redact, timeout),
		Commit:   NewCommitService(git),
	}
}

// SystemClock implements ports.Clock with the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
