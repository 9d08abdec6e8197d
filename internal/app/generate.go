package app

import (
	"context"
	"time"

	"github.com/gitmsg/gitmsg/internal/domain"
	"github.com/gitmsg/gitmsg/internal/log"
	"github.com/gitmsg/gitmsg/internal/ports"
	"github.com/gitmsg/gitmsg/internal/prompt"
)

// GenerateService turns a diff into commit message candidates.
type GenerateService struct {
	model    ports.Model
	redactor ports.Redactor
	maxChars int
	redact   bool
	timeout  time.Duration
}

// NewGenerateService creates a new generation service.
func NewGenerateService(model ports.Model, redactor ports.Redactor, maxChars int, redact bool, timeout time.Duration) *GenerateService {
	return &GenerateService{
		model:    model,
		redactor: redactor,
		maxChars: maxChars,
		redact:   redact,
		timeout:  timeout,
	}
}

// Generate builds the prompt, queries the model once and parses the reply.
// A reply without any recognizable numbered lines yields ErrNoCandidates.
func (g *GenerateService) Generate(ctx context.Context, diff domain.Diff) (domain.CandidateSet, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content := diff.Content
	if g.redact {
		content = g.redactor.Redact(content)
	}

	p := prompt.Build(content, g.maxChars)
	logger := log.FromContext(ctx)
	logger.Debugf("prompt: %d bytes for %d diff bytes\n", len(p), len(content))

	reply, err := g.model.Query(ctx, p)
	if err != nil {
		return nil, err
	}

	if logger.Debug() {
		logger.Debugf("model reply (%d bytes): %s\n", len(reply), log.Snip(g.redactor.RedactLog(reply), 600))
	}

	candidates := domain.ParseCandidates(reply)
	if candidates.Empty() {
		return nil, domain.ErrNoCandidates
	}
	return candidates, nil
}
