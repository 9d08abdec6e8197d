package app

import (
	"context"

	"github.com/gitmsg/gitmsg/internal/domain"
	"github.com/gitmsg/gitmsg/internal/erruser"
	"github.com/gitmsg/gitmsg/internal/log"
	"github.com/gitmsg/gitmsg/internal/ports"
)

// DiffSource acquires the change set a commit message should describe.
type DiffSource struct {
	git   ports.Git
	limit int
}

// NewDiffSource creates a diff source capped at limit bytes.
func NewDiffSource(git ports.Git, limit int) *DiffSource {
	return &DiffSource{git: git, limit: limit}
}

// Acquire returns the staged diff, or the unstaged diff when nothing is
// staged. A query failure is an environment problem, not something a retry
// can fix.
func (d *DiffSource) Acquire(ctx context.Context) (domain.Diff, error) {
	source := "staged"
	content, err := d.git.StagedDiff(ctx)
	if err != nil {
		return domain.Diff{}, erruser.New("Not a git repository or git is not installed.", err)
	}

	if content == "" {
		source = "unstaged"
		content, err = d.git.UnstagedDiff(ctx)
		if err != nil {
			return domain.Diff{}, erruser.New("Not a git repository or git is not installed.", err)
		}
	}

	diff := domain.TruncateDiff(content, d.limit)
	if !diff.Empty() {
		log.FromContext(ctx).Debugf("%s diff: %d bytes (truncated=%t)\n", source, diff.Len(), diff.Truncated)
	}
	return diff, nil
}
