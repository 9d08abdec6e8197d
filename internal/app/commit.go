package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gitmsg/gitmsg/internal/erruser"
	"github.com/gitmsg/gitmsg/internal/ports"
)

// CommitService executes the commit.
type CommitService struct {
	git     ports.Git
	timeout time.Duration
}

// NewCommitService creates a new commit service.
func NewCommitService(git ports.Git) *CommitService {
	return &CommitService{
		git:     git,
		timeout: 10 * time.Second,
	}
}

// Commit creates a commit with the given message and returns the short hash.
// It is invoked at most once per run.
func (c *CommitService) Commit(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if message == "" {
		return "", fmt.Errorf("commit message cannot be empty")
	}

	hash, err := c.git.Commit(ctx, message)
	if err != nil {
		return "", erruser.New("Failed to create commit.", err)
	}
	return hash, nil
}
