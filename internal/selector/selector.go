// Package selector maps chooser output back to commit-message outcomes.
package selector

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitmsg/gitmsg/internal/log"
	"github.com/gitmsg/gitmsg/internal/ports"
)

// RegenerateLabel is the synthetic entry appended after the candidates.
const RegenerateLabel = "Regenerate messages"

// Kind classifies what the user did in the chooser.
type Kind int

const (
	// Chosen means a commit message was accepted.
	Chosen Kind = iota
	// Regenerate means the user asked for a fresh set of candidates.
	Regenerate
	// Cancelled means the user backed out (ESC, empty pick, chooser failure).
	Cancelled
)

// Outcome is the result of one chooser round.
type Outcome struct {
	Kind    Kind
	Message string // set when Kind == Chosen
}

// Options controls how entries are presented.
type Options struct {
	Vim bool
	Num bool
}

// Selector presents candidates through a chooser and interprets the pick.
type Selector struct {
	chooser ports.Chooser
}

// New creates a selector on top of the given chooser.
func New(chooser ports.Chooser) *Selector {
	return &Selector{chooser: chooser}
}

// Select runs one chooser round over the candidates. The regenerate entry is
// always last; in numeric mode every entry gets an "N. " label so a digit key
// maps to a fixed position.
func (s *Selector) Select(ctx context.Context, candidates []string, opts Options) Outcome {
	entries := make([]string, 0, len(candidates)+1)
	entries = append(entries, candidates...)
	entries = append(entries, RegenerateLabel)

	if opts.Num {
		for i, e := range entries {
			entries[i] = fmt.Sprintf("%d. %s", i+1, e)
		}
	}

	// Rendered line -> outcome. When a candidate collides with the
	// regenerate label the later write wins, so regenerate is favored.
	outcomes := make(map[string]Outcome, len(entries))
	for i, line := range entries {
		if i == len(entries)-1 {
			outcomes[line] = Outcome{Kind: Regenerate}
		} else {
			outcomes[line] = Outcome{Kind: Chosen, Message: candidates[i]}
		}
	}

	res, err := s.chooser.Pick(ctx, entries, ports.PickOptions{Vim: opts.Vim, Numeric: opts.Num})
	if err != nil {
		log.FromContext(ctx).Printf("chooser failed: %v\n", err)
		return Outcome{Kind: Cancelled}
	}
	if res.Cancelled || res.Line == "" {
		return Outcome{Kind: Cancelled}
	}

	if out, ok := outcomes[res.Line]; ok {
		return out
	}

	// The chooser returned a line we never rendered. Strip a numeric label
	// if present and take the rest at face value.
	line := res.Line
	if opts.Num {
		if _, rest, ok := strings.Cut(line, ". "); ok {
			line = rest
		}
	}
	if line == RegenerateLabel {
		return Outcome{Kind: Regenerate}
	}
	return Outcome{Kind: Chosen, Message: line}
}
