// Package prompt builds the instruction prompt sent to the model. The build
// is deterministic: identical diff and budget always produce identical text,
// so a regeneration differs only by model sampling.
package prompt

import (
	"fmt"
	"strings"
)

// Build returns the prompt for a diff and a per-message character budget.
// The instructions pin down everything the parser and selector rely on:
// exactly three messages, each covering the whole diff, each near the
// budget, presented as a numbered list.
func Build(diff string, maxChars int) string {
	var b strings.Builder
	b.WriteString("Your task is to generate three concise, informative git commit messages based on the following git diff.\n")
	b.WriteString("Be sure that each commit message reflects the entire diff.\n")
	b.WriteString("It is very important that the entire commit is clear and understandable with each of the three options.\n")
	fmt.Fprintf(&b, "Try to fit each commit message in %d characters.\n", maxChars)
	b.WriteString("Each message should be on a new line, starting with a number and a period (e.g., '1.', '2.', '3.').\n")
	b.WriteString("Here's the diff:\n\n")
	b.WriteString(diff)
	return b.String()
}
