package domain

import (
	"errors"
	"strings"
)

// ErrNoCandidates indicates the model reply contained no usable messages.
// It is a logical failure, not a transport one: the service answered, the
// answer just did not follow the numbered-list format.
var ErrNoCandidates = errors.New("no commit messages in model reply")

// CandidateSet is an ordered list of commit message candidates. Order and
// duplicates are preserved; an empty set is valid and means parsing failed.
type CandidateSet []string

// Empty reports whether parsing produced no candidates.
func (s CandidateSet) Empty() bool {
	return len(s) == 0
}

// candidatePrefixes are the only markers the parser accepts. A reply listing
// a fourth option or using "1)" style is ignored, matching the prompt's
// instructions rather than guessing at the model's intent.
var candidatePrefixes = []string{"1.", "2.", "3."}

// ParseCandidates extracts numbered candidates from a raw model reply.
// Each line is trimmed, matched against the literal prefixes "1.", "2." and
// "3.", stripped of the prefix and surrounding whitespace, and finally
// stripped of one bounding pair of single quotes (models like to quote the
// suggestions they were asked for). Non-matching lines are skipped silently.
func ParseCandidates(text string) CandidateSet {
	var out CandidateSet
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range candidatePrefixes {
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			msg := strings.TrimSpace(strings.TrimPrefix(line, prefix))
			out = append(out, stripBoundingQuotes(msg))
			break
		}
	}
	return out
}

// stripBoundingQuotes removes a single pair of quotes that wraps the whole
// message. Inner quotes are left untouched, and a lone quote character is
// not a pair.
func stripBoundingQuotes(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}
