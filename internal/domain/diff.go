package domain

// Diff is the working-tree change set sent to the model. It is acquired once
// per run; regeneration reuses it without asking git again.
type Diff struct {
	Content   string
	Truncated bool
}

// Empty reports whether there is nothing to describe.
func (d Diff) Empty() bool {
	return d.Content == ""
}

// Len returns the content size in bytes.
func (d Diff) Len() int {
	return len(d.Content)
}

// TruncateDiff builds a Diff capped at limit bytes. The cut is a plain byte
// slice and may split a hunk mid-line; the flag records that it happened.
func TruncateDiff(content string, limit int) Diff {
	if limit > 0 && len(content) > limit {
		return Diff{Content: content[:limit], Truncated: true}
	}
	return Diff{Content: content}
}
