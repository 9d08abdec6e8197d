// Package erruser provides user-facing errors. The short message is what the
// CLI prints; the wrapped cause stays available for diagnostics and errors.Is.
package erruser

// Err pairs a user-facing message with an underlying cause.
type Err struct {
	Msg string
	Err error
}

// New creates a user-facing error wrapping cause. cause may be nil.
func New(msg string, cause error) *Err {
	return &Err{Msg: msg, Err: cause}
}

func (e *Err) Error() string {
	return e.Msg
}

func (e *Err) Unwrap() error {
	return e.Err
}
