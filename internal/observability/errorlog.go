// Package observability appends fatal errors to a local log file so a failed
// run can be inspected after the terminal output is gone. Entries are
// redacted before they touch disk.
package observability

import (
	"fmt"
	"os"
	"time"

	"github.com/gitmsg/gitmsg/internal/security"
)

var redactor = security.NewRedactor()

// Path returns the error log location.
//
// Default is ./gitmsg-error.log, override with GITMSG_LOG_PATH.
func Path() string {
	if p := os.Getenv("GITMSG_LOG_PATH"); p != "" {
		return p
	}
	return "gitmsg-error.log"
}

// Record appends one redacted, timestamped line for err. The file is only
// created when an error actually occurs, and write failures are swallowed:
// the log is an aid, never a reason to fail harder.
func Record(err error) {
	if err == nil {
		return
	}

	f, ferr := os.OpenFile(Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if ferr != nil {
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "%s %s\n", time.Now().Format(time.RFC3339), redactor.RedactLog(err.Error()))
}
