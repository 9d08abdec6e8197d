// Package security scrubs secret-looking tokens from diffs before they are
// sent to an inference service, and from anything that ends up in logs.
package security

import "regexp"

// Redactor implements ports.Redactor with built-in patterns.
type Redactor struct {
	patterns []*regexp.Regexp
}

// NewRedactor creates a new redactor with default patterns. The patterns
// target credentials that commonly show up in committed diffs: provider API
// keys, tokens, bearer headers, key-value secrets and PEM blocks.
func NewRedactor() *Redactor {
	patterns := []*regexp.Regexp{
		// OpenAI-style API keys
		regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`),
		// AWS access key IDs
		regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		// GitHub tokens
		regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{36}`),
		// Google API keys
		regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`),
		// Slack tokens
		regexp.MustCompile(`xox[baprs]-[a-zA-Z0-9-]{10,}`),
		// Authorization headers
		regexp.MustCompile(`(?i)(?:authorization|auth|token):\s*Bearer\s+[a-zA-Z0-9._\-]+`),
		// Assignments like password = "...", secret: '...', api_key="..."
		regexp.MustCompile(`(?i)(?:password|passwd|pwd|secret|api[_-]?key|access[_-]?token)["']?\s*[=:]\s*["'][^"']+["']`),
		// Private keys (PEM format start)
		regexp.MustCompile(`-----BEGIN (?:RSA |DSA |EC |OPENSSH )?PRIVATE KEY-----`),
	}
	return &Redactor{patterns: patterns}
}

// Redact removes sensitive patterns from text.
func (r *Redactor) Redact(text string) string {
	result := text
	for _, pattern := range r.patterns {
		result = pattern.ReplaceAllString(result, "[REDACTED]")
	}
	return result
}

// RedactLog is more aggressive, also removing IP addresses and emails.
// Use it for anything written to diagnostics.
func (r *Redactor) RedactLog(text string) string {
	result := r.Redact(text)
	result = ipPattern.ReplaceAllString(result, "[IP]")
	result = emailPattern.ReplaceAllString(result, "[EMAIL]")
	return result
}

var (
	ipPattern    = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)
)
