// Package redact removes connection strings, credentials, SQL and file paths
// from error text before it reaches logs or clients.
package redact

import "regexp"

// Placeholders substituted for redacted text.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules run in order: connection URLs go before hosts and paths so a URL is
// replaced as a whole.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)\b(postgres|postgresql|redis|rediss|sqlite|file)://\S+`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)\b[\s\w,*()$=.]+\b(FROM|INTO|SET|TABLE|INDEX)\b[\s\w,*()$='".]*`,
		),
		RedactedSQLPlaceholder,
	},
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}(?::\d{1,5})?\b`),
		RedactedHostPlaceholder,
	},
}

// String redacts sensitive information from s.
func String(s string) string {
	for _, r := range rules {
		if s == "" {
			return s
		}
		s = r.pattern.ReplaceAllString(s, r.placeholder)
	}
	return s
}

// Error redacts the text of err. A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
