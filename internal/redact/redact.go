// Package redact strips credentials, tokens, personal data and SQL values from
// strings before they are logged or returned in error responses.
package redact

import (
	"log/slog"
	"regexp"
)

// Placeholders substituted for redacted content.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order; later rules see the output of earlier ones.
var rules = []rule{
	// user:password in connection strings (database, redis)
	{
		regexp.MustCompile(`(?i)\b(postgres(?:ql)?|rediss?|mysql|sqlite|file)://[^@\s/]+@`),
		"${1}://" + RedactedCredentialPlaceholder + "@",
	},
	{
		regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		RedactedJWTPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9\-._~+/]+=*`),
		"Bearer " + RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|api[_-]?key|token)(\s*[=:]\s*)['"]?[^'"&\s,\[]+['"]?`),
		"${1}${2}" + RedactionPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\bVALUES\s*\(.*?\)`),
		"VALUES [SQL_VALUES_REDACTED]",
	},
	{
		regexp.MustCompile(`(?i)\bWHERE\b.*`),
		"WHERE [SQL_WHERE_REDACTED]",
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		RedactedEmailPlaceholder,
	},
	{
		regexp.MustCompile(`(?:/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(?:\\[^\\\s]+)+`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`(?s)(?:goroutine \d+ \[|panic:).*`),
		"[STACK_TRACE_REDACTED]",
	},
}

// String redacts sensitive information from input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// ErrorAttr returns a redacted "error" attribute for structured logging.
func ErrorAttr(err error) slog.Attr {
	return slog.String("error", Error(err))
}
