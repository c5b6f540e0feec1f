// Package redact removes sensitive information from strings before they are
// logged. Backend errors can carry API keys in request URLs, credentials in
// base URLs and local file paths from prompt template loading.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; credential rules run before path rules so
// that a URL is redacted as a credential rather than as a path.
var rules = []rule{
	// user:password@ in URLs
	{regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*://)[^/@\s:]+:[^/@\s]+@`), "${1}" + RedactedCredentialPlaceholder + "@"},

	// Google API keys, e.g. Gemini keys passed as ?key=
	{regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`), RedactedKeyPlaceholder},
	{regexp.MustCompile(`(?i)([?&](?:key|api_key|token)=)[^&\s"']+`), "${1}" + RedactedKeyPlaceholder},

	// Bearer tokens and key-like assignments
	{regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/]{8,}=*`), "${1}" + RedactedKeyPlaceholder},
	{regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret|password)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), "${1}${2}" + RedactedKeyPlaceholder},

	// Stack trace fragments
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},

	// File paths
	{regexp.MustCompile(`(^|[\s"'(=])(?:/[\w.-]+){2,}`), "${1}" + RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
