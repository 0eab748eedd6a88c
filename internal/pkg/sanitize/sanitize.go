// Package sanitize cleans and screens free-text input before it reaches the
// store. The denylist in IsSafe is a heuristic: it can reject legitimate text
// and miss real attacks. Queries are always parameterized; that is what keeps
// SQL injection out, not this package.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	emailShape    = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

	// An ampersand that already opens a character reference is left alone so
	// that Clean is idempotent.
	escapable = regexp.MustCompile(`&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);|[&<>"']`)

	htmlEntities = map[string]string{
		"&": "&amp;",
		"<": "&lt;",
		">": "&gt;",
		`"`: "&#34;",
		"'": "&#39;",
	}
)

var denylist = []string{
	"--", ";", "/*", "*/", "@@",
	"char(", "nchar(", "varchar(",
	"alter", "drop", "exec",
}

// Clean trims text, escapes HTML reserved characters and collapses runs of
// whitespace into a single space.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	text = escapable.ReplaceAllStringFunc(text, func(m string) string {
		if r, ok := htmlEntities[m]; ok {
			return r
		}
		return m
	})
	return whitespaceRun.ReplaceAllString(text, " ")
}

// IsValidEmail reports whether text looks like local@domain.tld.
func IsValidEmail(text string) bool {
	return emailShape.MatchString(text)
}

// hasScript detects the most basic XSS payloads.
func hasScript(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "<script") || strings.Contains(lower, "javascript:")
}

// IsSafe reports whether text contains none of the denylisted fragments.
func IsSafe(text string) bool {
	if hasScript(text) {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range denylist {
		if strings.Contains(lower, p) {
			return false
		}
	}
	return true
}
