// internal/validator/sanitize.go
// Form input is stored as plain text. Markup is left alone here and escaped
// by html/template when a page renders it.
package validator

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Sanitize drops invalid UTF-8 and control characters other than tab and
// newline, normalizes s to NFC and trims surrounding whitespace.
// Sanitize(Sanitize(s)) == Sanitize(s) for every s.
func Sanitize(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.Map(dropControl, s)
	s = norm.NFC.String(s)
	return strings.TrimSpace(s)
}

func dropControl(r rune) rune {
	if r == '\n' || r == '\t' {
		return r
	}
	if unicode.IsControl(r) {
		return -1
	}
	return r
}

// SanitizeAll applies Sanitize to every string in place.
func SanitizeAll(fields ...*string) {
	for _, f := range fields {
		*f = Sanitize(*f)
	}
}

// Dedupe sanitizes values, drops blanks and keeps the first of any repeats.
// The result is never nil.
func Dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = Sanitize(v)
		if v == "" || In(v, out...) {
			continue
		}
		out = append(out, v)
	}
	return out
}
