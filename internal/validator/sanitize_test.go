package validator

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims", "  Patrick  ", "Patrick"},
		{"keeps markup as text", "<b>Jane</b> Doe", "<b>Jane</b> Doe"},
		{"keeps a lone angle bracket", "a<b", "a<b"},
		{"keeps ampersand", "Tom & Jerry", "Tom & Jerry"},
		{"keeps entities as typed", "&lt;i&gt;Poetry&lt;/i&gt;", "&lt;i&gt;Poetry&lt;/i&gt;"},
		{"keeps apostrophe", "O'Brien", "O'Brien"},
		{"normalizes to NFC", "Beyonce\u0301", "Beyonc\u00e9"},
		{"drops invalid utf-8", "\xff\xfeDune", "Dune"},
		{"drops only invalid bytes", "Du\xffne", "Dune"},
		{"drops NUL", "x\x00y", "xy"},
		{"drops other controls", "a\x1b[0mb\r\n", "a[0mb"},
		{"keeps inner newline and tab", "line one\r\n\tline two", "line one\n\tline two"},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.Equal(t, got, Sanitize(got), "sanitizing twice must not change the result")
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"&lt;i&gt;Poetry&lt;/i&gt;",
		"<i>Poetry</i>",
		"&amp;amp;",
		" \x00 <script>alert(1)</script> ",
		"e\u0301\u0301\xff",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitizeAll(t *testing.T) {
	a, b := " x ", "y\x00"
	SanitizeAll(&a, &b)
	assert.Equal(t, "x", a)
	assert.Equal(t, "y", b)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Dedupe([]string{" a ", "", "a", "b", "b", "b\x00"}))

	got := Dedupe(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
