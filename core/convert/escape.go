// Package convert: escaping.
// Backslash-escapes text so it is not read as Markdown syntax.
package convert

import (
	"strings"
	"unicode"
)

// Escape backslash-escapes the characters in text that Markdown would otherwise
// read as syntax, assuming text starts a Markdown line.
func Escape(text string) string {
	return escapeText(text, true)
}

// escapeText escapes inline syntax everywhere and block markers only when
// lineStart says text begins a Markdown line.
func escapeText(text string, lineStart bool) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text) + 8)
	for i, r := range runes {
		switch r {
		case '\\', '[', ']':
			b.WriteRune('\\')
		case '*', '_', '`':
			if !spaceAt(runes, i-1) || !spaceAt(runes, i+1) {
				b.WriteRune('\\')
			}
		}
		b.WriteRune(r)
	}
	out := b.String()
	if lineStart {
		out = escapeLineStart(out)
	}
	return out
}

// spaceAt reports whether runes[i] exists and is whitespace. The edges of a text
// node count as non-space since the neighbouring text is unknown.
func spaceAt(runes []rune, i int) bool {
	return i >= 0 && i < len(runes) && unicode.IsSpace(runes[i])
}

// escapeLineStart escapes a leading block marker.
func escapeLineStart(s string) string {
	switch {
	case s == "":
		return s
	case s[0] == '>', s[0] == '-', s[0] == '=':
		return `\` + s
	case strings.HasPrefix(s, "+ ") || s == "+":
		return `\` + s
	case strings.HasPrefix(s, "~~~"):
		return `\` + s
	case s[0] == '#':
		n := len(s) - len(strings.TrimLeft(s, "#"))
		if n <= 6 && (n == len(s) || s[n] == ' ' || s[n] == '\t') {
			return `\` + s
		}
	case s[0] >= '0' && s[0] <= '9':
		n := len(s) - len(strings.TrimLeft(s, "0123456789"))
		if n <= 9 && n < len(s) && s[n] == '.' && (n+1 == len(s) || s[n+1] == ' ') {
			return s[:n] + `\` + s[n:]
		}
	}
	return s
}
