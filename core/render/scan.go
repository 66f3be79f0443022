// Package render: Markdown scanning.
// Classifies lines of converter output for the JSON and PDF renderers.
package render

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

type lineKind int

const (
	kindText lineKind = iota
	kindBlank
	kindHeading
	kindUnderline // setext underline
	kindFence
	kindCode
	kindListItem
	kindQuote
	kindRule
	kindDefinition
)

// mdLine is one classified line of converter output.
type mdLine struct {
	kind  lineKind
	raw   string
	text  string // content without block markup
	level int    // heading level, or list nesting depth from 1
}

var (
	atxHeading   = regexp.MustCompile(`^(#{1,6})[ \t]+(.+)$`)
	underline    = regexp.MustCompile(`^(=+|-+)[ \t]*$`)
	ruleLine     = regexp.MustCompile(`^(?:(?:\*[ \t]*){3,}|(?:-[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	listItem     = regexp.MustCompile(`^([ \t]*)(?:[*+-]|\d{1,9}\.)[ \t]+(.*)$`)
	definition   = regexp.MustCompile(`^\[((?:[^\]\\]|\\.)+)\]:[ \t]+(<[^>]*>|\S+)(?:[ \t]+"((?:[^"\\]|\\.)*)")?[ \t]*$`)
	inlineLink   = regexp.MustCompile(`(!?)\[((?:[^\]\\]|\\.)*)\]\((<[^>]*>|(?:[^()\s\\]|\\.)*)(?:[ \t]+"((?:[^"\\]|\\.)*)")?\)`)
	refLink      = regexp.MustCompile(`(!?)\[((?:[^\]\\]|\\.)+)\](?:\[((?:[^\]\\]|\\.)*)\])?`)
	escapedPunct = regexp.MustCompile("\\\\([!-/:-@\\[-`{-~])")
)

// scanMarkdown classifies every line of md. Fenced code is tracked so that
// nothing inside it is read as markup.
func scanMarkdown(md string) []mdLine {
	raw := strings.Split(strings.TrimRight(md, "\n"), "\n")
	out := make([]mdLine, 0, len(raw))
	fence := ""
	for _, line := range raw {
		l := mdLine{kind: kindText, raw: line, text: line}
		trimmed := strings.TrimSpace(line)
		prev := kindBlank
		if len(out) > 0 {
			prev = out[len(out)-1].kind
		}

		switch {
		case fence != "":
			if closesFence(trimmed, fence) {
				l.kind = kindFence
				fence = ""
			} else {
				l.kind = kindCode
			}
		case openingFence(trimmed) != "":
			l.kind = kindFence
			fence = openingFence(trimmed)
		case trimmed == "":
			l.kind = kindBlank
		case prev == kindText && underline.MatchString(line):
			l.kind = kindUnderline
			out[len(out)-1].kind = kindHeading
			out[len(out)-1].level = 1
			if line[0] == '-' {
				out[len(out)-1].level = 2
			}
		case atxHeading.MatchString(line):
			m := atxHeading.FindStringSubmatch(line)
			l.kind, l.level, l.text = kindHeading, len(m[1]), strings.TrimSpace(m[2])
		case ruleLine.MatchString(trimmed):
			l.kind = kindRule
		case definition.MatchString(line):
			l.kind = kindDefinition
		case listItem.MatchString(line):
			m := listItem.FindStringSubmatch(line)
			l.kind, l.level, l.text = kindListItem, len(m[1])/4+1, m[2]
		case strings.HasPrefix(trimmed, ">"):
			l.kind, l.text = kindQuote, stripQuote(trimmed)
		}
		out = append(out, l)
	}
	return out
}

// openingFence returns the fence run a line opens with, or "".
func openingFence(line string) string {
	for _, c := range []string{"`", "~"} {
		run := len(line) - len(strings.TrimLeft(line, c))
		if run >= 3 {
			return line[:run]
		}
	}
	return ""
}

func closesFence(line, fence string) bool {
	return strings.HasPrefix(line, fence) && strings.Trim(line, fence[:1]) == ""
}

func stripQuote(s string) string {
	for strings.HasPrefix(s, ">") {
		s = strings.TrimPrefix(strings.TrimPrefix(s, ">"), " ")
	}
	return s
}

// definitions maps folded labels of the reference block to their entries.
func definitions(lines []mdLine) (map[string]refTarget, []refTarget) {
	fold := cases.Fold()
	byLabel := make(map[string]refTarget)
	var ordered []refTarget
	for _, l := range lines {
		if l.kind != kindDefinition {
			continue
		}
		m := definition.FindStringSubmatch(l.raw)
		t := refTarget{id: unescape(m[1]), href: linkDestination(m[2]), title: unescape(m[3])}
		key := foldLabel(fold, m[1])
		if _, dup := byLabel[key]; !dup {
			byLabel[key] = t
		}
		ordered = append(ordered, t)
	}
	return byLabel, ordered
}

type refTarget struct {
	id, href, title string
}

func foldLabel(fold cases.Caser, label string) string {
	return fold.String(strings.Join(strings.Fields(label), " "))
}

func linkDestination(s string) string {
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		s = s[1 : len(s)-1]
	}
	return unescape(s)
}

func unescape(s string) string {
	return escapedPunct.ReplaceAllString(s, "$1")
}

// plainInline strips inline Markdown from s: links and images keep their text,
// code spans keep their content, emphasis delimiters and escapes are dropped.
func plainInline(s string) string {
	s = inlineLink.ReplaceAllString(s, "$2")
	s = refLink.ReplaceAllString(s, "$2")

	runes := []rune(s)
	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes) && isASCIIPunct(runes[i+1]):
			i++
			b.WriteRune(runes[i])
		case r == '`':
			j := i
			for j < len(runes) && runes[j] == '`' {
				j++
			}
			ticks := string(runes[i:j])
			rest := string(runes[j:])
			if end := strings.Index(rest, ticks); end >= 0 {
				code := rest[:end]
				if len(code) > 1 && strings.HasPrefix(code, " ") && strings.HasSuffix(code, " ") {
					code = code[1 : len(code)-1]
				}
				b.WriteString(code)
				i = j + len([]rune(rest[:end])) + len(ticks) - 1
			} else {
				b.WriteString(ticks)
				i = j - 1
			}
		case r == '*' || r == '_':
			if isSpaceAt(runes, i-1) && isSpaceAt(runes, i+1) {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func isASCIIPunct(r rune) bool {
	return r < 128 && strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r)
}

func isSpaceAt(runes []rune, i int) bool {
	return i >= 0 && i < len(runes) && (runes[i] == ' ' || runes[i] == '\t')
}
