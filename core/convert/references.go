// Package convert: link references.
// Collects reference-style link targets and renders the definition block.
package convert

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// maxLabelLength is the longest link label CommonMark accepts.
const maxLabelLength = 999

// Reference is one entry of the reference-definition block.
type Reference struct {
	ID    string
	URL   string
	Title string
}

// References collects reference-style link targets during one conversion. Each
// distinct (url, title) pair gets one entry; entries keep first-encounter order.
type References struct {
	style    LinkReferenceStyle
	fold     cases.Caser
	entries  []*Reference
	byTarget map[string]*Reference
	used     map[string]bool
}

func newReferences(style LinkReferenceStyle) *References {
	return &References{
		style:    style,
		fold:     cases.Fold(),
		byTarget: make(map[string]*Reference),
		used:     make(map[string]bool),
	}
}

// Marker records the target and returns the in-text marker for text, which must
// already be rendered Markdown.
func (r *References) Marker(text, url, title string) string {
	ref := r.lookup(text, url, title)
	if r.style != ReferenceFull && r.matches(text, ref.ID) {
		if r.style == ReferenceShortcut {
			return "[" + text + "]"
		}
		return "[" + text + "][]"
	}
	return "[" + text + "][" + ref.ID + "]"
}

func (r *References) lookup(text, url, title string) *Reference {
	key := url + "\x00" + title
	if ref, ok := r.byTarget[key]; ok {
		return ref
	}
	ref := &Reference{URL: url, Title: title}
	label := r.label(text)
	if r.style != ReferenceFull && label != "" && len(text) <= maxLabelLength && !r.used[label] {
		ref.ID = text
	} else {
		n := len(r.entries) + 1
		for r.used[strconv.Itoa(n)] {
			n++
		}
		ref.ID = strconv.Itoa(n)
	}
	r.used[r.label(ref.ID)] = true
	r.entries = append(r.entries, ref)
	r.byTarget[key] = ref
	return ref
}

// label normalizes a link label the way CommonMark matches them.
func (r *References) label(s string) string {
	return r.fold.String(strings.Join(strings.Fields(s), " "))
}

func (r *References) matches(text, id string) bool {
	l := r.label(text)
	return l != "" && l == r.label(id)
}

// Len returns the number of collected entries.
func (r *References) Len() int { return len(r.entries) }

// Entries returns the collected entries in assignment order.
func (r *References) Entries() []Reference {
	out := make([]Reference, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out
}

// Definitions renders the reference-definition block, one line per entry.
func (r *References) Definitions() string {
	lines := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		lines = append(lines, "["+e.ID+"]: "+destination(e.URL)+titlePart(e.Title))
	}
	return strings.Join(lines, "\n")
}

// destination renders a link destination, escaping what would end it early.
func destination(url string) string {
	if strings.ContainsAny(url, " \t\n") {
		r := strings.NewReplacer("<", `\<`, ">", `\>`)
		return "<" + r.Replace(url) + ">"
	}
	r := strings.NewReplacer("(", `\(`, ")", `\)`)
	return r.Replace(url)
}

func titlePart(title string) string {
	if title == "" {
		return ""
	}
	return ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
}
