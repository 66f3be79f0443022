// Package convert: fragments and joining.
// Sibling output is joined with at most one blank line between blocks.
package convert

import "strings"

// Separation is the amount of vertical space requested between two fragments.
type Separation int

const (
	// None concatenates the fragments on the same line.
	None Separation = iota
	// Line puts the next fragment on its own line.
	Line
	// Blank puts exactly one empty line between the fragments.
	Blank
)

func (s Separation) newlines() string {
	switch s {
	case Line:
		return "\n"
	case Blank:
		return "\n\n"
	}
	return ""
}

// Fragment is the converted form of a subtree. Text never starts or ends with a
// newline; the separation around it is carried in Leading and Trailing.
type Fragment struct {
	Text     string
	Leading  Separation
	Trailing Separation

	// open and close hold the emphasis delimiter the text starts and ends with, so
	// adjacent identical delimiters can be merged.
	open, close string
}

// Inline returns a fragment that joins its neighbours on the same line.
func Inline(text string) Fragment {
	return Fragment{Text: text}
}

// Block returns a fragment separated from its neighbours by a blank line.
func Block(text string) Fragment {
	return Fragment{Text: trimNewlines(text), Leading: Blank, Trailing: Blank}
}

// Lines returns a fragment placed on its own line without a blank line around it.
func Lines(text string) Fragment {
	return Fragment{Text: trimNewlines(text), Leading: Line, Trailing: Line}
}

// Empty renders nothing but still requests the given separation from its neighbours.
func Empty(sep Separation) Fragment {
	return Fragment{Leading: sep, Trailing: sep}
}

func maxSep(a, b Separation) Separation {
	if a > b {
		return a
	}
	return b
}

// Join merges sibling fragments. The space between two fragments is the larger of
// the left trailing and the right leading request, never more than one blank line.
// Empty fragments only contribute their requests.
func Join(frags ...Fragment) Fragment {
	var (
		out     Fragment
		b       strings.Builder
		started bool
		pending Separation
	)
	for _, f := range frags {
		if f.Text == "" {
			if started {
				pending = maxSep(pending, maxSep(f.Leading, f.Trailing))
			} else {
				out.Leading = maxSep(out.Leading, maxSep(f.Leading, f.Trailing))
			}
			continue
		}
		if !started {
			started = true
			out.Leading = maxSep(out.Leading, f.Leading)
			out.open = f.open
			b.WriteString(f.Text)
		} else {
			sep := maxSep(pending, f.Leading)
			if sep > Blank {
				sep = Blank
			}
			text := f.Text
			if sep == None && out.close != "" && out.close == f.open {
				// **a****b** reads as **a**b**; merge the runs into **ab**.
				cur := b.String()
				b.Reset()
				b.WriteString(strings.TrimSuffix(cur, out.close))
				text = strings.TrimPrefix(text, f.open)
			} else {
				b.WriteString(sep.newlines())
			}
			b.WriteString(text)
		}
		out.close = f.close
		pending = f.Trailing
	}
	out.Text = b.String()
	out.Trailing = pending
	if !started {
		out.Trailing = out.Leading
	}
	return out
}

func trimNewlines(s string) string {
	return strings.Trim(s, "\n")
}
