// Package convert: traversal context.
// Tracks list numbering, quote depth and verbatim regions during one conversion.
package convert

import (
	"strconv"

	"golang.org/x/net/html"
)

// indentWidth is the column width of one list nesting level.
const indentWidth = 4

type listFrame struct {
	ordered bool
	next    int
}

// ListItem describes the list item currently being converted.
type ListItem struct {
	Ordered bool
	Index   int
	Depth   int
	Marker  string // padded to the indentation width
}

// Context is the mutable state of one conversion. It is created by Convert and
// must not be shared between conversions.
type Context struct {
	opts  *Options
	skip  map[*html.Node]bool
	texts map[*html.Node]*textState
	refs  *References

	lists    []listFrame
	items    []ListItem
	quotes   int
	verbatim int
}

func newContext(opts *Options) *Context {
	return &Context{
		opts: opts,
		refs: newReferences(opts.LinkReferenceStyle),
	}
}

// Options returns the converter options.
func (c *Context) Options() *Options { return c.opts }

// References returns the link reference collector of this conversion.
func (c *Context) References() *References { return c.refs }

// ListDepth returns the number of enclosing lists.
func (c *Context) ListDepth() int { return len(c.lists) }

// QuoteDepth returns the number of enclosing blockquotes.
func (c *Context) QuoteDepth() int { return c.quotes }

// InVerbatim reports whether conversion is inside a pre or code element.
func (c *Context) InVerbatim() bool { return c.verbatim > 0 }

// CurrentItem returns the innermost list item. Outside any list item it returns an
// unordered first item.
func (c *Context) CurrentItem() ListItem {
	if len(c.items) == 0 {
		return ListItem{Index: 1, Marker: padMarker(c.opts.BulletListMarker)}
	}
	return c.items[len(c.items)-1]
}

// Escape escapes text that does not start a Markdown line.
func (c *Context) Escape(text string) string {
	return escapeText(text, false)
}

func (c *Context) enter(n *html.Node) {
	switch tagName(n) {
	case "ul":
		c.lists = append(c.lists, listFrame{next: 1})
	case "ol":
		start := 1
		if v, err := strconv.Atoi(attr(n, "start")); err == nil {
			start = v
		}
		c.lists = append(c.lists, listFrame{ordered: true, next: start})
	case "li":
		c.items = append(c.items, c.nextItem())
	case "blockquote":
		c.quotes++
	}
	if isVerbatim(n) {
		c.verbatim++
	}
}

func (c *Context) exit(n *html.Node) {
	switch tagName(n) {
	case "ul", "ol":
		if len(c.lists) > 0 {
			c.lists = c.lists[:len(c.lists)-1]
		}
	case "li":
		if len(c.items) > 0 {
			c.items = c.items[:len(c.items)-1]
		}
	case "blockquote":
		c.quotes--
	}
	if isVerbatim(n) {
		c.verbatim--
	}
}

func (c *Context) nextItem() ListItem {
	if len(c.lists) == 0 {
		return ListItem{Index: 1, Marker: padMarker(c.opts.BulletListMarker)}
	}
	frame := &c.lists[len(c.lists)-1]
	item := ListItem{Ordered: frame.ordered, Index: frame.next, Depth: len(c.lists)}
	frame.next++
	if item.Ordered {
		item.Marker = padMarker(strconv.Itoa(item.Index) + ".")
	} else {
		item.Marker = padMarker(c.opts.BulletListMarker)
	}
	return item
}

// padMarker pads a list marker to the indentation width, keeping at least one space.
func padMarker(m string) string {
	n := indentWidth - len(m)
	if n < 1 {
		n = 1
	}
	for ; n > 0; n-- {
		m += " "
	}
	return m
}
