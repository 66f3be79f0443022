// Package convert: whitespace collapsing.
// Mirrors CSS white-space: normal outside pre and code.
package convert

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var whitespaceRun = regexp.MustCompile(`[ \t\r\n\f]+`)

// nonRenderable elements never contribute text.
var nonRenderable = set("script", "style", "head", "title", "template", "noscript")

// textState is the normalized form of one text node.
type textState struct {
	text string
	// lineStart is set when nothing precedes the text on its Markdown line.
	lineStart bool
}

// collapser normalizes whitespace across a tree the way CSS white-space: normal
// does: runs collapse to one space, and space next to block boundaries or already
// following a space is dropped. Verbatim subtrees are left alone.
type collapser struct {
	skip        map[*html.Node]bool
	out         map[*html.Node]*textState
	prev        *textState
	keepLeading bool
	lineStart   bool
}

func collapseWhitespace(root *html.Node, skip map[*html.Node]bool) map[*html.Node]*textState {
	c := &collapser{
		skip:      skip,
		out:       make(map[*html.Node]*textState),
		lineStart: true,
	}
	if root.Type == html.TextNode {
		c.text(root)
	} else {
		c.walk(root)
	}
	if c.prev != nil {
		c.prev.text = strings.TrimSuffix(c.prev.text, " ")
	}
	return c.out
}

func (c *collapser) walk(n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if c.skip[ch] {
			continue
		}
		switch ch.Type {
		case html.TextNode:
			c.text(ch)
		case html.ElementNode:
			if nonRenderable[tagName(ch)] {
				continue
			}
			c.boundary(ch)
			if !isVerbatim(ch) {
				c.walk(ch)
			}
			c.boundary(ch)
		}
	}
}

func (c *collapser) text(n *html.Node) {
	text := whitespaceRun.ReplaceAllString(n.Data, " ")
	if (c.prev == nil || strings.HasSuffix(c.prev.text, " ")) && !c.keepLeading {
		text = strings.TrimPrefix(text, " ")
	}
	st := &textState{text: text, lineStart: c.lineStart}
	c.out[n] = st
	if text == "" {
		return
	}
	c.prev = st
	c.lineStart = false
}

func (c *collapser) boundary(n *html.Node) {
	switch {
	case IsBlock(n) || tagName(n) == "br":
		if c.prev != nil {
			c.prev.text = strings.TrimSuffix(c.prev.text, " ")
		}
		c.prev = nil
		c.keepLeading = false
		c.lineStart = true
	case (IsVoid(n) || isVerbatim(n)) && rendersText(n):
		c.prev = nil
		c.keepLeading = true
		c.lineStart = false
	case c.prev != nil:
		c.keepLeading = false
	}
}

// rendersText reports whether an inline void or verbatim element produces output.
// Those that render nothing leave the line state to the surrounding text.
func rendersText(n *html.Node) bool {
	switch tagName(n) {
	case "img":
		return attr(n, "src") != ""
	case "code":
		return verbatimText(n) != ""
	}
	return false
}
