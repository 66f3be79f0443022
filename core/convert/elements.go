// Package convert: element classification.
package convert

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

var blockElements = set(
	"address", "article", "aside", "audio", "blockquote", "body", "canvas", "center",
	"dd", "dir", "div", "dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
	"frameset", "h1", "h2", "h3", "h4", "h5", "h6", "header", "hgroup", "hr", "html",
	"isindex", "li", "main", "menu", "nav", "noframes", "noscript", "ol", "output", "p",
	"pre", "section", "table", "tbody", "td", "tfoot", "th", "thead", "tr", "ul",
)

var voidElements = set(
	"area", "base", "br", "col", "command", "embed", "hr", "img", "input", "keygen",
	"link", "meta", "param", "source", "track", "wbr",
)

var meaningfulWhenBlank = set(
	"a", "table", "thead", "tbody", "tfoot", "th", "td", "iframe", "script", "audio", "video",
)

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func isElement(n *html.Node) bool { return n != nil && n.Type == html.ElementNode }

func tagName(n *html.Node) string {
	if !isElement(n) {
		return ""
	}
	return strings.ToLower(n.Data)
}

// IsBlock reports whether n is a block-level element.
func IsBlock(n *html.Node) bool { return blockElements[tagName(n)] }

// IsVoid reports whether n is a void element.
func IsVoid(n *html.Node) bool { return voidElements[tagName(n)] }

// isVerbatim reports whether the subtree of n is copied byte for byte.
func isVerbatim(n *html.Node) bool {
	switch tagName(n) {
	case "pre", "code":
		return true
	}
	return false
}

func attr(n *html.Node, key string) string {
	return dom.GetAttributeOr(n, key, "")
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := dom.GetAttribute(n, key)
	return ok
}

// cleanAttribute collapses whitespace in an attribute value.
func cleanAttribute(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// verbatimText concatenates descendant text, turning <br> into newlines.
func verbatimText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
			return
		case tagName(n) == "br":
			b.WriteString("\n")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// isBlank reports whether n has nothing to render. Any text, void element or
// element that matters when empty, like a link, makes it non-blank. Skipped
// descendants do not count.
func isBlank(n *html.Node, skip map[*html.Node]bool) bool {
	name := tagName(n)
	if meaningfulWhenBlank[name] || voidElements[name] {
		return false
	}
	var visible func(*html.Node) bool
	visible = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if skip[c] {
				continue
			}
			switch c.Type {
			case html.TextNode:
				if strings.TrimSpace(c.Data) != "" {
					return true
				}
			case html.ElementNode:
				if IsVoid(c) || meaningfulWhenBlank[tagName(c)] || visible(c) {
					return true
				}
			}
		}
		return false
	}
	return !visible(n)
}
