// Package convert: traversal engine.
package convert

import (
	"strings"

	"golang.org/x/net/html"
)

// convertNode converts n after its children, post-order. Children of rules that
// ignore their content are never visited.
func (c *Converter) convertNode(ctx *Context, n *html.Node) Fragment {
	switch n.Type {
	case html.TextNode:
		return convertText(ctx, n)
	case html.DocumentNode:
		return c.convertChildren(ctx, n)
	case html.ElementNode:
	default:
		return Fragment{}
	}
	if ctx.skip[n] {
		return Fragment{}
	}

	ctx.enter(n)
	defer ctx.exit(n)

	rule := c.rules.Resolve(n, ctx.opts, ctx.skip)
	var content Fragment
	switch {
	case rule.skipChildren:
	case isVerbatim(n):
		content = Fragment{Text: verbatimText(n)}
	default:
		content = c.convertChildren(ctx, n)
	}

	if IsBlock(n) || IsVoid(n) || isVerbatim(n) {
		return rule.Convert(ctx, n, content)
	}
	return convertInline(ctx, n, rule, content)
}

func (c *Converter) convertChildren(ctx *Context, n *html.Node) Fragment {
	var frags []Fragment
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ctx.skip[ch] {
			continue
		}
		frags = append(frags, c.convertNode(ctx, ch))
	}
	return Join(frags...)
}

// convertInline hands the rule content without its flanking spaces and puts them
// back outside the result, so delimiters hug the text they wrap.
func convertInline(ctx *Context, n *html.Node, rule Rule, content Fragment) Fragment {
	text := content.Text
	trimmed := strings.TrimLeft(text, " \t")
	lead := text[:len(text)-len(trimmed)]
	inner := strings.TrimRight(trimmed, " \t")
	trail := trimmed[len(inner):]
	if inner == "" && lead != "" {
		lead, trail = " ", ""
	}
	if lead == "" && trail == "" {
		return rule.Convert(ctx, n, content)
	}

	content.Text = inner
	if lead != "" {
		content.open = ""
	}
	if trail != "" {
		content.close = ""
	}
	out := rule.Convert(ctx, n, content)
	if out.Text == "" && out.Leading == None && out.Trailing == None {
		return Inline(lead + trail)
	}
	if lead != "" && out.Leading == None {
		out.Text = lead + out.Text
		out.open = ""
	}
	if trail != "" && out.Trailing == None {
		out.Text += trail
		out.close = ""
	}
	return out
}

func convertText(ctx *Context, n *html.Node) Fragment {
	if ctx.InVerbatim() {
		return Inline(n.Data)
	}
	st, ok := ctx.texts[n]
	if !ok || st.text == "" {
		return Fragment{}
	}
	return Inline(escapeText(st.text, st.lineStart))
}
