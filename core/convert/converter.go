// Package convert: converter.
// Entry points for turning HTML trees, strings and readers into Markdown.
package convert

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/htmlmd/core/parse"
)

// Converter turns HTML trees into Markdown. It is safe for concurrent use once
// construction, including any AddRule, Keep or Remove calls, is complete.
type Converter struct {
	opts  *Options
	rules *Rules
}

// New creates a Converter from DefaultOptions with opts applied in order.
func New(opts ...Option) (*Converter, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.compile(); err != nil {
		return nil, err
	}

	c := &Converter{opts: &o, rules: newRules(commonmarkRules())}
	if len(o.keepMatchers) > 0 {
		c.rules.Keep(matchAny(o.keepMatchers))
	}
	return c, nil
}

func matchAny(sels []cascadia.Selector) Filter {
	return func(n *html.Node, _ *Options) bool {
		for _, sel := range sels {
			if sel.Match(n) {
				return true
			}
		}
		return false
	}
}

// Options returns a copy of the converter options.
func (c *Converter) Options() Options { return *c.opts }

// Rules returns the rule names in evaluation order, without the blank and fallback rules.
func (c *Converter) Rules() []string { return c.rules.Names() }

// AddRule registers r ahead of every built-in and previously added rule.
func (c *Converter) AddRule(r Rule) { c.rules.Add(r) }

// Keep renders elements matching f as HTML.
func (c *Converter) Keep(f Filter) { c.rules.Keep(f) }

// Remove drops elements matching f.
func (c *Converter) Remove(f Filter) { c.rules.Remove(f) }

// Escape escapes text as if it started a Markdown line.
func (c *Converter) Escape(text string) string { return Escape(text) }

// Convert renders root as Markdown. It never fails and does not modify root. The
// result is empty or ends with exactly one newline.
func (c *Converter) Convert(root *html.Node) string {
	if root == nil {
		return ""
	}
	ctx := newContext(c.opts)
	ctx.skip = filterNodes(root, c.opts)
	if ctx.skip[root] {
		return ""
	}
	ctx.texts = collapseWhitespace(root, ctx.skip)

	body := c.convertNode(ctx, root).Text
	body = strings.TrimRight(trimNewlines(body), " \t\n")
	if ctx.refs.Len() > 0 {
		if body != "" {
			body += "\n\n"
		}
		body += ctx.refs.Definitions()
	}
	if body == "" {
		return ""
	}
	return body + "\n"
}

// ConvertString parses s as an HTML document and converts it.
func (c *Converter) ConvertString(s string) (string, error) {
	return c.ConvertReader(strings.NewReader(s))
}

// ConvertReader parses an HTML document from r and converts it. Only reading and
// parsing can fail.
func (c *Converter) ConvertReader(r io.Reader) (string, error) {
	doc, err := parse.Parse(r, "")
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return c.Convert(doc), nil
}
