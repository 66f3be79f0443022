// Package convert: rule registry.
package convert

import (
	"strings"

	"golang.org/x/net/html"
)

// Filter selects the nodes a rule applies to.
type Filter func(n *html.Node, opts *Options) bool

// Tags returns a filter matching elements by tag name, case-insensitively.
func Tags(names ...string) Filter {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(n)] = true
	}
	return func(n *html.Node, _ *Options) bool {
		return want[tagName(n)]
	}
}

// ConvertFunc turns a node and its already-converted children into a Fragment.
type ConvertFunc func(ctx *Context, n *html.Node, content Fragment) Fragment

// Rule pairs a filter with the conversion applied to matching nodes.
type Rule struct {
	Name    string
	Filter  Filter
	Convert ConvertFunc

	// skipChildren rules never look at their content, so the subtree is not walked
	// and links inside it are not collected.
	skipChildren bool
}

// Rules is the ordered rule registry of a converter.
type Rules struct {
	custom  []Rule
	builtin []Rule
	keep    []Rule
	remove  []Rule
}

func newRules(builtin []Rule) *Rules {
	return &Rules{builtin: builtin}
}

// Add registers a rule ahead of every existing one.
func (r *Rules) Add(rule Rule) {
	r.custom = append([]Rule{rule}, r.custom...)
}

// Keep renders matching elements as HTML. Built-in rules take precedence.
func (r *Rules) Keep(f Filter) {
	r.keep = append(r.keep, Rule{Name: "keep", Filter: f, Convert: keepConvert, skipChildren: true})
}

// Remove drops matching elements. Built-in rules take precedence.
func (r *Rules) Remove(f Filter) {
	r.remove = append(r.remove, Rule{Name: "remove", Filter: f, Convert: removeConvert, skipChildren: true})
}

// Resolve returns the single rule that applies to n.
func (r *Rules) Resolve(n *html.Node, opts *Options, skip map[*html.Node]bool) Rule {
	if isBlank(n, skip) {
		return blankRule
	}
	for _, group := range [][]Rule{r.custom, r.builtin, r.keep, r.remove} {
		for _, rule := range group {
			if rule.Filter(n, opts) {
				return rule
			}
		}
	}
	return fallbackRule
}

// Names lists the registered rules in evaluation order.
func (r *Rules) Names() []string {
	var names []string
	for _, group := range [][]Rule{r.custom, r.builtin, r.keep, r.remove} {
		for _, rule := range group {
			names = append(names, rule.Name)
		}
	}
	return names
}

var blankRule = Rule{Name: "blank", Convert: blankConvert, skipChildren: true}

func blankConvert(_ *Context, n *html.Node, _ Fragment) Fragment {
	if IsBlock(n) {
		return Empty(Blank)
	}
	return Fragment{}
}

var fallbackRule = Rule{
	Name: "default",
	Convert: func(_ *Context, n *html.Node, content Fragment) Fragment {
		if IsBlock(n) {
			return Fragment{
				Text:     content.Text,
				Leading:  Blank,
				Trailing: Blank,
				open:     content.open,
				close:    content.close,
			}
		}
		return content
	},
}

func keepConvert(_ *Context, n *html.Node, _ Fragment) Fragment {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return Fragment{}
	}
	return Block(b.String())
}

func removeConvert(*Context, *html.Node, Fragment) Fragment {
	return Fragment{}
}
