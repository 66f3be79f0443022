// Package convert: filter pass.
// Computes the set of nodes to skip before traversal, leaving the tree untouched.
package convert

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var styleHidden = regexp.MustCompile(`(?i)display\s*:\s*none|visibility\s*:\s*hidden`)

// filterNodes walks the tree and returns the set of nodes the traversal must not
// render. The tree itself is left untouched.
func filterNodes(root *html.Node, opts *Options) map[*html.Node]bool {
	skip := make(map[*html.Node]bool)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if skipNode(c, opts) {
				skip[c] = true
				continue
			}
			walk(c)
		}
	}
	if root.Type == html.ElementNode && skipNode(root, opts) {
		skip[root] = true
		return skip
	}
	walk(root)
	return skip
}

func skipNode(n *html.Node, opts *Options) bool {
	for _, sel := range opts.removeMatchers {
		if sel.Match(n) {
			return true
		}
	}
	if tagName(n) != "img" {
		return false
	}
	if opts.StripImagesWithoutAlt && strings.TrimSpace(attr(n, "alt")) == "" {
		return true
	}
	return opts.StripTrackingImages && IsTrackingImage(n, opts)
}

// IsTrackingImage reports whether img looks like a tracking pixel. A configured
// pattern is authoritative; without one the src is checked against
// DefaultTrackingPattern and the element against 1×1 or hidden dimensions.
func IsTrackingImage(img *html.Node, opts *Options) bool {
	src := attr(img, "src")
	if opts != nil && opts.trackingRegexp != nil {
		return opts.trackingRegexp.MatchString(src)
	}
	if defaultTrackingRegexp.MatchString(src) {
		return true
	}
	if tiny(attr(img, "width")) || tiny(attr(img, "height")) {
		return true
	}
	style := attr(img, "style")
	if styleHidden.MatchString(style) {
		return true
	}
	for _, decl := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(prop)) {
		case "width", "height":
			value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
			if tiny(value) {
				return true
			}
		}
	}
	return false
}

// tiny reports whether a dimension value is at most one pixel.
func tiny(v string) bool {
	v = strings.TrimSuffix(strings.TrimSpace(strings.ToLower(v)), "px")
	if v == "" {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && f <= 1
}
