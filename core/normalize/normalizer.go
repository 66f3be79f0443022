// Package normalize implements the Normalizer interface.
// It converts an HTML tree into Markdown, which serves as the
// canonical intermediate format for all downstream renderers.
package normalize

import (
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/htmlmd/core/convert"
)

// MarkdownNormalizer converts HTML to Markdown with a configured converter.
type MarkdownNormalizer struct {
	conv *convert.Converter
}

// New creates a MarkdownNormalizer using conv.
func New(conv *convert.Converter) *MarkdownNormalizer {
	return &MarkdownNormalizer{conv: conv}
}

// Normalize converts the tree rooted at root into Markdown.
func (n *MarkdownNormalizer) Normalize(root *html.Node) string {
	return n.conv.Convert(root)
}
