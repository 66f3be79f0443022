// Package render provides output renderers for the htmlmd pipeline.
// This file builds the structured JSON output from Markdown and metadata,
// reading headings, links, reference definitions, code blocks and list
// items back out of the converter's Markdown.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/gaurav-prasanna/htmlmd/core"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts Markdown and metadata into the DocumentJSON structure.
func (r *JSONRenderer) Render(markdown string, meta core.DocumentMetadata) ([]byte, error) {
	lines := scanMarkdown(markdown)
	byLabel, defs := definitions(lines)

	headings := extractHeadings(lines)
	references := make([]core.Reference, 0, len(defs))
	for _, d := range defs {
		references = append(references, core.Reference{ID: d.id, Href: d.href, Title: d.title})
	}

	doc := core.DocumentJSON{
		Metadata: meta,
		Content: core.DocumentContent{
			Text:     plainText(lines),
			Markdown: markdown,
			Sections: buildSections(lines),
		},
		Structure: core.DocumentStructure{
			Headings:   headings,
			Links:      extractLinks(lines, byLabel),
			References: references,
			CodeBlocks: countKind(lines, kindFence) / 2,
			Lists:      countKind(lines, kindListItem),
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func extractHeadings(lines []mdLine) []core.Heading {
	headings := make([]core.Heading, 0)
	for _, l := range lines {
		if l.kind == kindHeading {
			headings = append(headings, core.Heading{Level: l.level, Text: plainInline(l.text)})
		}
	}
	return headings
}

// extractLinks lists inline links and reference links that resolve to a
// definition. Images are not links.
func extractLinks(lines []mdLine, byLabel map[string]refTarget) []core.Link {
	fold := cases.Fold()
	links := make([]core.Link, 0)
	for _, l := range lines {
		switch l.kind {
		case kindCode, kindFence, kindDefinition, kindBlank, kindUnderline, kindRule:
			continue
		}
		text := l.text
		for _, m := range inlineLink.FindAllStringSubmatch(text, -1) {
			if m[1] == "!" {
				continue
			}
			links = append(links, core.Link{Text: plainInline(m[2]), Href: linkDestination(m[3]), Title: unescape(m[4])})
		}
		text = inlineLink.ReplaceAllString(text, "")
		for _, m := range refLink.FindAllStringSubmatch(text, -1) {
			if m[1] == "!" {
				continue
			}
			label := m[3]
			if label == "" {
				label = m[2]
			}
			if t, ok := byLabel[foldLabel(fold, label)]; ok {
				links = append(links, core.Link{Text: plainInline(m[2]), Href: t.href, Title: t.title})
			}
		}
	}
	return links
}

// buildSections groups the Markdown under each heading.
func buildSections(lines []mdLine) []core.Section {
	var (
		sections []core.Section
		current  *core.Section
		body     []string
	)
	flush := func() {
		if current != nil {
			current.Text = strings.TrimSpace(strings.Join(body, "\n"))
			sections = append(sections, *current)
		}
	}
	for _, l := range lines {
		switch {
		case l.kind == kindHeading:
			flush()
			current = &core.Section{Heading: plainInline(l.text), Level: l.level}
			body = nil
		case l.kind == kindUnderline || l.kind == kindDefinition:
		case current != nil:
			body = append(body, l.raw)
		}
	}
	flush()
	return sections
}

func countKind(lines []mdLine, kind lineKind) int {
	n := 0
	for _, l := range lines {
		if l.kind == kind {
			n++
		}
	}
	return n
}

// plainText renders the Markdown without markup. Code is kept as written.
func plainText(lines []mdLine) string {
	var out []string
	for _, l := range lines {
		switch l.kind {
		case kindFence, kindUnderline, kindRule, kindDefinition:
		case kindCode:
			out = append(out, l.raw)
		case kindBlank:
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
		default:
			out = append(out, plainInline(l.text))
		}
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
