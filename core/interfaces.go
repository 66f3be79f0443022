// Package core defines the pipeline interfaces for htmlmd.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"

	"golang.org/x/net/html"
)

// StdinSource names standard input as a pipeline source.
const StdinSource = "-"

// FetchResult holds the raw bytes of one input and how they were labelled.
type FetchResult struct {
	Source      string
	ContentType string
	Body        []byte
}

// Extraction is the part of a parsed document that gets converted, plus the
// metadata found along the way.
type Extraction struct {
	Root     *html.Node
	Title    string
	Language string
}

// DocumentMetadata describes a converted input.
type DocumentMetadata struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Language    string `json:"language"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Section represents a heading-delimited section of content.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text  string `json:"text"`
	Href  string `json:"href"`
	Title string `json:"title,omitempty"`
}

// Reference is one entry of a reference-definition block.
type Reference struct {
	ID    string `json:"id"`
	Href  string `json:"href"`
	Title string `json:"title,omitempty"`
}

// DocumentContent holds the text and structured content of a document.
type DocumentContent struct {
	Text     string    `json:"text"`
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
}

// DocumentStructure holds structural metadata parsed from the Markdown.
type DocumentStructure struct {
	Headings   []Heading   `json:"headings"`
	Links      []Link      `json:"links"`
	References []Reference `json:"references"`
	CodeBlocks int         `json:"code_blocks"`
	Lists      int         `json:"lists"`
}

// DocumentJSON is the complete JSON output for a single document.
type DocumentJSON struct {
	Metadata  DocumentMetadata  `json:"metadata"`
	Content   DocumentContent   `json:"content"`
	Structure DocumentStructure `json:"structure"`
}

// Fetcher retrieves the raw bytes of a source: a file path, an http(s) URL or "-".
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// Extractor picks the subtree to convert out of a parsed document.
type Extractor interface {
	Extract(doc *html.Node) (*Extraction, error)
}

// Normalizer converts an HTML tree into Markdown (the canonical format).
type Normalizer interface {
	Normalize(root *html.Node) string
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta DocumentMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
