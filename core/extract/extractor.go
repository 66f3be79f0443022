// Package extract implements the Extractor interface.
// It reads document metadata and, when asked, narrows conversion to the
// best content container (<main>, <article>, or <body>). The parsed tree is
// never modified.
package extract

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/htmlmd/core"
)

// ErrNoDocument is returned for a nil tree.
var ErrNoDocument = errors.New("no document to extract from")

// containers are tried in priority order when MainContent is set.
var containers = []atom.Atom{atom.Main, atom.Article, atom.Body}

// HTMLExtractor picks the subtree to convert.
type HTMLExtractor struct {
	// MainContent restricts conversion to the first content container found.
	MainContent bool
}

// New creates an HTMLExtractor.
func New(mainContent bool) *HTMLExtractor {
	return &HTMLExtractor{MainContent: mainContent}
}

// Extract returns the conversion root of doc together with its title and language.
func (e *HTMLExtractor) Extract(doc *html.Node) (*core.Extraction, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	d := goquery.NewDocumentFromNode(doc)

	out := &core.Extraction{
		Root:     doc,
		Title:    strings.Join(strings.Fields(d.Find("title").First().Text()), " "),
		Language: strings.TrimSpace(d.Find("html").First().AttrOr("lang", "")),
	}
	if out.Title == "" {
		out.Title = strings.Join(strings.Fields(d.Find("h1").First().Text()), " ")
	}

	if e.MainContent {
		for _, a := range containers {
			if sel := d.Find(a.String()); sel.Length() > 0 {
				out.Root = sel.Get(0)
				break
			}
		}
	}
	return out, nil
}
