// Package render: PDF renderer.
// Converts Markdown into a styled PDF using gofpdf.
// Handles headings (variable font sizes), paragraphs, code blocks, lists and quotes.
// Images are not rendered.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/htmlmd/core"
)

// PDFRenderer renders Markdown content as a PDF document: headings with
// variable font sizes, paragraphs, code blocks, lists and quotes. Images are
// not embedded.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.DocumentMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(meta.Title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(meta.Title), "", "L", false)
		pdf.Ln(4)
	}

	if meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	for _, l := range scanMarkdown(markdown) {
		switch l.kind {
		case kindFence:
			pdf.Ln(2)
		case kindCode:
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(l.raw), "", "L", true)
		case kindBlank:
			pdf.Ln(3)
		case kindHeading:
			renderHeading(pdf, tr(plainInline(l.text)), l.level)
		case kindUnderline, kindDefinition:
		case kindRule:
			pdf.Ln(2)
			w, _ := pdf.GetPageSize()
			left, _, right, _ := pdf.GetMargins()
			y := pdf.GetY()
			pdf.Line(left, y, w-right, y)
			pdf.Ln(2)
		case kindListItem:
			pdf.SetFont("Helvetica", "", 10)
			indent := float64(l.level-1) * 6
			pdf.SetX(pdf.GetX() + indent)
			pdf.MultiCell(0, 5, tr(bullet(l.raw)+plainInline(l.text)), "", "L", false)
		case kindQuote:
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(80, 80, 80)
			pdf.SetX(pdf.GetX() + 6)
			pdf.MultiCell(0, 5, tr(plainInline(l.text)), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(plainInline(l.text)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// bullet keeps ordered list numbers and uses a dash for bullets.
func bullet(line string) string {
	marker := strings.Fields(line)[0]
	if strings.HasSuffix(marker, ".") {
		return marker + " "
	}
	return "- "
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}
