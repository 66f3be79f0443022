// Package convert: built-in rules.
// One rule per CommonMark construct, plus the email preheader and sup/sub rules.
package convert

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
)

var (
	lineBreaks   = regexp.MustCompile(`[ \t]*\n\s*`)
	backtickRuns = regexp.MustCompile("`+")
)

// commonmarkRules returns the built-in rules in evaluation order.
func commonmarkRules() []Rule {
	return []Rule{
		{Name: "nonRenderable", Filter: Tags("script", "style", "head", "title", "template", "noscript"), Convert: removeConvert, skipChildren: true},
		{Name: "hiddenPreheader", Filter: isHiddenPreheader, Convert: convertHiddenPreheader},
		{Name: "paragraph", Filter: Tags("p"), Convert: convertParagraph},
		{Name: "lineBreak", Filter: Tags("br"), Convert: convertLineBreak},
		{Name: "heading", Filter: Tags("h1", "h2", "h3", "h4", "h5", "h6"), Convert: convertHeading},
		{Name: "blockquote", Filter: Tags("blockquote"), Convert: convertBlockquote},
		{Name: "list", Filter: Tags("ul", "ol"), Convert: convertList},
		{Name: "listItem", Filter: Tags("li"), Convert: convertListItem},
		{Name: "codeBlock", Filter: Tags("pre"), Convert: convertCodeBlock},
		{Name: "horizontalRule", Filter: Tags("hr"), Convert: convertHorizontalRule},
		{Name: "link", Filter: isLink, Convert: convertLink},
		{Name: "emphasis", Filter: Tags("em", "i"), Convert: convertEmphasis},
		{Name: "strong", Filter: Tags("strong", "b"), Convert: convertStrong},
		{Name: "code", Filter: Tags("code"), Convert: convertCode},
		{Name: "image", Filter: Tags("img"), Convert: convertImage},
		{Name: "superscript", Filter: Tags("sup"), Convert: htmlWrap("sup")},
		{Name: "subscript", Filter: Tags("sub"), Convert: htmlWrap("sub")},
	}
}

func isHiddenPreheader(n *html.Node, _ *Options) bool {
	if tagName(n) != "div" {
		return false
	}
	if hasAttr(n, "data-email-preheader") {
		return true
	}
	style := strings.ToLower(strings.ReplaceAll(attr(n, "style"), " ", ""))
	if strings.Contains(style, "display:none") {
		return true
	}
	return strings.Contains(style, "visibility:hidden") && strings.Contains(style, "height:0")
}

func convertHiddenPreheader(_ *Context, _ *html.Node, content Fragment) Fragment {
	return Inline(strings.TrimSpace(lineBreaks.ReplaceAllString(content.Text, " ")))
}

func convertParagraph(_ *Context, _ *html.Node, content Fragment) Fragment {
	return Block(strings.TrimSpace(content.Text))
}

func convertLineBreak(ctx *Context, _ *html.Node, _ Fragment) Fragment {
	return Fragment{Text: ctx.opts.BR, Trailing: Line}
}

func convertHeading(ctx *Context, n *html.Node, content Fragment) Fragment {
	level := HeadingLevel(n)
	text := strings.TrimSpace(lineBreaks.ReplaceAllString(content.Text, " "))
	if ctx.opts.HeadingStyle == HeadingSetext && level < 3 {
		underline := "="
		if level == 2 {
			underline = "-"
		}
		width := runewidth.StringWidth(text)
		if width < 1 {
			width = 1
		}
		return Block(text + "\n" + strings.Repeat(underline, width))
	}
	return Block(strings.Repeat("#", level) + " " + text)
}

func convertBlockquote(_ *Context, _ *html.Node, content Fragment) Fragment {
	lines := strings.Split(trimNewlines(content.Text), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return Block(strings.Join(lines, "\n"))
}

func convertList(_ *Context, n *html.Node, content Fragment) Fragment {
	if tagName(n.Parent) == "li" {
		return Lines(content.Text)
	}
	return Block(content.Text)
}

func convertListItem(ctx *Context, _ *html.Node, content Fragment) Fragment {
	item := ctx.CurrentItem()
	text := strings.TrimRight(trimNewlines(content.Text), " \t")
	indent := strings.Repeat(" ", len(item.Marker))
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = indent + lines[i]
		}
	}
	return Lines(item.Marker + strings.Join(lines, "\n"))
}

func convertCodeBlock(ctx *Context, n *html.Node, content Fragment) Fragment {
	code := strings.TrimSuffix(content.Text, "\n")
	if ctx.opts.CodeBlockStyle == CodeBlockIndented {
		lines := strings.Split(code, "\n")
		for i, line := range lines {
			if line != "" {
				lines[i] = "    " + line
			}
		}
		return Block(strings.Join(lines, "\n"))
	}

	fenceChar := ctx.opts.Fence[:1]
	size := len(ctx.opts.Fence)
	for _, line := range strings.Split(code, "\n") {
		run := len(line) - len(strings.TrimLeft(line, fenceChar))
		if run >= size {
			size = run + 1
		}
	}
	fence := strings.Repeat(fenceChar, size)
	return Block(fence + codeLanguage(n) + "\n" + code + "\n" + fence)
}

// codeLanguage reads a language-* or lang-* class from the pre or its code child.
func codeLanguage(pre *html.Node) string {
	nodes := []*html.Node{pre}
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if tagName(c) == "code" {
			nodes = append([]*html.Node{c}, nodes...)
			break
		}
	}
	for _, n := range nodes {
		for _, class := range strings.Fields(attr(n, "class")) {
			for _, prefix := range []string{"language-", "lang-"} {
				if lang, ok := strings.CutPrefix(class, prefix); ok && lang != "" {
					return lang
				}
			}
		}
	}
	return ""
}

func convertHorizontalRule(ctx *Context, _ *html.Node, _ Fragment) Fragment {
	return Block(ctx.opts.HR)
}

func isLink(n *html.Node, _ *Options) bool {
	return tagName(n) == "a" && hasAttr(n, "href")
}

func convertLink(ctx *Context, n *html.Node, content Fragment) Fragment {
	text := linkText(content.Text)
	href := attr(n, "href")
	title := cleanAttribute(attr(n, "title"))
	if ctx.opts.LinkStyle == LinkReferenced {
		return Inline(ctx.refs.Marker(text, href, title))
	}
	return Inline("[" + text + "](" + destination(href) + titlePart(title) + ")")
}

// linkText flattens converted content onto a single line.
func linkText(s string) string {
	var parts []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

func convertEmphasis(ctx *Context, n *html.Node, content Fragment) Fragment {
	return delimit(n, content, ctx.opts.EmDelimiter, "em", "i")
}

func convertStrong(ctx *Context, n *html.Node, content Fragment) Fragment {
	return delimit(n, content, ctx.opts.StrongDelimiter, "strong", "b")
}

// delimit wraps content in d. Inside an ancestor using the same delimiter the
// content is returned unwrapped so runs like __a__ never nest.
func delimit(n *html.Node, content Fragment, d string, same ...string) Fragment {
	if strings.TrimSpace(content.Text) == "" {
		return Fragment{}
	}
	for p := n.Parent; p != nil; p = p.Parent {
		for _, name := range same {
			if tagName(p) == name {
				return content
			}
		}
	}
	return Fragment{Text: d + content.Text + d, open: d, close: d}
}

func convertCode(_ *Context, _ *html.Node, content Fragment) Fragment {
	code := content.Text
	if code == "" {
		return Fragment{}
	}
	code = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(code)

	runs := make(map[int]bool)
	for _, run := range backtickRuns.FindAllString(code, -1) {
		runs[len(run)] = true
	}
	size := 1
	for runs[size] {
		size++
	}
	delimiter := strings.Repeat("`", size)

	pad := ""
	if strings.HasPrefix(code, "`") || strings.HasSuffix(code, "`") ||
		(strings.HasPrefix(code, " ") && strings.HasSuffix(code, " ") && strings.TrimSpace(code) != "") {
		pad = " "
	}
	return Inline(delimiter + pad + code + pad + delimiter)
}

func convertImage(ctx *Context, n *html.Node, _ Fragment) Fragment {
	src := attr(n, "src")
	if src == "" {
		return Fragment{}
	}
	alt := ctx.Escape(cleanAttribute(attr(n, "alt")))
	title := cleanAttribute(attr(n, "title"))
	if ctx.opts.LinkStyle == LinkReferenced {
		return Inline("!" + ctx.refs.Marker(alt, src, title))
	}
	return Inline("![" + alt + "](" + destination(src) + titlePart(title) + ")")
}

func htmlWrap(tag string) ConvertFunc {
	return func(_ *Context, _ *html.Node, content Fragment) Fragment {
		return Inline("<" + tag + ">" + strings.TrimSpace(content.Text) + "</" + tag + ">")
	}
}

// HeadingLevel returns 1–6 for h1–h6 and 0 for anything else.
func HeadingLevel(n *html.Node) int {
	if name := tagName(n); len(name) == 2 && name[0] == 'h' {
		if l, err := strconv.Atoi(name[1:]); err == nil {
			return l
		}
	}
	return 0
}
