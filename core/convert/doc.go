// Package convert turns HTML trees into CommonMark-style Markdown.
//
// A Converter walks a *html.Node tree depth first. Every element is matched
// against an ordered rule table and converted after its children, producing a
// Fragment: text plus the vertical separation it wants from its neighbours.
// Sibling fragments are joined so blank lines collapse instead of stacking.
//
// Before the walk, a filter pass marks nodes to skip (tracking pixels, images
// without alt text, elements matched by CSS selectors) and a whitespace pass
// collapses text the way a browser would. Neither pass modifies the tree.
//
//	conv, err := convert.New(convert.WithHeadingStyle(convert.HeadingSetext))
//	if err != nil {
//		return err
//	}
//	md, err := conv.ConvertString("<h1>Hello</h1>")
//
// A Converter is safe for concurrent use once configured.
package convert
