// Package convert: options.
// Converter configuration, functional options and validation.
package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/hashicorp/go-multierror"
)

// HeadingStyle selects how headings are rendered.
type HeadingStyle string

const (
	HeadingAtx    HeadingStyle = "atx"
	HeadingSetext HeadingStyle = "setext"
)

// CodeBlockStyle selects how pre blocks are rendered.
type CodeBlockStyle string

const (
	CodeBlockFenced   CodeBlockStyle = "fenced"
	CodeBlockIndented CodeBlockStyle = "indented"
)

// LinkStyle selects inline or reference links.
type LinkStyle string

const (
	LinkInlined    LinkStyle = "inlined"
	LinkReferenced LinkStyle = "referenced"
)

// LinkReferenceStyle selects the in-text marker used by reference links.
type LinkReferenceStyle string

const (
	ReferenceFull      LinkReferenceStyle = "full"
	ReferenceCollapsed LinkReferenceStyle = "collapsed"
	ReferenceShortcut  LinkReferenceStyle = "shortcut"
)

// DefaultTrackingPattern matches image URLs typical of mail-open beacons.
const DefaultTrackingPattern = `(?i)(pixel|beacon|\.com/ts|splash\.tools/o/|tr/op|track|klclick\.com/o/|ho\.gif|transp|msg_del_|analytics|spacer|tagpixel|emimp/ip_|utm_|/open\?|\.gif\?|1x1|/tr/|/track\.)`

var defaultTrackingRegexp = regexp.MustCompile(DefaultTrackingPattern)

// Options is the immutable configuration of a Converter.
type Options struct {
	HeadingStyle          HeadingStyle
	HR                    string
	BulletListMarker      string
	CodeBlockStyle        CodeBlockStyle
	Fence                 string
	EmDelimiter           string
	StrongDelimiter       string
	LinkStyle             LinkStyle
	LinkReferenceStyle    LinkReferenceStyle
	BR                    string
	StripTrackingImages   bool
	TrackingImagePattern  string // empty selects the built-in heuristic
	StripImagesWithoutAlt bool
	RemoveSelectors       []string
	KeepSelectors         []string

	trackingRegexp *regexp.Regexp
	removeMatchers []cascadia.Selector
	keepMatchers   []cascadia.Selector
}

// DefaultOptions returns the options used when New is called without arguments.
func DefaultOptions() Options {
	return Options{
		HeadingStyle:       HeadingAtx,
		HR:                 "* * *",
		BulletListMarker:   "*",
		CodeBlockStyle:     CodeBlockFenced,
		Fence:              "```",
		EmDelimiter:        "_",
		StrongDelimiter:    "**",
		LinkStyle:          LinkInlined,
		LinkReferenceStyle: ReferenceFull,
		BR:                 "  ",
	}
}

// Option mutates Options during construction.
type Option func(*Options)

func WithHeadingStyle(s HeadingStyle) Option { return func(o *Options) { o.HeadingStyle = s } }
func WithHR(hr string) Option               { return func(o *Options) { o.HR = hr } }
func WithBulletListMarker(m string) Option  { return func(o *Options) { o.BulletListMarker = m } }
func WithCodeBlockStyle(s CodeBlockStyle) Option {
	return func(o *Options) { o.CodeBlockStyle = s }
}
func WithFence(f string) Option           { return func(o *Options) { o.Fence = f } }
func WithEmDelimiter(d string) Option     { return func(o *Options) { o.EmDelimiter = d } }
func WithStrongDelimiter(d string) Option { return func(o *Options) { o.StrongDelimiter = d } }
func WithLinkStyle(s LinkStyle) Option    { return func(o *Options) { o.LinkStyle = s } }
func WithLinkReferenceStyle(s LinkReferenceStyle) Option {
	return func(o *Options) { o.LinkReferenceStyle = s }
}
func WithBR(br string) Option { return func(o *Options) { o.BR = br } }

// WithStripTrackingImages drops images recognized as tracking pixels.
func WithStripTrackingImages(strip bool) Option {
	return func(o *Options) { o.StripTrackingImages = strip }
}

// WithTrackingImagePattern replaces the built-in tracking heuristic with a regular
// expression matched against the image src.
func WithTrackingImagePattern(pattern string) Option {
	return func(o *Options) { o.TrackingImagePattern = pattern }
}

// WithStripImagesWithoutAlt drops images with a missing or empty alt attribute.
func WithStripImagesWithoutAlt(strip bool) Option {
	return func(o *Options) { o.StripImagesWithoutAlt = strip }
}

// WithRemoveSelectors drops every element matching one of the CSS selectors.
func WithRemoveSelectors(selectors ...string) Option {
	return func(o *Options) { o.RemoveSelectors = append(o.RemoveSelectors, selectors...) }
}

// WithKeepSelectors renders every element matching one of the CSS selectors as HTML.
func WithKeepSelectors(selectors ...string) Option {
	return func(o *Options) { o.KeepSelectors = append(o.KeepSelectors, selectors...) }
}

// WithOptions replaces the whole option set.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

// compile validates the options and prepares the derived matchers. Every invalid
// field is reported in the returned error.
func (o *Options) compile() error {
	var result *multierror.Error

	switch o.HeadingStyle {
	case HeadingAtx, HeadingSetext:
	default:
		result = multierror.Append(result, fmt.Errorf("%w: heading style %q", ErrInvalidOption, o.HeadingStyle))
	}
	switch o.BulletListMarker {
	case "*", "+", "-":
	default:
		result = multierror.Append(result, fmt.Errorf("%w: bullet list marker %q", ErrInvalidOption, o.BulletListMarker))
	}
	switch o.CodeBlockStyle {
	case CodeBlockFenced, CodeBlockIndented:
	default:
		result = multierror.Append(result, fmt.Errorf("%w: code block style %q", ErrInvalidOption, o.CodeBlockStyle))
	}
	if !validFence(o.Fence) {
		result = multierror.Append(result, fmt.Errorf("%w: fence %q", ErrInvalidOption, o.Fence))
	}
	switch o.EmDelimiter {
	case "_", "*":
	default:
		result = multierror.Append(result, fmt.Errorf("%w: emphasis delimiter %q", ErrInvalidOption, o.EmDelimiter))
	}
	switch o.StrongDelimiter {
	case "**", "__":
	default:
		result = multierror.Append(result, fmt.Errorf("%w: strong delimiter %q", ErrInvalidOption, o.StrongDelimiter))
	}
	switch o.LinkStyle {
	case LinkInlined, LinkReferenced:
	default:
		result = multierror.Append(result, fmt.Errorf("%w: link style %q", ErrInvalidOption, o.LinkStyle))
	}
	switch o.LinkReferenceStyle {
	case ReferenceFull, ReferenceCollapsed, ReferenceShortcut:
	default:
		result = multierror.Append(result, fmt.Errorf("%w: link reference style %q", ErrInvalidOption, o.LinkReferenceStyle))
	}

	o.trackingRegexp = nil
	if o.TrackingImagePattern != "" {
		re, err := regexp.Compile(o.TrackingImagePattern)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%w: %v", ErrInvalidTrackingPattern, err))
		} else {
			o.trackingRegexp = re
		}
	}

	var err error
	if o.removeMatchers, err = compileSelectors(o.RemoveSelectors); err != nil {
		result = multierror.Append(result, err)
	}
	if o.keepMatchers, err = compileSelectors(o.KeepSelectors); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

func compileSelectors(selectors []string) ([]cascadia.Selector, error) {
	var result *multierror.Error
	out := make([]cascadia.Selector, 0, len(selectors))
	for _, s := range selectors {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		sel, err := cascadia.Compile(s)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, s, err))
			continue
		}
		out = append(out, sel)
	}
	return out, result.ErrorOrNil()
}

// validFence accepts three or more backticks or tildes.
func validFence(f string) bool {
	if len(f) < 3 {
		return false
	}
	c := f[0]
	if c != '`' && c != '~' {
		return false
	}
	return strings.Count(f, string(c)) == len(f)
}
