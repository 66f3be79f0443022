// Package parse turns raw HTML bytes into a DOM tree.
// Input is decoded to UTF-8 from its declared or sniffed charset before
// the HTML5 parser sees it.
package parse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// sniffLen is how much of the input is inspected for binary content.
const sniffLen = 8 << 10

// ErrBinaryInput is returned when the input does not look like text.
var ErrBinaryInput = errors.New("input looks like binary data")

// Parse reads an HTML document from r. contentType is the Content-Type header the
// bytes arrived with, if any; it takes precedence over a <meta charset> declaration.
func Parse(r io.Reader, contentType string) (*html.Node, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return nil, ErrBinaryInput
	}

	utf8, err := charset.NewReader(br, contentType)
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}
	doc, err := html.Parse(utf8)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return doc, nil
}

// Bytes parses an in-memory document.
func Bytes(b []byte, contentType string) (*html.Node, error) {
	return Parse(bytes.NewReader(b), contentType)
}
