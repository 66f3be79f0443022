// Package output handles file naming and writing for htmlmd outputs.
// Without an output directory everything goes to stdout; with one, each input
// gets its own file named after its source (e.g. example_com_news.md for a URL,
// welcome.md for welcome.html).
package output

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gaurav-prasanna/htmlmd/core"
)

// Writer writes rendered output to stdout or to disk. It is safe for
// concurrent use.
type Writer struct {
	OutputDir string
	Stdout    io.Writer

	mu   sync.Mutex
	used map[string]bool
}

// New creates a Writer. An empty outputDir selects stdout.
func New(outputDir string) (*Writer, error) {
	w := &Writer{OutputDir: outputDir, Stdout: os.Stdout, used: make(map[string]bool)}
	if outputDir == "" {
		return w, nil
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return w, nil
}

// ToStdout reports whether output goes to stdout.
func (w *Writer) ToStdout() bool {
	return w.OutputDir == ""
}

// Write stores data for source and returns the path written, or "" for stdout.
func (w *Writer) Write(source string, data []byte, ext string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ToStdout() {
		if _, err := w.Stdout.Write(data); err != nil {
			return "", fmt.Errorf("writing stdout: %w", err)
		}
		return "", nil
	}

	name := w.unique(filenameFromSource(source))
	path := filepath.Join(w.OutputDir, name+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// unique suffixes name with _2, _3, ... when an earlier input already used it.
func (w *Writer) unique(name string) string {
	candidate := name
	for i := 2; w.used[candidate]; i++ {
		candidate = name + "_" + strconv.Itoa(i)
	}
	w.used[candidate] = true
	return candidate
}

// filenameFromSource derives a flat base name for an input.
func filenameFromSource(source string) string {
	switch {
	case source == "" || source == core.StdinSource:
		return "stdin"
	case strings.Contains(source, "://"):
		return filenameFromURL(source)
	}
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		return "document"
	}
	return sanitize(base)
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback: sanitize the raw string.
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
