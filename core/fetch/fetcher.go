// Package fetch implements the Fetcher interface.
// A source is read from standard input, fetched over HTTP or read from disk,
// depending on how it is written.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gaurav-prasanna/htmlmd/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "htmlmd/1.0 (https://github.com/gaurav-prasanna/htmlmd)"
)

// SourceFetcher reads sources from stdin, http(s) URLs or files.
type SourceFetcher struct {
	client *http.Client
	// Stdin is read for the "-" source. It defaults to os.Stdin.
	Stdin io.Reader
}

// New creates a SourceFetcher with a sensible HTTP timeout.
func New() *SourceFetcher {
	return &SourceFetcher{
		client: &http.Client{Timeout: defaultTimeout},
		Stdin:  os.Stdin,
	}
}

// IsURL reports whether source is fetched over HTTP.
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch returns the raw bytes of source. An empty source means stdin.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) (*core.FetchResult, error) {
	switch {
	case source == "" || source == core.StdinSource:
		return f.fetchStdin()
	case IsURL(source):
		return f.fetchURL(ctx, source)
	default:
		return f.fetchFile(source)
	}
}

func (f *SourceFetcher) fetchStdin() (*core.FetchResult, error) {
	in := f.Stdin
	if in == nil {
		in = os.Stdin
	}
	body, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return &core.FetchResult{Source: core.StdinSource, Body: body}, nil
}

func (f *SourceFetcher) fetchFile(path string) (*core.FetchResult, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return &core.FetchResult{Source: path, Body: body}, nil
}

func (f *SourceFetcher) fetchURL(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		Source:      url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
