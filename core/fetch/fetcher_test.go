package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<p>hi</p>"))
	}))
	defer srv.Close()

	res, err := New().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, res.Source)
	assert.Equal(t, "text/html; charset=iso-8859-1", res.ContentType)
	assert.Equal(t, "<p>hi</p>", string(res.Body))
}

func TestFetchURLStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.html")
	require.NoError(t, os.WriteFile(path, []byte("<b>x</b>"), 0o644))

	res, err := New().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Source)
	assert.Equal(t, "<b>x</b>", string(res.Body))

	_, err = New().Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.html"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetchStdin(t *testing.T) {
	f := New()
	for _, source := range []string{"", "-"} {
		f.Stdin = strings.NewReader("<p>piped</p>")
		res, err := f.Fetch(context.Background(), source)
		require.NoError(t, err)
		assert.Equal(t, "-", res.Source)
		assert.Equal(t, "<p>piped</p>", string(res.Body))
	}
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com"))
	assert.True(t, IsURL("HTTP://example.com"))
	assert.False(t, IsURL("mail.html"))
	assert.False(t, IsURL("ftp://example.com"))
}
