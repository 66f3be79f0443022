package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/htmlmd/core"
	"github.com/gaurav-prasanna/htmlmd/core/parse"
)

// execute runs the CLI with args and stdin, isolated from any user config.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConvertStdin(t *testing.T) {
	out, _, err := execute(t, "<h1>Hello</h1><p>This is a <strong>test</strong>.</p>")
	require.NoError(t, err)
	assert.Equal(t, "# Hello\n\nThis is a **test**.\n", out)

	out, _, err = execute(t, "<h1>Hello</h1>", "convert", "-", "--heading-style", "setext")
	require.NoError(t, err)
	assert.Equal(t, "Hello\n=====\n", out)
}

func TestConvertEmptyInput(t *testing.T) {
	out, _, err := execute(t, "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestConvertFileWithCleanup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.html")
	html := `<main><p>Hi <img src="https://t.example/open?id=1" width="1" height="1"></p>` +
		`<div class="footer">Unsubscribe</div></main>`
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))

	out, _, err := execute(t, "", path, "--strip-tracking-images", "--remove-selector", ".footer")
	require.NoError(t, err)
	assert.Equal(t, "Hi\n", out)
}

func TestConvertJSON(t *testing.T) {
	out, _, err := execute(t, `<html lang="en"><title>Receipt</title><h2>Total</h2><p><a href="https://x.test">Pay</a></p></html>`,
		"--format", "json")
	require.NoError(t, err)

	var doc core.DocumentJSON
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "-", doc.Metadata.Source)
	assert.Equal(t, "Receipt", doc.Metadata.Title)
	assert.Equal(t, "en", doc.Metadata.Language)
	assert.Equal(t, []core.Heading{{Level: 2, Text: "Total"}}, doc.Structure.Headings)
	assert.Equal(t, []core.Link{{Text: "Pay", Href: "https://x.test"}}, doc.Structure.Links)
}

func TestConvertOutputDir(t *testing.T) {
	src := t.TempDir()
	a := filepath.Join(src, "a.html")
	b := filepath.Join(src, "b.html")
	require.NoError(t, os.WriteFile(a, []byte("<p>first</p>"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("<p>second</p>"), 0o644))
	dir := filepath.Join(t.TempDir(), "out")

	out, _, err := execute(t, "", "convert", a, b, "--output-dir", dir, "--jobs", "2")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "a.md"))

	data, err := os.ReadFile(filepath.Join(dir, "b.md"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestConvertErrors(t *testing.T) {
	t.Run("multiple inputs need an output dir", func(t *testing.T) {
		_, _, err := execute(t, "", "a.html", "b.html")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--output-dir")
	})
	t.Run("binary input", func(t *testing.T) {
		_, _, err := execute(t, "GIF89a\x00\x01\x02")
		require.ErrorIs(t, err, parse.ErrBinaryInput)
	})
	t.Run("invalid option", func(t *testing.T) {
		_, _, err := execute(t, "<p>x</p>", "--fence", "``")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fence")
	})
	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "", "does-not-exist.html")
		require.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("partial failure", func(t *testing.T) {
		good := filepath.Join(t.TempDir(), "good.html")
		require.NoError(t, os.WriteFile(good, []byte("<p>ok</p>"), 0o644))
		_, stderr, err := execute(t, "", good, "missing.html", "--output-dir", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1/2 inputs failed")
		assert.Contains(t, stderr, "missing.html")
	})
}
