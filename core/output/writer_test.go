package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameFromSource(t *testing.T) {
	tests := []struct{ source, want string }{
		{"-", "stdin"},
		{"", "stdin"},
		{"https://example.com/docs/intro", "example_com_docs_intro"},
		{"https://example.com/", "example_com"},
		{"mail/welcome.html", "welcome"},
		{"/tmp/order receipt.htm", "order_receipt"},
		{"news-letter.html", "news-letter"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, filenameFromSource(tt.source), tt.source)
	}
}

func TestWriteStdout(t *testing.T) {
	w, err := New("")
	require.NoError(t, err)
	var buf bytes.Buffer
	w.Stdout = &buf

	path, err := w.Write("-", []byte("# hi\n"), ".md")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "# hi\n", buf.String())
}

func TestWriteDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	require.NoError(t, err)

	first, err := w.Write("a/welcome.html", []byte("one"), ".md")
	require.NoError(t, err)
	second, err := w.Write("b/welcome.html", []byte("two"), ".md")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "welcome.md"), first)
	assert.Equal(t, filepath.Join(dir, "welcome_2.md"), second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
