package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/htmlmd/core/convert"
)

func TestNormalize(t *testing.T) {
	conv, err := convert.New(convert.WithHeadingStyle(convert.HeadingSetext))
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader("<h1>Hi</h1><p>there</p>"))
	require.NoError(t, err)

	assert.Equal(t, "Hi\n==\n\nthere\n", New(conv).Normalize(doc))
}
