package convert

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	conv, err := New()
	require.NoError(t, err)

	got := conv.Options()
	assert.Equal(t, HeadingAtx, got.HeadingStyle)
	assert.Equal(t, "* * *", got.HR)
	assert.Equal(t, "*", got.BulletListMarker)
	assert.Equal(t, CodeBlockFenced, got.CodeBlockStyle)
	assert.Equal(t, "```", got.Fence)
	assert.Equal(t, "_", got.EmDelimiter)
	assert.Equal(t, "**", got.StrongDelimiter)
	assert.Equal(t, LinkInlined, got.LinkStyle)
	assert.Equal(t, ReferenceFull, got.LinkReferenceStyle)
	assert.Equal(t, "  ", got.BR)
	assert.False(t, got.StripTrackingImages)
	assert.False(t, got.StripImagesWithoutAlt)
	assert.Contains(t, conv.Rules(), "paragraph")
}

func TestOptionsValid(t *testing.T) {
	_, err := New(
		WithFence("~~~~"),
		WithBulletListMarker("+"),
		WithTrackingImagePattern(`(?i)open\.gif`),
		WithRemoveSelectors("table.footer", "  "),
		WithKeepSelectors("table"),
	)
	assert.NoError(t, err)

	base := DefaultOptions()
	base.HeadingStyle = HeadingSetext
	conv, err := New(WithOptions(base))
	require.NoError(t, err)
	assert.Equal(t, HeadingSetext, conv.Options().HeadingStyle)
}

func TestOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"heading style", WithHeadingStyle("underline"), ErrInvalidOption},
		{"bullet", WithBulletListMarker("•"), ErrInvalidOption},
		{"code block style", WithCodeBlockStyle("boxed"), ErrInvalidOption},
		{"short fence", WithFence("``"), ErrInvalidOption},
		{"mixed fence", WithFence("``~"), ErrInvalidOption},
		{"em delimiter", WithEmDelimiter("+"), ErrInvalidOption},
		{"strong delimiter", WithStrongDelimiter("*"), ErrInvalidOption},
		{"link style", WithLinkStyle("footnote"), ErrInvalidOption},
		{"reference style", WithLinkReferenceStyle("numbered"), ErrInvalidOption},
		{"tracking pattern", WithTrackingImagePattern("("), ErrInvalidTrackingPattern},
		{"remove selector", WithRemoveSelectors("p[["), ErrInvalidSelector},
		{"keep selector", WithKeepSelectors("div >"), ErrInvalidSelector},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOptionsReportEveryError(t *testing.T) {
	_, err := New(
		WithHeadingStyle("x"),
		WithEmDelimiter("+"),
		WithTrackingImagePattern("("),
		WithRemoveSelectors("p[[", "a[["),
	)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 5)
}
