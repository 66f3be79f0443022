package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		name  string
		frags []Fragment
		want  string
	}{
		{"blocks", []Fragment{Block("a"), Block("b")}, "a\n\nb"},
		{"inline", []Fragment{Inline("a"), Inline(" "), Inline("b")}, "a b"},
		{"lines", []Fragment{Lines("a"), Lines("b")}, "a\nb"},
		{"line then block", []Fragment{Lines("a"), Block("b")}, "a\n\nb"},
		{"separations never stack", []Fragment{Block("a"), Empty(Blank), Empty(Blank), Block("b")}, "a\n\nb"},
		{"empty inline adds nothing", []Fragment{Inline("a"), {}, Inline("b")}, "ab"},
		{"hard break", []Fragment{Inline("a"), {Text: "  ", Trailing: Line}, Inline("b")}, "a  \nb"},
		{"block trims newlines", []Fragment{Block("\n\na\n\n"), Inline("b")}, "a\n\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Join(tt.frags...).Text)
		})
	}
}

func TestJoinSeparationRequests(t *testing.T) {
	got := Join(Empty(Line), Block("a"), Inline("b"))
	assert.Equal(t, "a\n\nb", got.Text)
	assert.Equal(t, Blank, got.Leading)
	assert.Equal(t, None, got.Trailing)

	empty := Join(Empty(Blank), Fragment{})
	assert.Empty(t, empty.Text)
	assert.Equal(t, Blank, empty.Leading)
	assert.Equal(t, Blank, empty.Trailing)

	assert.Equal(t, Fragment{}, Join())
}

func TestJoinMergesDelimiters(t *testing.T) {
	a := Fragment{Text: "**a**", open: "**", close: "**"}
	b := Fragment{Text: "**b**", open: "**", close: "**"}

	got := Join(a, b)
	assert.Equal(t, "**ab**", got.Text)
	assert.Equal(t, "**", got.open)
	assert.Equal(t, "**", got.close)

	// Different delimiters or a separation keep the runs apart.
	em := Fragment{Text: "_c_", open: "_", close: "_"}
	assert.Equal(t, "**a**_c_", Join(a, em).Text)
	assert.Equal(t, "**a**\n\n**b**", Join(a, Empty(Blank), b).Text)
}
