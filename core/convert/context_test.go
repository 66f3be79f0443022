package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadMarker(t *testing.T) {
	assert.Equal(t, "*   ", padMarker("*"))
	assert.Equal(t, "1.  ", padMarker("1."))
	assert.Equal(t, "10. ", padMarker("10."))
	assert.Equal(t, "100. ", padMarker("100."))
}

func TestCurrentItemOutsideList(t *testing.T) {
	opts := DefaultOptions()
	ctx := newContext(&opts)
	item := ctx.CurrentItem()
	assert.False(t, item.Ordered)
	assert.Equal(t, 1, item.Index)
	assert.Equal(t, "*   ", item.Marker)
	assert.Zero(t, ctx.ListDepth())
	assert.False(t, ctx.InVerbatim())
}
