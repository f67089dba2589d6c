package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayCount_RoundsUpPartialRows(t *testing.T) {
	assert.Equal(t, 11, DisplayCount(300, 15, 7))
	assert.Equal(t, 0, DisplayCount(0, 15, 7))
	assert.Equal(t, 0, DisplayCount(-5, 15, 7))
	assert.Equal(t, 0, DisplayCount(100, 0, 0))
	assert.Equal(t, 20, DisplayCount(20, 1, 0))
	assert.Equal(t, 7, DisplayCount(20, 1, 1))
}

func TestDisplayCount_CeilingProperty(t *testing.T) {
	for itemHeight := 1; itemHeight <= 20; itemHeight++ {
		for itemPadding := 0; itemPadding <= 8; itemPadding++ {
			stride := itemHeight + 2*itemPadding
			for body := 0; body <= 400; body += 7 {
				n := DisplayCount(body, itemHeight, itemPadding)
				require.GreaterOrEqual(t, n, 0)
				require.GreaterOrEqual(t, n*stride, body, "body=%d h=%d p=%d", body, itemHeight, itemPadding)
				if n > 0 {
					require.Less(t, (n-1)*stride, body, "body=%d h=%d p=%d", body, itemHeight, itemPadding)
				}
			}
		}
	}
}

func TestContentBodyHeight(t *testing.T) {
	assert.Equal(t, 268, ContentBodyHeight(300, 30, 1))
	assert.Equal(t, 0, ContentBodyHeight(10, 30, 1))
}

func TestVisibleRange_ScrolledToRow50(t *testing.T) {
	n := DisplayCount(300, 15, 7)
	top := ScrollTopForRow(50, 15, 7)

	start, end := VisibleRange(top, 15, 7, n, 100)
	assert.Equal(t, 50, start)
	assert.Equal(t, 61, end) // rows 50..60
}

func TestVisibleRange_Clamps(t *testing.T) {
	start, end := VisibleRange(0, 15, 7, 11, 5)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	start, end = VisibleRange(100000, 15, 7, 11, 100)
	assert.Equal(t, 99, start)
	assert.Equal(t, 100, end)

	start, end = VisibleRange(0, 15, 7, 11, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)

	// A partial offset keeps the row that is still partly visible on top.
	start, _ = VisibleRange(28, 15, 7, 11, 100)
	assert.Equal(t, 0, start)
}

func TestMaxScroll(t *testing.T) {
	assert.Equal(t, 100*29-300, MaxScrollTop(100, 300, 15, 7))
	assert.Equal(t, 0, MaxScrollTop(3, 300, 15, 7))
	assert.Equal(t, 20, MaxScrollLeft(100, 80))
	assert.Equal(t, 0, MaxScrollLeft(50, 80))
}
