package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrozenWidth_SelectionColumn(t *testing.T) {
	widths := []int{150}

	// frozenColumnIndex=0 with row selection: only the checkbox column.
	assert.Equal(t, SelectionColumnWidth(15, 7), FrozenWidth(widths, 0, true, 15, 7))
	assert.Equal(t, 150+SelectionColumnWidth(15, 7), FrozenWidth(widths, 1, true, 15, 7))
	assert.Equal(t, 29, SelectionColumnWidth(15, 7))
}

func TestFrozenWidth_SumsColumnsBeforeIndex(t *testing.T) {
	widths := []int{80, 60, 150, 150}

	assert.Equal(t, 0, FrozenWidth(widths, 0, false, 15, 7))
	assert.Equal(t, 140, FrozenWidth(widths, 2, false, 15, 7))
	assert.Equal(t, 440, FrozenWidth(widths, 4, false, 15, 7))
}

func TestFrozenWidth_NeverNegative(t *testing.T) {
	assert.Equal(t, 0, FrozenWidth([]int{-10, -5}, 2, false, 15, 7))
	assert.Equal(t, 0, FrozenWidth(nil, 3, false, 15, 7))
	assert.Equal(t, 80, FrozenWidth([]int{80}, 99, false, 15, 7))
	assert.Equal(t, 0, FrozenWidth([]int{80}, -1, false, -1, -1))
}

func TestColumnLeftAndAt(t *testing.T) {
	widths := []int{4, 6, 3}

	assert.Equal(t, 0, ColumnLeft(widths, 0, 0, 1))
	assert.Equal(t, 5, ColumnLeft(widths, 1, 0, 1))
	assert.Equal(t, 12, ColumnLeft(widths, 2, 0, 1))
	assert.Equal(t, 14, ColumnLeft(widths, 2, 2, 1))
	assert.Equal(t, 16, TotalWidth(widths, 1))

	col, ok := ColumnAt(widths, 0, 1)
	assert.True(t, ok)
	assert.Equal(t, 0, col)

	col, ok = ColumnAt(widths, 5, 1)
	assert.True(t, ok)
	assert.Equal(t, 1, col)

	_, ok = ColumnAt(widths, 16, 1)
	assert.False(t, ok)
	_, ok = ColumnAt(widths, -1, 1)
	assert.False(t, ok)
}

func TestHandleAt_SeparatorCell(t *testing.T) {
	widths := []int{4, 6}

	col, ok := HandleAt(widths, 4, 1, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, col)

	col, ok = HandleAt(widths, 11, 1, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, col)

	_, ok = HandleAt(widths, 2, 1, 0)
	assert.False(t, ok)
}
