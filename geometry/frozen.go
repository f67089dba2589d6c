package geometry

// SelectionColumnWidth is the width of the row-selection checkbox column.
// The checkbox cell is square: as wide as a row is tall.
func SelectionColumnWidth(itemHeight, itemPadding int) int {
	return maxInt(itemHeight, 0) + 2*maxInt(itemPadding, 0)
}

// FrozenWidth returns the width of the frozen region: the widths of the
// columns before frozenIndex plus the selection column when row selection is
// enabled.
func FrozenWidth(widths []int, frozenIndex int, rowSelection bool, itemHeight, itemPadding int) int {
	frozenIndex = ClampFrozenIndex(frozenIndex, len(widths))

	total := 0
	for _, w := range widths[:frozenIndex] {
		total += maxInt(w, 0)
	}
	if rowSelection {
		total += SelectionColumnWidth(itemHeight, itemPadding)
	}
	return total
}

// ClampFrozenIndex clamps i into [0, columnCount].
func ClampFrozenIndex(i, columnCount int) int {
	return clampInt(i, 0, maxInt(columnCount, 0))
}

// ColumnLeft returns the left edge of column index, measured from origin.
// Columns are laid out left to right without gaps; sep is added after every
// column (terminal separators).
func ColumnLeft(widths []int, index, origin, sep int) int {
	index = clampInt(index, 0, len(widths))
	x := origin
	for _, w := range widths[:index] {
		x += maxInt(w, 0) + sep
	}
	return x
}

// ColumnAt returns the column under x (relative to the region origin) and
// whether x hit a column at all.
func ColumnAt(widths []int, x, sep int) (int, bool) {
	if x < 0 {
		return 0, false
	}
	left := 0
	for i, w := range widths {
		right := left + maxInt(w, 0) + sep
		if x < right {
			return i, true
		}
		left = right
	}
	return 0, false
}

// HandleAt reports the column whose right edge (the resize handle) is within
// slop units of x.
func HandleAt(widths []int, x, sep, slop int) (int, bool) {
	left := 0
	for i, w := range widths {
		edge := left + maxInt(w, 0)
		if x >= edge-slop && x <= edge+maxInt(sep-1, 0)+slop {
			return i, true
		}
		left = edge + sep
	}
	return 0, false
}

// TotalWidth sums widths and separators.
func TotalWidth(widths []int, sep int) int {
	return ColumnLeft(widths, len(widths), 0, sep)
}
