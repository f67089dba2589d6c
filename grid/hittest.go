package grid

import (
	"github.com/iw2rmb/frametable/geometry"
	"github.com/iw2rmb/frametable/store"
)

type hitKind int

const (
	hitNone hitKind = iota
	hitGroup
	hitHeader
	hitHandle
	hitSelectAll
	hitSelect
	hitCell
)

type hit struct {
	kind   hitKind
	row    int
	column int
	// left is the column's left edge in inner coordinates.
	left int
}

// innerPos maps component-local mouse coordinates to coordinates inside the
// frame border.
func (m Model[T]) innerPos(x, y int) (int, int) {
	s := m.viewport.Style
	return x - s.GetMarginLeft() - s.GetBorderLeftSize() - s.GetPaddingLeft(),
		y - s.GetMarginTop() - s.GetBorderTopSize() - s.GetPaddingTop()
}

func (m Model[T]) hitTest(st store.State[T], x, y int) hit {
	l := st.Layout
	if x < 0 || y < 0 || x >= l.Width-2*l.BorderWidth || y >= l.HeaderLines()+l.ContentBodyHeight {
		return hit{kind: hitNone}
	}

	headerRow := -1
	if y < l.HeaderLines() {
		headerRow = y / max(l.HeaderHeight, 1)
		if l.HeaderRows > 1 && headerRow == 0 {
			return hit{kind: hitGroup}
		}
	}

	row := -1
	if headerRow < 0 {
		abs := st.Scroll.Top + y - l.HeaderLines()
		row = abs / l.ItemStride
		if row >= len(st.Data) {
			return hit{kind: hitNone}
		}
	}

	col, handle, left, ok := m.columnAt(st, x)
	switch {
	case !ok:
		return hit{kind: hitNone}
	case col < 0:
		if headerRow >= 0 {
			return hit{kind: hitSelectAll}
		}
		return hit{kind: hitSelect, row: row}
	case headerRow >= 0 && handle:
		return hit{kind: hitHandle, column: col, left: left}
	case headerRow >= 0:
		return hit{kind: hitHeader, column: col, left: left}
	default:
		return hit{kind: hitCell, row: row, column: col, left: left}
	}
}

// columnAt resolves an inner x coordinate to a column index. col is -1 for
// the selection cell; handle is true on the separator right of col.
func (m Model[T]) columnAt(st store.State[T], x int) (col int, handle bool, left int, ok bool) {
	l := st.Layout
	widths := st.Widths()
	sep := l.Separator
	frozen := widths[:l.FrozenColumnIndex]
	scroll := widths[l.FrozenColumnIndex:]

	origin := 0
	if l.RowSelection {
		sw := m.selectionWidth(l)
		if x < sw {
			return -1, false, 0, true
		}
		if x < sw+sep {
			return 0, false, 0, false
		}
		origin = sw + sep
	}

	if x < l.FrozenOuterWidth {
		lx := x - origin
		if i, ok := geometry.HandleAt(frozen, lx, sep, 0); ok {
			return i, true, origin + geometry.ColumnLeft(frozen, i, 0, sep), true
		}
		if i, ok := geometry.ColumnAt(frozen, lx, sep); ok {
			return i, false, origin + geometry.ColumnLeft(frozen, i, 0, sep), true
		}
		return 0, false, 0, false
	}

	sx := x - l.FrozenOuterWidth + st.Scroll.Left
	edge := l.FrozenOuterWidth - st.Scroll.Left
	if i, ok := geometry.HandleAt(scroll, sx, sep, 0); ok {
		return l.FrozenColumnIndex + i, true, edge + geometry.ColumnLeft(scroll, i, 0, sep), true
	}
	if i, ok := geometry.ColumnAt(scroll, sx, sep); ok {
		return l.FrozenColumnIndex + i, false, edge + geometry.ColumnLeft(scroll, i, 0, sep), true
	}
	return 0, false, 0, false
}

// cellOrigin is the inner position of a cell's first content line. ok is
// false when the cell is scrolled out of view.
func (m Model[T]) cellOrigin(st store.State[T], row, col int) (x, y int, ok bool) {
	l := st.Layout
	if col < 0 || col >= len(st.Columns) {
		return 0, 0, false
	}
	widths := st.Widths()
	origin := 0
	if l.RowSelection {
		origin = m.selectionWidth(l) + l.Separator
	}
	if col < l.FrozenColumnIndex {
		x = origin + geometry.ColumnLeft(widths[:l.FrozenColumnIndex], col, 0, l.Separator)
	} else {
		x = l.FrozenOuterWidth - st.Scroll.Left +
			geometry.ColumnLeft(widths[l.FrozenColumnIndex:], col-l.FrozenColumnIndex, 0, l.Separator)
		if x < l.FrozenOuterWidth {
			return x, 0, false
		}
	}
	y = l.HeaderLines() + geometry.ScrollTopForRow(row, l.ItemHeight, l.ItemPadding) + l.ItemPadding - st.Scroll.Top
	if y < l.HeaderLines() || y >= l.HeaderLines()+l.ContentBodyHeight {
		return x, y, false
	}
	return x, y, x < l.Width-2*l.BorderWidth
}
