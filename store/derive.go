package store

import (
	"github.com/iw2rmb/frametable/geometry"
)

const derivesLayout = SliceLayout | SliceColumns | SliceGroups | SliceSelection | SliceData

// derive recomputes the derived values of the touched slices and returns
// any slice that changed as a consequence, such as a clamped scroll offset.
func (s *Store[T]) derive(dirty Slice) Slice {
	st := &s.state
	var extra Slice

	if dirty&derivesLayout != 0 {
		extra |= s.deriveLayout(st)
	}
	if dirty&(SliceData|SliceSelection) != 0 {
		deriveSelection(st, s.idOf)
	}
	if dirty&SliceSort != 0 {
		st.SortIndex = SortIndex(st.SortParams)
	}
	if dirty&(SliceData|SliceColumns) != 0 {
		f := st.Focus
		f.Row = clampIndex(f.Row, len(st.Data))
		f.Column = clampIndex(f.Column, len(st.Columns))
		if f != st.Focus {
			st.Focus = f
			extra |= SliceFocus
		}
	}
	return extra &^ dirty
}

func (s *Store[T]) deriveLayout(st *State[T]) Slice {
	l := &st.Layout
	l.HeaderHeight = max(l.HeaderHeight, 0)
	l.ItemHeight = max(l.ItemHeight, 1)
	l.ItemPadding = max(l.ItemPadding, 0)
	l.Separator = max(l.Separator, 0)
	l.BorderWidth = BorderWidth
	l.ItemStride = geometry.ItemStride(l.ItemHeight, l.ItemPadding)
	l.FrozenColumnIndex = geometry.ClampFrozenIndex(l.FrozenColumnIndex, len(st.Columns))

	widths := st.Widths()
	l.FrozenWidth = geometry.FrozenWidth(widths, l.FrozenColumnIndex, l.RowSelection, l.ItemHeight, l.ItemPadding)
	frozenCells := l.FrozenColumnIndex
	if l.RowSelection {
		frozenCells++
	}
	l.FrozenOuterWidth = l.FrozenWidth + frozenCells*l.Separator

	groups, fixed := geometry.FitColumnGroups(st.ColumnGroups, len(st.Columns))
	if fixed {
		s.log.Debug("column groups repaired", "columns", len(st.Columns))
	}
	st.FrozenGroups, st.ScrollableGroups = geometry.SplitColumnGroups(groups, l.FrozenColumnIndex)
	l.HeaderRows = 1
	if len(groups) > 0 {
		l.HeaderRows = 2
	}

	l.ContentBodyHeight = geometry.ContentBodyHeight(l.Height, l.HeaderLines(), l.BorderWidth)
	l.DisplayCount = geometry.DisplayCount(l.ContentBodyHeight, l.ItemHeight, l.ItemPadding)

	l.ScrollableViewWidth = max(l.Width-2*l.BorderWidth-l.FrozenOuterWidth, 0)
	l.ScrollableContentWidth = geometry.TotalWidth(widths[l.FrozenColumnIndex:], l.Separator)

	return setScroll(st, st.Scroll.Top, st.Scroll.Left)
}

func deriveSelection[T any](st *State[T], idOf func(T) RowID) {
	m := make(map[RowID]bool, len(st.SelectedIDs))
	for _, id := range st.SelectedIDs {
		m[id] = true
	}
	st.SelectedIDsMap = m

	data := make([]DataItem[T], len(st.Data))
	all := len(st.Data) > 0
	for i, it := range st.Data {
		it.Checked = m[idOf(it.Values)]
		all = all && it.Checked
		data[i] = it
	}
	st.Data = data
	st.SelectedAll = all
}

func selectedAll[T any](data []DataItem[T], ids []RowID, idOf func(T) RowID) bool {
	if len(data) == 0 {
		return false
	}
	m := make(map[RowID]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	for _, it := range data {
		if !m[idOf(it.Values)] {
			return false
		}
	}
	return true
}

// SortIndex maps each sort key to its direction and precedence.
func SortIndex(params []SortParam) map[string]SortState {
	out := make(map[string]SortState, len(params))
	for i, p := range params {
		out[p.Key.String()] = SortState{Direction: p.Direction, Index: i}
	}
	return out
}
