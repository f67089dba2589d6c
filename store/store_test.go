package store

import (
	"fmt"
	"testing"

	"github.com/iw2rmb/frametable/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row = map[string]any

func rows(n int) []DataItem[row] {
	out := make([]DataItem[row], n)
	for i := range out {
		out[i] = DataItem[row]{Values: row{"id": i, "name": fmt.Sprintf("row %d", i)}}
	}
	return out
}

func columns(widths ...int) []Column[row] {
	out := make([]Column[row], len(widths))
	for i, w := range widths {
		out[i] = Column[row]{Key: Field(fmt.Sprintf("c%d", i)), Label: fmt.Sprintf("C%d", i), Width: w}
	}
	return out
}

func pixelStore(t *testing.T, opts Options[row]) *Store[row] {
	t.Helper()
	if opts.Width == 0 {
		opts.Width, opts.Height = 800, 332
	}
	if opts.HeaderHeight == 0 {
		opts.HeaderHeight = 30
	}
	if opts.ItemHeight == 0 {
		opts.ItemHeight, opts.ItemPadding = 15, 7
	}
	s := New(opts)
	t.Cleanup(s.Close)
	return s
}

func TestNew_DerivesLayout(t *testing.T) {
	s := pixelStore(t, Options[row]{
		Data:              rows(1000),
		Columns:           columns(100, 50, 200),
		FrozenColumnIndex: 2,
		RowSelection:      &RowSelection{},
	})
	l := s.Layout()
	assert.Equal(t, 150+geometry.SelectionColumnWidth(15, 7), l.FrozenWidth)
	assert.Equal(t, 300, l.ContentBodyHeight)
	assert.Equal(t, 11, l.DisplayCount)
	assert.Equal(t, 1, l.HeaderRows)
}

func TestNew_ClampsFrozenIndex(t *testing.T) {
	s := pixelStore(t, Options[row]{Columns: columns(10, 10), FrozenColumnIndex: 9})
	assert.Equal(t, 2, s.Layout().FrozenColumnIndex)
}

func TestSetScrollTop_VisibleRange(t *testing.T) {
	s := pixelStore(t, Options[row]{Data: rows(1000), Columns: columns(100)})
	s.SetScrollTop(geometry.ScrollTopForRow(50, 15, 7))

	start, end := s.Snapshot().VisibleRange()
	assert.Equal(t, 50, start)
	assert.Equal(t, 61, end)
}

func TestSetScrollTop_Clamped(t *testing.T) {
	s := pixelStore(t, Options[row]{Data: rows(20), Columns: columns(100)})
	s.SetScrollTop(1 << 20)
	assert.Equal(t, 20*29-300, s.Scroll().Top)

	s.SetScrollTop(-5)
	assert.Equal(t, 0, s.Scroll().Top)
}

func TestSetData_ShrinkReclampsScroll(t *testing.T) {
	s := pixelStore(t, Options[row]{Data: rows(1000), Columns: columns(100)})
	s.SetScrollTop(10000)
	s.SetData(rows(5))
	assert.Equal(t, 0, s.Scroll().Top)
}

func TestColumnWidth_ProvisionalThenCommit(t *testing.T) {
	var gotIndex, gotWidth int
	var gotCols []Column[row]
	s := pixelStore(t, Options[row]{
		Columns: columns(100, 100),
		OnChangeColumns: func(index, width int, cols []Column[row]) {
			gotIndex, gotWidth, gotCols = index, width, cols
		},
	})

	s.SetColumnWidth(1, 120)
	s.SetColumnWidth(1, 140)
	assert.Nil(t, gotCols, "provisional widths must not notify")

	s.CommitColumnWidth(1)
	require.Len(t, gotCols, 2)
	assert.Equal(t, 1, gotIndex)
	assert.Equal(t, 140, gotWidth)
	assert.Equal(t, 140, gotCols[1].Width)
}

func TestSetColumnWidth_CopyOnWrite(t *testing.T) {
	s := pixelStore(t, Options[row]{Columns: columns(100)})
	before := s.Snapshot()
	s.SetColumnWidth(0, 60)
	assert.Equal(t, 100, before.Columns[0].Width)
	assert.Equal(t, 60, s.Snapshot().Columns[0].Width)
}

func TestSelection(t *testing.T) {
	var lastIDs []RowID
	var lastAll bool
	s := pixelStore(t, Options[row]{
		Data:    rows(3),
		Columns: columns(100),
		RowSelection: &RowSelection{OnChange: func(ids []RowID, all bool) {
			lastIDs, lastAll = ids, all
		}},
	})

	s.ToggleRow("1")
	assert.Equal(t, []RowID{"1"}, lastIDs)
	assert.False(t, lastAll)
	snap := s.Snapshot()
	assert.True(t, snap.SelectedIDsMap["1"])
	assert.True(t, snap.Data[1].Checked)
	assert.False(t, snap.Data[0].Checked)

	s.SetSelectedAll(true)
	assert.True(t, lastAll)
	assert.True(t, s.Snapshot().SelectedAll)

	s.ToggleRow("1")
	assert.False(t, lastAll)
	assert.False(t, s.Snapshot().SelectedAll)

	s.SetSelectedAll(false)
	assert.Empty(t, lastIDs)
}

func TestSelection_DisabledIsNoop(t *testing.T) {
	s := pixelStore(t, Options[row]{Data: rows(3), Columns: columns(100)})
	v := s.Version()
	s.ToggleRow("1")
	assert.Equal(t, v, s.Version())
}

func TestClickSort_Cycles(t *testing.T) {
	var calls [][]SortParam
	s := pixelStore(t, Options[row]{
		Columns: columns(10, 10),
		Sort:    &Sort{OnChange: func(p []SortParam) { calls = append(calls, p) }},
	})
	a, b := Field("a"), Field("b")

	s.ClickSort(a, false)
	st, ok := s.Snapshot().Sorted(a)
	require.True(t, ok)
	assert.Equal(t, SortAsc, st.Direction)

	s.ClickSort(a, false)
	st, _ = s.Snapshot().Sorted(a)
	assert.Equal(t, SortDesc, st.Direction)

	s.ClickSort(a, false)
	_, ok = s.Snapshot().Sorted(a)
	assert.False(t, ok)

	s.ClickSort(a, true)
	s.ClickSort(b, true)
	snap := s.Snapshot()
	assert.Equal(t, SortState{Direction: SortAsc, Index: 0}, snap.SortIndex["a"])
	assert.Equal(t, SortState{Direction: SortAsc, Index: 1}, snap.SortIndex["b"])

	s.ClickSort(b, false)
	assert.Equal(t, []SortParam{{Key: b, Direction: SortDesc}}, s.Snapshot().SortParams)
	assert.Len(t, calls, 6)
}

func TestSortIndex_PathKeys(t *testing.T) {
	idx := SortIndex([]SortParam{
		{Key: Path("d", "selectDate"), Direction: SortDesc},
		{Key: Field("code")},
	})
	assert.Equal(t, SortState{Direction: SortDesc, Index: 0}, idx["d.selectDate"])
	assert.Equal(t, SortState{Direction: SortAsc, Index: 1}, idx["code"])
}

func TestColumnGroups_SplitAtFrozenIndex(t *testing.T) {
	s := pixelStore(t, Options[row]{
		Columns:           columns(10, 10, 10, 10),
		FrozenColumnIndex: 1,
		ColumnGroups: []geometry.GroupDecl{
			{Label: "A", Colspan: 2},
			{Label: "B", Colspan: 2},
		},
	})
	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Layout.HeaderRows)
	assert.Equal(t, 332-60-2, snap.Layout.ContentBodyHeight)
	require.Len(t, snap.FrozenGroups, 1)
	assert.Equal(t, 1, snap.FrozenGroups[0].Colspan)
	assert.Equal(t, 3, geometry.SumColspan(snap.ScrollableGroups))
}

func TestSetFocus_ScrollsIntoView(t *testing.T) {
	s := pixelStore(t, Options[row]{Data: rows(100), Columns: columns(10, 10)})
	s.SetFocus(20, 5)
	f := s.Focus()
	assert.Equal(t, Focus{Row: 20, Column: 1}, f)
	start, end := s.Snapshot().VisibleRange()
	assert.True(t, start <= 20 && 20 < end, "row 20 in [%d,%d)", start, end)

	s.SetFocus(0, 0)
	assert.Equal(t, 0, s.Scroll().Top)
}

func TestEditingSurvivesFocusClamp(t *testing.T) {
	s := pixelStore(t, Options[row]{Data: rows(5), Columns: columns(10)})
	s.SetFocus(4, 0)
	s.SetEditing(true)
	s.SetData(rows(2))
	f := s.Focus()
	assert.Equal(t, 1, f.Row)
	assert.True(t, f.Editing)
}

func TestClose_StopsActions(t *testing.T) {
	s := New(Options[row]{Columns: columns(10)})
	fired := false
	s.Subscribe(SliceAll, func(Change) { fired = true })
	s.Close()
	s.SetColumnWidth(0, 20)
	assert.False(t, fired)
	assert.Equal(t, 10, s.Columns()[0].Width)
}
