package store

import (
	"maps"
	"slices"

	"github.com/iw2rmb/frametable/geometry"
	"github.com/iw2rmb/frametable/logger"
)

// BorderWidth is the container border on every side.
const BorderWidth = 1

// Options seeds a Store. Zero values are usable; negative metrics clamp to 0
// and ItemHeight clamps to 1.
type Options[T any] struct {
	Width, Height int
	// HeaderHeight is the height of one header row. A grid with column
	// groups has two header rows.
	HeaderHeight int
	// Separator is the number of cells drawn between adjacent columns.
	Separator int

	Data         []DataItem[T]
	Columns      []Column[T]
	ColumnGroups []geometry.GroupDecl

	OnChangeColumns func(index, width int, columns []Column[T])

	FrozenColumnIndex int
	ItemHeight        int
	ItemPadding       int
	ScrollTop         int
	ScrollLeft        int

	// RowKey selects the unique row field. Defaults to Field("id").
	RowKey Key

	RowSelection *RowSelection
	Sort         *Sort

	Logger logger.Logger
}

// Layout holds the layout parameters and every value derived from them.
type Layout struct {
	Width, Height int
	HeaderHeight  int
	HeaderRows    int
	BorderWidth   int
	Separator     int

	ItemHeight  int
	ItemPadding int
	ItemStride  int

	FrozenColumnIndex int
	RowSelection      bool
	// FrozenWidth is the sum of frozen column widths plus the selection
	// column. FrozenOuterWidth adds the separators that follow each of them.
	FrozenWidth      int
	FrozenOuterWidth int

	ContentBodyHeight int
	DisplayCount      int

	ScrollableViewWidth    int
	ScrollableContentWidth int
}

// HeaderLines is the total height of the header block.
func (l Layout) HeaderLines() int { return l.HeaderHeight * l.HeaderRows }

type Scroll struct {
	Top, Left int
}

// State is a consistent copy of the store. Slices are shared with the store
// and must be treated as read-only.
type State[T any] struct {
	Layout Layout
	Scroll Scroll

	Data    []DataItem[T]
	Columns []Column[T]

	ColumnGroups     []geometry.GroupDecl
	FrozenGroups     []geometry.Group
	ScrollableGroups []geometry.Group

	ColumnResizing bool

	SelectedIDs    []RowID
	SelectedIDsMap map[RowID]bool
	SelectedAll    bool

	SortEnabled bool
	SortParams  []SortParam
	SortIndex   map[string]SortState

	Focus Focus

	Version uint64
}

// VisibleRange is the row window [start, end) for the current scroll.
func (s State[T]) VisibleRange() (start, end int) {
	l := s.Layout
	return geometry.VisibleRange(s.Scroll.Top, l.ItemHeight, l.ItemPadding, l.DisplayCount, len(s.Data))
}

// Widths returns the current column widths.
func (s State[T]) Widths() []int {
	out := make([]int, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Width
	}
	return out
}

// FrozenColumns and ScrollableColumns partition Columns at the frozen index.
func (s State[T]) FrozenColumns() []Column[T] {
	return s.Columns[:s.Layout.FrozenColumnIndex]
}

func (s State[T]) ScrollableColumns() []Column[T] {
	return s.Columns[s.Layout.FrozenColumnIndex:]
}

// Sorted reports the sort state for key, if any.
func (s State[T]) Sorted(key Key) (SortState, bool) {
	st, ok := s.SortIndex[key.String()]
	return st, ok
}

func (s State[T]) clone() State[T] {
	out := s
	out.SelectedIDsMap = maps.Clone(s.SelectedIDsMap)
	out.SortIndex = maps.Clone(s.SortIndex)
	out.SelectedIDs = slices.Clone(s.SelectedIDs)
	out.SortParams = slices.Clone(s.SortParams)
	return out
}
