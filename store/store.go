package store

import (
	"slices"
	"sync"

	"github.com/iw2rmb/frametable/geometry"
	"github.com/iw2rmb/frametable/logger"
)

// Slice names a part of the state. Listeners subscribe to a mask of slices.
type Slice uint16

const (
	SliceLayout Slice = 1 << iota
	SliceScroll
	SliceColumns
	SliceGroups
	SliceData
	SliceSelection
	SliceSort
	SliceResizing
	SliceFocus

	SliceAll Slice = 1<<iota - 1
)

// Change is delivered to listeners after an action.
type Change struct {
	Slices  Slice
	Version uint64
}

// Store is the reactive state of one grid.
type Store[T any] struct {
	mu    sync.Mutex
	state State[T]
	idOf  func(T) RowID
	log   logger.Logger

	onChangeColumns func(index, width int, columns []Column[T])
	onSelect        func(ids []RowID, selectedAll bool)
	onSort          func(params []SortParam)

	nextListener int
	listeners    map[int]listener
	watchers     map[int]*watcher[T]
	closed       bool
}

type listener struct {
	mask Slice
	fn   func(Change)
}

// New builds a Store from opts. Derived slices are computed before return.
func New[T any](opts Options[T]) *Store[T] {
	key := opts.RowKey
	if len(key) == 0 {
		key = Field("id")
	}
	s := &Store[T]{
		idOf:            IDOf[T](key),
		log:             logger.OrDiscard(opts.Logger),
		onChangeColumns: opts.OnChangeColumns,
		listeners:       map[int]listener{},
		watchers:        map[int]*watcher[T]{},
	}
	st := &s.state
	st.Layout = Layout{
		Width:             opts.Width,
		Height:            opts.Height,
		HeaderHeight:      opts.HeaderHeight,
		BorderWidth:       BorderWidth,
		Separator:         opts.Separator,
		ItemHeight:        opts.ItemHeight,
		ItemPadding:       opts.ItemPadding,
		FrozenColumnIndex: opts.FrozenColumnIndex,
	}
	st.Data = slices.Clone(opts.Data)
	st.Columns = slices.Clone(opts.Columns)
	st.ColumnGroups = slices.Clone(opts.ColumnGroups)
	st.Scroll = Scroll{Top: opts.ScrollTop, Left: opts.ScrollLeft}
	if opts.RowSelection != nil {
		st.Layout.RowSelection = true
		st.SelectedIDs = slices.Clone(opts.RowSelection.SelectedIDs)
		s.onSelect = opts.RowSelection.OnChange
	}
	if opts.Sort != nil {
		st.SortEnabled = true
		st.SortParams = slices.Clone(opts.Sort.Params)
		s.onSort = opts.Sort.OnChange
	}
	s.derive(SliceAll)
	return s
}

// RowID returns the identifier of values under the configured row key.
func (s *Store[T]) RowID(values T) RowID { return s.idOf(values) }

// Snapshot returns a consistent copy of the whole state.
func (s *Store[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store[T]) Layout() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Layout
}

func (s *Store[T]) Scroll() Scroll {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Scroll
}

func (s *Store[T]) Columns() []Column[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Columns)
}

func (s *Store[T]) Data() []DataItem[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Data
}

func (s *Store[T]) Focus() Focus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Focus
}

func (s *Store[T]) ColumnResizing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ColumnResizing
}

// Version counts applied actions that changed something.
func (s *Store[T]) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Version
}

// Close drops every listener and turns further actions into no-ops.
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	clear(s.listeners)
	clear(s.watchers)
}

// update runs fn under the lock, re-derives the touched slices and then
// notifies listeners, watchers and callbacks outside the lock.
func (s *Store[T]) update(fn func(st *State[T], fx *effects) Slice) {
	var fx effects
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	dirty := fn(&s.state, &fx)
	if dirty == 0 {
		s.mu.Unlock()
		fx.run()
		return
	}
	dirty |= s.derive(dirty)
	s.state.Version++
	change := Change{Slices: dirty, Version: s.state.Version}
	var calls []func(Change)
	for _, l := range s.listeners {
		if l.mask&dirty != 0 {
			calls = append(calls, l.fn)
		}
	}
	watch := s.pendingWatchers()
	s.mu.Unlock()

	for _, fn := range calls {
		fn(change)
	}
	watch()
	fx.run()
}

type effects []func()

func (fx *effects) add(fn func()) { *fx = append(*fx, fn) }

func (fx effects) run() {
	for _, fn := range fx {
		fn()
	}
}

func (s *Store[T]) SetColumnWidth(index, width int) {
	s.update(func(st *State[T], _ *effects) Slice {
		if index < 0 || index >= len(st.Columns) {
			return 0
		}
		width = max(width, 0)
		if st.Columns[index].Width == width {
			return 0
		}
		st.Columns = slices.Clone(st.Columns)
		st.Columns[index].Width = width
		return SliceColumns
	})
}

// CommitColumnWidth reports the current width of column index through
// OnChangeColumns. It is the end of every resize gesture.
func (s *Store[T]) CommitColumnWidth(index int) {
	s.update(func(st *State[T], fx *effects) Slice {
		if index < 0 || index >= len(st.Columns) || s.onChangeColumns == nil {
			return 0
		}
		width := st.Columns[index].Width
		cols := slices.Clone(st.Columns)
		cb := s.onChangeColumns
		s.log.Debug("column width committed", "column", index, "width", width)
		fx.add(func() { cb(index, width, cols) })
		return 0
	})
}

func (s *Store[T]) SetColumnResizing(v bool) {
	s.update(func(st *State[T], _ *effects) Slice {
		if st.ColumnResizing == v {
			return 0
		}
		st.ColumnResizing = v
		return SliceResizing
	})
}

func (s *Store[T]) SetScrollTop(v int) {
	s.update(func(st *State[T], _ *effects) Slice {
		return setScroll(st, v, st.Scroll.Left)
	})
}

func (s *Store[T]) SetScrollLeft(v int) {
	s.update(func(st *State[T], _ *effects) Slice {
		return setScroll(st, st.Scroll.Top, v)
	})
}

func (s *Store[T]) ScrollBy(dy, dx int) {
	s.update(func(st *State[T], _ *effects) Slice {
		return setScroll(st, st.Scroll.Top+dy, st.Scroll.Left+dx)
	})
}

// ScrollToRow scrolls the least amount that makes row fully visible.
func (s *Store[T]) ScrollToRow(row int) {
	s.update(func(st *State[T], _ *effects) Slice {
		return setScroll(st, scrollTopShowing(st, row), st.Scroll.Left)
	})
}

func scrollTopShowing[T any](st *State[T], row int) int {
	l := st.Layout
	row = clampIndex(row, len(st.Data))
	top := geometry.ScrollTopForRow(row, l.ItemHeight, l.ItemPadding)
	if top < st.Scroll.Top {
		return top
	}
	bottom := top + l.ItemStride
	if bottom > st.Scroll.Top+l.ContentBodyHeight {
		return bottom - l.ContentBodyHeight
	}
	return st.Scroll.Top
}

func setScroll[T any](st *State[T], top, left int) Slice {
	l := st.Layout
	top = clamp(top, 0, geometry.MaxScrollTop(len(st.Data), l.ContentBodyHeight, l.ItemHeight, l.ItemPadding))
	left = clamp(left, 0, geometry.MaxScrollLeft(l.ScrollableContentWidth, l.ScrollableViewWidth))
	if st.Scroll.Top == top && st.Scroll.Left == left {
		return 0
	}
	st.Scroll = Scroll{Top: top, Left: left}
	return SliceScroll
}

// SetSelectedIDs replaces the selection.
func (s *Store[T]) SetSelectedIDs(ids []RowID) {
	s.update(func(st *State[T], fx *effects) Slice {
		return s.selectIDs(st, fx, slices.Clone(ids))
	})
}

// ToggleRow flips the selection of one row.
func (s *Store[T]) ToggleRow(id RowID) {
	s.update(func(st *State[T], fx *effects) Slice {
		if !st.Layout.RowSelection {
			return 0
		}
		ids := slices.Clone(st.SelectedIDs)
		if i := slices.Index(ids, id); i >= 0 {
			ids = slices.Delete(ids, i, i+1)
		} else {
			ids = append(ids, id)
		}
		return s.selectIDs(st, fx, ids)
	})
}

// SetSelectedAll selects every row or clears the selection.
func (s *Store[T]) SetSelectedAll(v bool) {
	s.update(func(st *State[T], fx *effects) Slice {
		if !st.Layout.RowSelection {
			return 0
		}
		var ids []RowID
		if v {
			ids = make([]RowID, 0, len(st.Data))
			for _, it := range st.Data {
				ids = append(ids, s.idOf(it.Values))
			}
		}
		return s.selectIDs(st, fx, ids)
	})
}

func (s *Store[T]) selectIDs(st *State[T], fx *effects, ids []RowID) Slice {
	if !st.Layout.RowSelection {
		return 0
	}
	st.SelectedIDs = ids
	if cb := s.onSelect; cb != nil {
		all := selectedAll(st.Data, ids, s.idOf)
		out := slices.Clone(ids)
		fx.add(func() { cb(out, all) })
	}
	return SliceSelection
}

// ClickSort cycles key through ascending, descending and unsorted. With
// multi the other keys are kept, otherwise they are replaced.
func (s *Store[T]) ClickSort(key Key, multi bool) {
	s.update(func(st *State[T], fx *effects) Slice {
		if !st.SortEnabled || len(key) == 0 {
			return 0
		}
		st.SortParams = NextSort(st.SortParams, key, multi)
		if cb := s.onSort; cb != nil {
			out := slices.Clone(st.SortParams)
			fx.add(func() { cb(out) })
		}
		return SliceSort
	})
}

// NextSort returns params after one header click on key.
func NextSort(params []SortParam, key Key, multi bool) []SortParam {
	i := slices.IndexFunc(params, func(p SortParam) bool { return p.Key.Equal(key) })
	if i < 0 {
		p := SortParam{Key: key, Direction: SortAsc}
		if multi {
			return append(slices.Clone(params), p)
		}
		return []SortParam{p}
	}
	cur := params[i]
	if cur.Direction == SortAsc {
		cur.Direction = SortDesc
		if !multi {
			return []SortParam{cur}
		}
		out := slices.Clone(params)
		out[i] = cur
		return out
	}
	if !multi {
		return nil
	}
	return slices.Delete(slices.Clone(params), i, i+1)
}

func (s *Store[T]) SetData(items []DataItem[T]) {
	s.update(func(st *State[T], _ *effects) Slice {
		st.Data = slices.Clone(items)
		return SliceData
	})
}

func (s *Store[T]) SetColumns(cols []Column[T]) {
	s.update(func(st *State[T], _ *effects) Slice {
		st.Columns = slices.Clone(cols)
		return SliceColumns
	})
}

func (s *Store[T]) SetColumnGroups(groups []geometry.GroupDecl) {
	s.update(func(st *State[T], _ *effects) Slice {
		st.ColumnGroups = slices.Clone(groups)
		return SliceGroups
	})
}

func (s *Store[T]) SetFrozenColumnIndex(i int) {
	s.update(func(st *State[T], _ *effects) Slice {
		if st.Layout.FrozenColumnIndex == i {
			return 0
		}
		st.Layout.FrozenColumnIndex = i
		return SliceLayout
	})
}

func (s *Store[T]) SetSize(width, height int) {
	s.update(func(st *State[T], _ *effects) Slice {
		if st.Layout.Width == width && st.Layout.Height == height {
			return 0
		}
		st.Layout.Width, st.Layout.Height = width, height
		return SliceLayout
	})
}

func (s *Store[T]) SetItemMetrics(height, padding int) {
	s.update(func(st *State[T], _ *effects) Slice {
		if st.Layout.ItemHeight == height && st.Layout.ItemPadding == padding {
			return 0
		}
		st.Layout.ItemHeight, st.Layout.ItemPadding = height, padding
		return SliceLayout
	})
}

func (s *Store[T]) SetHeaderHeight(h int) {
	s.update(func(st *State[T], _ *effects) Slice {
		if st.Layout.HeaderHeight == h {
			return 0
		}
		st.Layout.HeaderHeight = h
		return SliceLayout
	})
}

// SetRowSelection enables (non-nil) or disables the checkbox column.
func (s *Store[T]) SetRowSelection(sel *RowSelection) {
	s.update(func(st *State[T], _ *effects) Slice {
		if sel == nil {
			st.Layout.RowSelection = false
			st.SelectedIDs = nil
			s.onSelect = nil
		} else {
			st.Layout.RowSelection = true
			st.SelectedIDs = slices.Clone(sel.SelectedIDs)
			s.onSelect = sel.OnChange
		}
		return SliceSelection | SliceLayout
	})
}

func (s *Store[T]) SetSort(sort *Sort) {
	s.update(func(st *State[T], _ *effects) Slice {
		if sort == nil {
			st.SortEnabled = false
			st.SortParams = nil
			s.onSort = nil
		} else {
			st.SortEnabled = true
			st.SortParams = slices.Clone(sort.Params)
			s.onSort = sort.OnChange
		}
		return SliceSort
	})
}

func (s *Store[T]) SetOnChangeColumns(fn func(index, width int, columns []Column[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChangeColumns = fn
}

// SetFocus moves the active cell, clamped to the data and columns, and
// scrolls it into view.
func (s *Store[T]) SetFocus(row, col int) {
	s.update(func(st *State[T], _ *effects) Slice {
		f := Focus{
			Row:     clampIndex(row, len(st.Data)),
			Column:  clampIndex(col, len(st.Columns)),
			Editing: st.Focus.Editing,
		}
		var dirty Slice
		if f != st.Focus {
			st.Focus = f
			dirty |= SliceFocus
		}
		return dirty | setScroll(st, scrollTopShowing(st, f.Row), st.Scroll.Left)
	})
}

func (s *Store[T]) SetEditing(v bool) {
	s.update(func(st *State[T], _ *effects) Slice {
		if st.Focus.Editing == v {
			return 0
		}
		st.Focus.Editing = v
		return SliceFocus
	})
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}

func clampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return clamp(i, 0, n-1)
}
