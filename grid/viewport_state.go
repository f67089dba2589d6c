package grid

// ViewportState is a host-facing snapshot of the grid's scroll state.
type ViewportState struct {
	// TopRow is the first row in the visible window.
	TopRow int
	// VisibleRows is the number of rows rendered.
	VisibleRows  int
	DisplayCount int
	ScrollTop    int
	ScrollLeft   int
	// FrozenWidth is the width of the selection and frozen columns,
	// separators excluded.
	FrozenWidth       int
	ContentBodyHeight int
	TotalRows         int
	Resizing          bool
}

func (m Model[T]) ViewportState() ViewportState {
	st := m.st.Snapshot()
	start, end := st.VisibleRange()
	return ViewportState{
		TopRow:            start,
		VisibleRows:       end - start,
		DisplayCount:      st.Layout.DisplayCount,
		ScrollTop:         st.Scroll.Top,
		ScrollLeft:        st.Scroll.Left,
		FrozenWidth:       st.Layout.FrozenWidth,
		ContentBodyHeight: st.Layout.ContentBodyHeight,
		TotalRows:         len(st.Data),
		Resizing:          st.ColumnResizing,
	}
}
