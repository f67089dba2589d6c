package grid

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/frametable/geometry"
	"github.com/iw2rmb/frametable/store"
)

type cellSpec struct {
	text  string
	width int
	align store.Align
	style lipgloss.Style
}

func (c cellSpec) render() string {
	return c.style.Render(fitCell(c.text, c.width, c.align))
}

func (m Model[T]) renderContent(st store.State[T]) string {
	l := st.Layout
	innerW := l.Width - 2*l.BorderWidth
	innerH := l.Height - 2*l.BorderWidth
	if innerW <= 0 || innerH <= 0 {
		return ""
	}
	lines := m.renderHeader(st)
	lines = append(lines, m.renderBody(st)...)
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	return strings.Join(lines, "\n")
}

// composeLine joins the frozen cells with the horizontally clipped
// scrollable cells.
func (m Model[T]) composeLine(st store.State[T], frozen, scroll []cellSpec) string {
	sep := m.cfg.Style.SeparatorStyle.Render(m.cfg.Style.Separator)
	var fb strings.Builder
	for _, c := range frozen {
		fb.WriteString(c.render())
		fb.WriteString(sep)
	}
	var sb strings.Builder
	for _, c := range scroll {
		sb.WriteString(c.render())
		sb.WriteString(sep)
	}

	l := st.Layout
	view := l.ScrollableViewWidth
	part := ansi.Cut(sb.String(), st.Scroll.Left, st.Scroll.Left+view)
	if gap := view - ansi.StringWidth(part); gap > 0 {
		part += strings.Repeat(" ", gap)
	}
	return ansi.Truncate(fb.String()+part, l.Width-2*l.BorderWidth, "")
}

func (m Model[T]) selectionWidth(l store.Layout) int {
	return geometry.SelectionColumnWidth(l.ItemHeight, l.ItemPadding)
}

func (m Model[T]) renderHeader(st store.State[T]) []string {
	l := st.Layout
	var lines []string
	if l.HeaderRows > 1 {
		lines = append(lines, m.renderGroupHeader(st)...)
	}
	return append(lines, m.renderColumnHeader(st)...)
}

func (m Model[T]) renderGroupHeader(st store.State[T]) []string {
	l := st.Layout
	widths := st.Widths()
	style := m.cfg.Style.GroupHeader

	groupCells := func(groups []geometry.Group, first int, line int) []cellSpec {
		out := make([]cellSpec, 0, len(groups))
		col := first
		for _, g := range groups {
			end := min(col+g.Colspan, len(widths))
			w := 0
			for _, cw := range widths[col:end] {
				w += max(cw, 0)
			}
			w += max(end-col-1, 0) * l.Separator
			text := ""
			if line == 0 {
				text = g.Label
			}
			out = append(out, cellSpec{text: text, width: w, align: g.Align, style: style})
			col = end
		}
		return out
	}

	lines := make([]string, 0, l.HeaderHeight)
	for k := 0; k < l.HeaderHeight; k++ {
		var frozen []cellSpec
		if l.RowSelection {
			frozen = append(frozen, cellSpec{width: m.selectionWidth(l), style: style})
		}
		frozen = append(frozen, groupCells(st.FrozenGroups, 0, k)...)
		scroll := groupCells(st.ScrollableGroups, l.FrozenColumnIndex, k)
		lines = append(lines, m.composeLine(st, frozen, scroll))
	}
	return lines
}

// headerLabel is the column label followed by its sort indicator. The
// precedence number is shown once more than one key is sorted.
func (m Model[T]) headerLabel(st store.State[T], col int) string {
	c := st.Columns[col]
	s, ok := st.Sorted(c.Key)
	if !ok {
		return c.Label
	}
	ind := m.cfg.Style.SortAsc
	if s.Direction == store.SortDesc {
		ind = m.cfg.Style.SortDesc
	}
	if len(st.SortParams) > 1 {
		ind += strconv.Itoa(s.Index + 1)
	}
	return c.Label + " " + ind
}

func (m Model[T]) renderColumnHeader(st store.State[T]) []string {
	l := st.Layout
	resizing, dragging := -1, false
	if st.ColumnResizing {
		resizing, dragging = m.resizer.Dragging()
	}

	lines := make([]string, 0, l.HeaderHeight)
	for k := 0; k < l.HeaderHeight; k++ {
		var frozen, scroll []cellSpec
		if l.RowSelection {
			text := ""
			if k == 0 {
				text = checkbox(st.SelectedAll, m.selectionWidth(l), m.cfg.Style.CheckedGlyph, m.cfg.Style.UncheckedGlyph)
			}
			frozen = append(frozen, cellSpec{text: text, width: m.selectionWidth(l), align: store.AlignCenter, style: m.cfg.Style.Header})
		}
		for i, c := range st.Columns {
			style := m.cfg.Style.Header
			if dragging && i == resizing {
				style = m.cfg.Style.Resizing
			}
			text := ""
			if k == 0 {
				text = m.headerLabel(st, i)
			}
			cell := cellSpec{text: text, width: c.Width, align: c.Align, style: style}
			if i < l.FrozenColumnIndex {
				frozen = append(frozen, cell)
			} else {
				scroll = append(scroll, cell)
			}
		}
		lines = append(lines, m.composeLine(st, frozen, scroll))
	}
	return lines
}

func (m Model[T]) renderBody(st store.State[T]) []string {
	l := st.Layout
	start, end := st.VisibleRange()
	offset := max(st.Scroll.Top-start*l.ItemStride, 0)
	if offset > 0 {
		// The top row is cut, so one more row shows at the bottom.
		end = min(end+1, len(st.Data))
	}
	lines := make([]string, 0, (end-start)*l.ItemStride)
	for r := start; r < end; r++ {
		lines = append(lines, m.renderRow(st, r)...)
	}
	lines = lines[min(offset, len(lines)):]
	if len(lines) > l.ContentBodyHeight {
		lines = lines[:l.ContentBodyHeight]
	}
	if len(lines) < l.ContentBodyHeight {
		blank := m.blankLine(st)
		for len(lines) < l.ContentBodyHeight {
			lines = append(lines, blank)
		}
	}
	return lines
}

func (m Model[T]) blankLine(st store.State[T]) string {
	l := st.Layout
	var frozen, scroll []cellSpec
	if l.RowSelection {
		frozen = append(frozen, cellSpec{width: m.selectionWidth(l), style: m.cfg.Style.Cell})
	}
	for i, c := range st.Columns {
		cell := cellSpec{width: c.Width, style: m.cfg.Style.Cell}
		if i < l.FrozenColumnIndex {
			frozen = append(frozen, cell)
		} else {
			scroll = append(scroll, cell)
		}
	}
	return m.composeLine(st, frozen, scroll)
}

// renderRow draws the ItemStride lines of one row: padding, content, padding.
func (m Model[T]) renderRow(st store.State[T], row int) []string {
	l := st.Layout
	item := st.Data[row]

	texts := make([][]string, len(st.Columns))
	styles := make([]lipgloss.Style, len(st.Columns))
	for i := range st.Columns {
		texts[i] = cellLines(m.cellView(st, row, i), l.ItemHeight)
		styles[i] = m.cellStyle(st, item, row, i)
	}
	selStyle := m.cfg.Style.Cell
	if item.Checked {
		selStyle = m.cfg.Style.Checked.Inherit(selStyle)
	}

	lines := make([]string, 0, l.ItemStride)
	for k := 0; k < l.ItemStride; k++ {
		content := k - l.ItemPadding
		var frozen, scroll []cellSpec
		if l.RowSelection {
			text := ""
			if content == 0 {
				text = checkbox(item.Checked, m.selectionWidth(l), m.cfg.Style.CheckedGlyph, m.cfg.Style.UncheckedGlyph)
			}
			frozen = append(frozen, cellSpec{text: text, width: m.selectionWidth(l), align: store.AlignCenter, style: selStyle})
		}
		for i, c := range st.Columns {
			text := ""
			if content >= 0 && content < l.ItemHeight {
				text = texts[i][content]
			}
			cell := cellSpec{text: text, width: c.Width, align: c.Align, style: styles[i]}
			if i < l.FrozenColumnIndex {
				frozen = append(frozen, cell)
			} else {
				scroll = append(scroll, cell)
			}
		}
		lines = append(lines, m.composeLine(st, frozen, scroll))
	}
	return lines
}

// cellView is the cell text, or the open editor for the edited cell.
func (m Model[T]) cellView(st store.State[T], row, col int) string {
	if m.edit != nil && m.edit.row == row && m.edit.column == col {
		return m.edit.editor.View()
	}
	return m.cellText(st, row, col)
}

func (m Model[T]) cellText(st store.State[T], row, col int) string {
	c := st.Columns[col]
	ctx := m.cellContext(st, row, col)
	if c.ItemRender != nil {
		return c.ItemRender(ctx)
	}
	return TextRenderer(ctx)
}

func (m Model[T]) cellContext(st store.State[T], row, col int) store.CellContext[T] {
	item := st.Data[row]
	c := st.Columns[col]
	onEdit := m.cfg.OnEdit
	return store.CellContext[T]{
		Editable:    c.Editable,
		Item:        item,
		Column:      c,
		Values:      item.Values,
		Index:       row,
		ColumnIndex: col,
		Width:       c.Width,
		Focused:     m.focused && st.Focus.Row == row && st.Focus.Column == col,
		HandleSave: func(v any) {
			if onEdit == nil {
				return
			}
			prev, _ := store.Lookup(item.Values, c.Key)
			onEdit(EditEvent[T]{Row: row, Column: col, Key: c.Key, Item: item, Previous: prev, Value: v})
		},
		HandleCancel: func() {},
	}
}

func (m Model[T]) cellStyle(st store.State[T], item store.DataItem[T], row, col int) lipgloss.Style {
	s := m.cfg.Style.Cell
	c := st.Columns[col]
	if cls, ok := m.cfg.Style.Classes[c.ClassName]; ok && c.ClassName != "" {
		s = cls.Inherit(s)
	}
	if c.GetClassName != nil {
		if name := c.GetClassName(item); name != "" {
			if cls, ok := m.cfg.Style.Classes[name]; ok {
				s = cls.Inherit(s)
			}
		}
	}
	switch item.Status {
	case store.StatusNew:
		s = m.cfg.Style.New.Inherit(s)
	case store.StatusRemove:
		s = m.cfg.Style.Removed.Inherit(s)
	}
	if item.Checked {
		s = m.cfg.Style.Checked.Inherit(s)
	}
	if m.focused && st.Focus.Row == row && st.Focus.Column == col {
		s = m.cfg.Style.Focused.Inherit(s)
	}
	return s
}
