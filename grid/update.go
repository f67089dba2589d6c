package grid

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func (m Model[T]) updateKey(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	if m.edit != nil {
		return m.updateEditor(msg)
	}

	km := m.cfg.KeyMap
	st := m.st.Snapshot()
	f := st.Focus
	l := st.Layout

	switch {
	case key.Matches(msg, km.Up):
		m.moveFocus(f.Row-1, f.Column)
	case key.Matches(msg, km.Down):
		m.moveFocus(f.Row+1, f.Column)
	case key.Matches(msg, km.Left):
		m.moveFocus(f.Row, f.Column-1)
	case key.Matches(msg, km.Right):
		m.moveFocus(f.Row, f.Column+1)
	case key.Matches(msg, km.PageUp):
		m.moveFocus(f.Row-max(l.DisplayCount-1, 1), f.Column)
	case key.Matches(msg, km.PageDown):
		m.moveFocus(f.Row+max(l.DisplayCount-1, 1), f.Column)
	case key.Matches(msg, km.Home):
		m.moveFocus(0, f.Column)
	case key.Matches(msg, km.End):
		m.moveFocus(len(st.Data)-1, f.Column)
	case key.Matches(msg, km.ScrollLeft):
		m.st.ScrollBy(0, -wheelColumns)
	case key.Matches(msg, km.ScrollRight):
		m.st.ScrollBy(0, wheelColumns)

	case key.Matches(msg, km.ToggleCheck):
		if len(st.Data) > 0 {
			m.st.ToggleRow(m.st.RowID(st.Data[f.Row].Values))
		}
	case key.Matches(msg, km.ToggleAll):
		m.st.SetSelectedAll(!st.SelectedAll)

	case key.Matches(msg, km.Sort), key.Matches(msg, km.SortMulti):
		if len(st.Columns) > 0 && st.Columns[f.Column].Sortable {
			m.st.ClickSort(st.Columns[f.Column].Key, key.Matches(msg, km.SortMulti))
		}

	case key.Matches(msg, km.Widen), key.Matches(msg, km.Narrow):
		if len(st.Columns) == 0 {
			return m, nil
		}
		delta := 1
		if key.Matches(msg, km.Narrow) {
			delta = -1
		}
		w := max(st.Columns[f.Column].Width+delta, m.resizer.Options().MinWidth)
		m.st.SetColumnWidth(f.Column, w)
		m.st.CommitColumnWidth(f.Column)
	case key.Matches(msg, km.Autofit):
		return m, m.autofit(f.Column)

	case key.Matches(msg, km.Edit):
		return m.openEditor()
	case key.Matches(msg, km.Cancel):
		_ = m.resizer.Cancel()

	case key.Matches(msg, km.Copy):
		m.copyCell(st.Focus.Row, st.Focus.Column)
	}
	return m, nil
}

// moveFocus focuses a cell and scrolls its column into view.
func (m Model[T]) moveFocus(row, col int) {
	m.st.SetFocus(row, col)
	st := m.st.Snapshot()
	l := st.Layout
	col = st.Focus.Column
	if col < l.FrozenColumnIndex {
		return
	}
	widths := st.Widths()[l.FrozenColumnIndex:]
	i := col - l.FrozenColumnIndex
	left := 0
	for _, w := range widths[:i] {
		left += w + l.Separator
	}
	right := left + widths[i]
	switch {
	case left < st.Scroll.Left:
		m.st.SetScrollLeft(left)
	case right > st.Scroll.Left+l.ScrollableViewWidth:
		m.st.SetScrollLeft(right - l.ScrollableViewWidth)
	}
}

func (m Model[T]) copyCell(row, col int) {
	if m.cfg.Clipboard == nil {
		return
	}
	st := m.st.Snapshot()
	if row < 0 || row >= len(st.Data) || col < 0 || col >= len(st.Columns) {
		return
	}
	s := ansi.Strip(m.cellText(st, row, col))
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.cfg.Logger.Debug("clipboard write failed", "err", err)
	}
}
