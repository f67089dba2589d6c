package grid

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/frametable/resize"
	"github.com/iw2rmb/frametable/store"
)

const wheelColumns = 4

func (m Model[T]) updateMouse(msg tea.MouseMsg) (Model[T], tea.Cmd) {
	x, y := m.innerPos(msg.X, msg.Y)

	// Drag sessions follow the pointer wherever it goes.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionMotion:
		m.bus.Publish(resize.PointerEvent{Kind: resize.PointerMove, X: x, Y: y})
		return m, nil
	case tea.MouseActionRelease:
		m.bus.Publish(resize.PointerEvent{Kind: resize.PointerUp, X: x, Y: y})
		return m, nil
	}

	if !m.focused || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	l := m.st.Layout()
	switch msg.Button { //nolint:exhaustive
	case tea.MouseButtonWheelUp:
		if msg.Shift {
			m.st.ScrollBy(0, -wheelColumns)
		} else {
			m.st.ScrollBy(-l.ItemStride, 0)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if msg.Shift {
			m.st.ScrollBy(0, wheelColumns)
		} else {
			m.st.ScrollBy(l.ItemStride, 0)
		}
		return m, nil
	case tea.MouseButtonWheelLeft:
		m.st.ScrollBy(0, -wheelColumns)
		return m, nil
	case tea.MouseButtonWheelRight:
		m.st.ScrollBy(0, wheelColumns)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	st := m.st.Snapshot()
	h := m.hitTest(st, x, y)
	switch h.kind { //nolint:exhaustive
	case hitHandle:
		return m.pressHandle(h)
	case hitSelectAll:
		m.st.SetSelectedAll(!st.SelectedAll)
	case hitSelect:
		m.st.ToggleRow(m.st.RowID(st.Data[h.row].Values))
	case hitHeader:
		c := st.Columns[h.column]
		if st.SortEnabled && c.Sortable {
			m.st.ClickSort(c.Key, msg.Shift)
		}
	case hitCell:
		if m.edit != nil {
			m = m.cancelEdit()
		}
		if st.Focus.Row == h.row && st.Focus.Column == h.column {
			return m.openEditor()
		}
		m.st.SetFocus(h.row, h.column)
	}
	return m, nil
}

// pressHandle starts a drag, or autofits when the same handle was pressed
// within the double click interval.
func (m Model[T]) pressHandle(h hit) (Model[T], tea.Cmd) {
	now := time.Now()
	prev := m.lastPress
	m.lastPress = handlePress{column: h.column, at: now}
	if !prev.at.IsZero() && prev.column == h.column && now.Sub(prev.at) <= m.cfg.DoubleClickInterval {
		m.lastPress = handlePress{}
		_ = m.resizer.Cancel()
		return m, m.autofit(h.column)
	}
	if err := m.resizer.Begin(h.column, h.left, m.st.Columns()[h.column].Width); err != nil {
		m.cfg.Logger.Debug("resize begin rejected", "column", h.column, "err", err)
	}
	return m, nil
}

func (m Model[T]) autofit(column int) tea.Cmd {
	if column < 0 || column >= len(m.st.Columns()) {
		return nil
	}
	return m.resizer.Autofit(column, m.cloneTables)
}

// focusOf is the focused cell as a FocusEvent.
func focusOf(f store.Focus) FocusEvent {
	return FocusEvent{Row: f.Row, Column: f.Column}
}
