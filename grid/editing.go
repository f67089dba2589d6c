package grid

import (
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/frametable/store"
)

type editState[T any] struct {
	row, column int
	editor      store.Editor
	previous    any
	session     *editSession
}

// editSession collects the editor's verdict. Editors call Save or Cancel
// from Update or from a command.
type editSession struct {
	mu    sync.Mutex
	done  bool
	saved bool
	value any
}

func (s *editSession) save(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done, s.saved, s.value = true, true, v
}

func (s *editSession) cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
}

func (s *editSession) result() (done, saved bool, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done, s.saved, s.value
}

// Editing reports whether a cell editor is open.
func (m Model[T]) Editing() bool { return m.edit != nil }

func (m Model[T]) openEditor() (Model[T], tea.Cmd) {
	st := m.st.Snapshot()
	f := st.Focus
	if len(st.Data) == 0 || len(st.Columns) == 0 {
		return m, nil
	}
	col := st.Columns[f.Column]
	if !col.Editable || col.Editor == nil {
		return m, nil
	}

	prev, _ := store.Lookup(st.Data[f.Row].Values, col.Key)
	sess := &editSession{}
	ed := col.Editor(store.EditorContext{
		Value:  prev,
		Width:  col.Width,
		Save:   sess.save,
		Cancel: sess.cancel,
	})
	if ed == nil {
		return m, nil
	}
	m.edit = &editState[T]{row: f.Row, column: f.Column, editor: ed, previous: prev, session: sess}
	m.st.SetEditing(true)

	var cmd tea.Cmd
	if i, ok := ed.(interface{ Init() tea.Cmd }); ok {
		cmd = i.Init()
	}
	return m, cmd
}

func (m Model[T]) updateEditor(msg tea.Msg) (Model[T], tea.Cmd) {
	m = m.finishEdit()
	if m.edit == nil {
		return m, nil
	}
	ed, cmd := m.edit.editor.Update(msg)
	m.edit = &editState[T]{
		row:      m.edit.row,
		column:   m.edit.column,
		editor:   ed,
		previous: m.edit.previous,
		session:  m.edit.session,
	}
	m = m.finishEdit()
	if m.edit != nil {
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.cfg.KeyMap.Cancel) {
			m = m.cancelEdit()
		}
	}
	return m, cmd
}

// finishEdit closes the editor once it saved or cancelled and reports a
// saved value through OnEdit.
func (m Model[T]) finishEdit() Model[T] {
	if m.edit == nil {
		return m
	}
	done, saved, value := m.edit.session.result()
	if !done {
		return m
	}
	e := m.edit
	m.edit = nil
	m.st.SetEditing(false)
	if !saved || m.cfg.OnEdit == nil {
		return m
	}
	st := m.st.Snapshot()
	if e.row >= len(st.Data) || e.column >= len(st.Columns) {
		return m
	}
	m.cfg.OnEdit(EditEvent[T]{
		Row:      e.row,
		Column:   e.column,
		Key:      st.Columns[e.column].Key,
		Item:     st.Data[e.row],
		Previous: e.previous,
		Value:    value,
	})
	return m
}

func (m Model[T]) cancelEdit() Model[T] {
	if m.edit == nil {
		return m
	}
	m.edit.session.cancel()
	return m.finishEdit()
}

// overlayPopup composites the open editor's popup below the edited cell, or
// above it when there is no room below.
func (m Model[T]) overlayPopup(view string) string {
	pe, ok := m.edit.editor.(store.PopupEditor)
	if !ok {
		return view
	}
	popup, show := pe.Popup()
	if !show || popup == "" {
		return view
	}
	st := m.st.Snapshot()
	x, y, ok := m.cellOrigin(st, m.edit.row, m.edit.column)
	if !ok {
		return view
	}
	box := m.cfg.Style.Popup.Render(popup)
	pw, ph := lipgloss.Width(box), lipgloss.Height(box)

	s := m.viewport.Style
	left := s.GetMarginLeft() + s.GetBorderLeftSize() + s.GetPaddingLeft()
	top := s.GetMarginTop() + s.GetBorderTopSize() + s.GetPaddingTop()
	x += left
	y += top
	below := y + st.Layout.ItemHeight
	if below+ph > m.viewport.Height && y-ph >= 0 {
		below = y - ph
	}
	x = min(x, max(m.viewport.Width-pw, 0))
	return overlay.Composite(box, view, overlay.Left, overlay.Top, x, below)
}

// Editor contract aliases, so hosts can implement editors against grid.
type (
	Editor        = store.Editor
	PopupEditor   = store.PopupEditor
	EditorContext = store.EditorContext
	EditorFactory = store.EditorFactory
)
