package store

import tea "github.com/charmbracelet/bubbletea"

// CellContext is everything a renderer needs to draw one cell.
type CellContext[T any] struct {
	Editable bool
	Item     DataItem[T]
	Column   Column[T]
	Values   T
	// Index is the row index in the data list.
	Index int
	// ColumnIndex is the index of Column in the full column list.
	ColumnIndex int
	Width       int
	Focused     bool

	HandleSave   func(value any)
	HandleCancel func()
}

// CellRenderer returns the plain or styled text of one cell line.
type CellRenderer[T any] func(ctx CellContext[T]) string

// Editor is an interactive cell editor hosted by the grid. Keys are routed
// to Update while the editor is open.
type Editor interface {
	Update(msg tea.Msg) (Editor, tea.Cmd)
	View() string
}

// PopupEditor is an Editor that also draws a popup below the edited cell.
type PopupEditor interface {
	Editor
	Popup() (string, bool)
}

// EditorContext is passed to an EditorFactory when editing starts. Save and
// Cancel close the editor.
type EditorContext struct {
	Value  any
	Width  int
	Save   func(value any)
	Cancel func()
}

type EditorFactory func(ctx EditorContext) Editor
