package store

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/frametable/geometry"
)

// Key addresses a value inside a row record: a single field name or an
// ordered path for nested access.
type Key []string

// Field is a single-segment Key.
func Field(name string) Key { return Key{name} }

// Path builds a nested Key.
func Path(parts ...string) Key { return append(Key(nil), parts...) }

// String joins the path with dots. It is also the key used by sort lookups.
func (k Key) String() string { return strings.Join(k, ".") }

// Equal reports whether both keys address the same path.
func (k Key) Equal(o Key) bool {
	if len(k) != len(o) {
		return false
	}
	for i := range k {
		if k[i] != o[i] {
			return false
		}
	}
	return true
}

// Align is shared with column group declarations.
type Align = geometry.Align

const (
	AlignLeft   = geometry.AlignLeft
	AlignCenter = geometry.AlignCenter
	AlignRight  = geometry.AlignRight
)

// ItemStatus marks unsaved additions and pending deletions so hosts can diff
// the list against their persistence layer.
type ItemStatus uint8

const (
	StatusUnset ItemStatus = iota
	StatusNew
	StatusRemove
)

func (s ItemStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusRemove:
		return "remove"
	default:
		return "unset"
	}
}

// DataItem is one row: the record, its status and whether it is checked.
// Checked mirrors the store's selection and is rewritten by the store.
type DataItem[T any] struct {
	Values  T
	Status  ItemStatus
	Checked bool
}

// RowID identifies a row. It is the row key field formatted as a string.
type RowID string

// Column describes one leaf column. Only Width is ever changed by the grid.
type Column[T any] struct {
	Key      Key
	Label    string
	Width    int
	Align    Align
	Editable bool
	Sortable bool

	// ItemRender overrides the default text renderer.
	ItemRender CellRenderer[T] `hash:"ignore"`
	// Editor opens an interactive editor for editable cells.
	Editor EditorFactory `hash:"ignore"`

	// ClassName and GetClassName name styles registered with the grid.
	ClassName    string
	GetClassName func(item DataItem[T]) string `hash:"ignore"`
}

type SortDirection uint8

const (
	SortAsc SortDirection = iota
	SortDesc
)

func (d SortDirection) String() string {
	if d == SortDesc {
		return "desc"
	}
	return "asc"
}

type SortParam struct {
	Key       Key
	Direction SortDirection
}

// SortState is the derived per-key sort lookup: direction and precedence.
type SortState struct {
	Direction SortDirection
	Index     int
}

// Sort configures header sorting. The grid never sorts data itself; it
// reports the requested order through OnChange.
type Sort struct {
	Params   []SortParam
	OnChange func(params []SortParam) `hash:"ignore"`
}

// RowSelection enables the checkbox column.
type RowSelection struct {
	SelectedIDs []RowID
	OnChange    func(ids []RowID, selectedAll bool) `hash:"ignore"`
}

// Focus is the active cell. Column indexes the full column list.
type Focus struct {
	Row     int
	Column  int
	Editing bool
}

func (f Focus) String() string {
	return fmt.Sprintf("(%d,%d)", f.Row, f.Column)
}
