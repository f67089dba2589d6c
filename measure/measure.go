// Package measure sizes columns the way an auto-layout table would: it holds
// an off-screen copy of the rendered cells and reports a column's natural
// width.
package measure

import (
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

var ErrDetached = errors.New("measure: surface detached")

// NoColumn marks cells that do not belong to a data column, such as the
// selection checkbox.
const NoColumn = -1

// Cell is one rendered cell. Content may carry ANSI sequences and newlines.
type Cell struct {
	Column  int
	Content string
}

type Row []Cell

// Table is one rendered table section: header rows then body rows.
type Table struct {
	Header []Row
	Body   []Row
}

// Registry tracks attached surfaces. A released surface is removed
// immediately.
type Registry struct {
	mu       sync.Mutex
	surfaces map[string]*Surface
}

func NewRegistry() *Registry {
	return &Registry{surfaces: map[string]*Surface{}}
}

// Attach clones tables into a new uniquely identified surface.
func (r *Registry) Attach(tables ...Table) *Surface {
	s := &Surface{
		id:     uuid.NewString(),
		reg:    r,
		tables: cloneTables(tables),
	}
	r.mu.Lock()
	r.surfaces[s.id] = s
	r.mu.Unlock()
	return s
}

// Len is the number of attached surfaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.surfaces)
}

func (r *Registry) release(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.surfaces[id]
	delete(r.surfaces, id)
	return ok
}

// Surface is an off-screen clone of the header and body tables.
type Surface struct {
	id  string
	reg *Registry

	mu       sync.Mutex
	tables   []Table
	detached bool
}

func (s *Surface) ID() string { return s.id }

// Release detaches the surface. It is safe to call more than once.
func (s *Surface) Release() {
	s.mu.Lock()
	s.detached = true
	s.tables = nil
	s.mu.Unlock()
	s.reg.release(s.id)
}

// Measure returns the natural width of column: the width an auto-layout
// table assigns to it, read from the column's cell in the last row that
// has one. ok is false when no row carries the column.
func (s *Surface) Measure(column int) (width int, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		return 0, false, ErrDetached
	}
	widths := autoLayout(s.tables)
	for ti := len(s.tables) - 1; ti >= 0; ti-- {
		t := s.tables[ti]
		rows := append(append([]Row(nil), t.Header...), t.Body...)
		for ri := len(rows) - 1; ri >= 0; ri-- {
			for _, c := range rows[ri] {
				if c.Column == column {
					return widths[column], true, nil
				}
			}
		}
	}
	return 0, false, nil
}

// autoLayout sizes every column to its widest cell across all tables.
func autoLayout(tables []Table) map[int]int {
	widths := map[int]int{}
	for _, t := range tables {
		for _, rows := range [][]Row{t.Header, t.Body} {
			for _, r := range rows {
				for _, c := range r {
					if c.Column == NoColumn {
						continue
					}
					if w := CellWidth(c.Content); w > widths[c.Column] {
						widths[c.Column] = w
					}
				}
			}
		}
	}
	return widths
}

// CellWidth is the widest line of content in terminal cells.
func CellWidth(content string) int {
	w := 0
	for _, line := range strings.Split(content, "\n") {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}

func cloneTables(tables []Table) []Table {
	out := make([]Table, len(tables))
	for i, t := range tables {
		out[i] = Table{Header: cloneRows(t.Header), Body: cloneRows(t.Body)}
	}
	return out
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = append(Row(nil), r...)
	}
	return out
}
