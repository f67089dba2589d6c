package grid

import (
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/olekukonko/tablewriter"
)

// WriteTable writes every row, not just the visible window, as a plain text
// table.
func (m Model[T]) WriteTable(w io.Writer) error {
	st := m.st.Snapshot()
	table := tablewriter.NewWriter(w)

	header := make([]string, len(st.Columns))
	for i, c := range st.Columns {
		header[i] = c.Label
	}
	table.Header(header)

	for r := range st.Data {
		row := make([]string, len(st.Columns))
		for i := range st.Columns {
			row[i] = ansi.Strip(m.cellText(st, r, i))
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("append row %d: %w", r, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
