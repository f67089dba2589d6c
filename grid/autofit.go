package grid

import (
	"github.com/iw2rmb/frametable/measure"
	"github.com/iw2rmb/frametable/store"
)

// cloneTables renders the header and the visible rows of both sections,
// untruncated, for measuring natural column widths.
func (m Model[T]) cloneTables() []measure.Table {
	st := m.st.Snapshot()
	l := st.Layout
	frozen, scroll := measure.Table{}, measure.Table{}

	var fh, sh measure.Row
	if l.RowSelection {
		fh = append(fh, measure.Cell{Column: measure.NoColumn, Content: checkbox(st.SelectedAll, m.selectionWidth(l), m.cfg.Style.CheckedGlyph, m.cfg.Style.UncheckedGlyph)})
	}
	for i := range st.Columns {
		c := measure.Cell{Column: i, Content: m.headerLabel(st, i)}
		if i < l.FrozenColumnIndex {
			fh = append(fh, c)
		} else {
			sh = append(sh, c)
		}
	}
	frozen.Header = []measure.Row{fh}
	scroll.Header = []measure.Row{sh}

	start, end := st.VisibleRange()
	for r := start; r < end; r++ {
		fr, sr := m.cloneRow(st, r)
		frozen.Body = append(frozen.Body, fr)
		scroll.Body = append(scroll.Body, sr)
	}
	return []measure.Table{frozen, scroll}
}

func (m Model[T]) cloneRow(st store.State[T], row int) (frozen, scroll measure.Row) {
	l := st.Layout
	if l.RowSelection {
		frozen = append(frozen, measure.Cell{Column: measure.NoColumn, Content: checkbox(st.Data[row].Checked, m.selectionWidth(l), m.cfg.Style.CheckedGlyph, m.cfg.Style.UncheckedGlyph)})
	}
	for i := range st.Columns {
		c := measure.Cell{Column: i, Content: m.cellText(st, row, i)}
		if i < l.FrozenColumnIndex {
			frozen = append(frozen, c)
		} else {
			scroll = append(scroll, c)
		}
	}
	return frozen, scroll
}
