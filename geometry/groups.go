package geometry

// Align is the horizontal alignment of a cell or a group label. The zero
// value aligns left.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// GroupDecl declares a header group spanning Colspan leaf columns. Groups are
// laid out in order; their spans are expected to sum to the column count.
type GroupDecl struct {
	Label   string
	Align   Align
	Colspan int
}

// Group is a header group after splitting at the frozen boundary.
// Index is the position of the GroupDecl it came from. The filler group
// added by FitColumnGroups is an ordinary declaration and gets its position.
type Group struct {
	Label   string
	Align   Align
	Colspan int
	Index   int
}

type groupCell struct {
	index int
	label string
	align Align
}

// SplitColumnGroups expands every declaration into one entry per spanned
// column, partitions the entries at frozenIndex and merges adjacent entries
// of the same origin on each side. A group straddling the boundary comes
// out as two groups, one per side.
func SplitColumnGroups(groups []GroupDecl, frozenIndex int) (frozen, scrollable []Group) {
	cells := make([]groupCell, 0, len(groups))
	for i, g := range groups {
		for n := 0; n < g.Colspan; n++ {
			cells = append(cells, groupCell{index: i, label: g.Label, align: g.Align})
		}
	}

	frozenIndex = clampInt(frozenIndex, 0, len(cells))
	return mergeGroupCells(cells[:frozenIndex]), mergeGroupCells(cells[frozenIndex:])
}

func mergeGroupCells(cells []groupCell) []Group {
	var out []Group
	for _, c := range cells {
		if n := len(out); n > 0 && out[n-1].Index == c.index {
			out[n-1].Colspan++
			continue
		}
		out = append(out, Group{Label: c.label, Align: c.align, Colspan: 1, Index: c.index})
	}
	return out
}

// FitColumnGroups repairs declarations so their spans sum to columnCount.
// Non-positive spans are dropped, spans past the last column are cut, and a
// missing tail is covered by an unlabeled filler group. fixed reports
// whether anything had to change.
func FitColumnGroups(groups []GroupDecl, columnCount int) (out []GroupDecl, fixed bool) {
	if len(groups) == 0 {
		return nil, false
	}
	columnCount = maxInt(columnCount, 0)

	out = make([]GroupDecl, 0, len(groups)+1)
	used := 0
	for _, g := range groups {
		if g.Colspan <= 0 {
			fixed = true
			continue
		}
		if used >= columnCount {
			fixed = true
			continue
		}
		if used+g.Colspan > columnCount {
			g.Colspan = columnCount - used
			fixed = true
		}
		used += g.Colspan
		out = append(out, g)
	}
	if used < columnCount {
		out = append(out, GroupDecl{Colspan: columnCount - used})
		fixed = true
	}
	return out, fixed
}

// SumColspan adds up group spans.
func SumColspan(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += g.Colspan
	}
	return n
}
