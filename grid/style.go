package grid

import "github.com/charmbracelet/lipgloss"

// Style controls the grid's rendering. Cell styles should only set colors
// and attributes: widths and padding are computed by the grid.
type Style struct {
	// Frame wraps the grid and must draw a one-cell border.
	Frame lipgloss.Style

	Header      lipgloss.Style
	GroupHeader lipgloss.Style
	// Resizing replaces Header on the column being resized.
	Resizing lipgloss.Style

	Cell    lipgloss.Style
	Focused lipgloss.Style
	Checked lipgloss.Style
	New     lipgloss.Style
	Removed lipgloss.Style
	Popup   lipgloss.Style

	Separator      string
	SeparatorStyle lipgloss.Style

	CheckedGlyph   string
	UncheckedGlyph string
	SortAsc        string
	SortDesc       string

	// Classes resolves Column.ClassName and Column.GetClassName.
	Classes map[string]lipgloss.Style
}

func DefaultStyle() Style {
	muted := lipgloss.Color("240")
	return Style{
		Frame:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted),
		Header:         lipgloss.NewStyle().Bold(true),
		GroupHeader:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Resizing:       lipgloss.NewStyle().Bold(true).Reverse(true),
		Cell:           lipgloss.NewStyle(),
		Focused:        lipgloss.NewStyle().Reverse(true),
		Checked:        lipgloss.NewStyle().Background(lipgloss.Color("237")),
		New:            lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Removed:        lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		Popup:          lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(muted),
		Separator:      "│",
		SeparatorStyle: lipgloss.NewStyle().Foreground(muted),
		CheckedGlyph:   "✓",
		UncheckedGlyph: "·",
		SortAsc:        "▲",
		SortDesc:       "▼",
	}
}
