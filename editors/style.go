package editors

import "github.com/charmbracelet/lipgloss"

// Style controls editor rendering. The popup frame itself comes from the
// grid's Style.Popup.
type Style struct {
	Option   lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
	Invalid  lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Option:   lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Reverse(true),
		Empty:    lipgloss.NewStyle().Faint(true),
		Invalid:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

func styleOr(s *Style) *Style {
	if s == nil {
		d := DefaultStyle()
		return &d
	}
	return s
}
