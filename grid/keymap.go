package grid

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the grid key bindings.
type KeyMap struct {
	Up, Down, Left, Right   key.Binding
	PageUp, PageDown        key.Binding
	Home, End               key.Binding
	ScrollLeft, ScrollRight key.Binding

	ToggleCheck, ToggleAll key.Binding
	Edit, Cancel           key.Binding
	Sort, SortMulti        key.Binding

	Widen, Narrow, Autofit key.Binding

	Copy key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous column")),
		Right: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next column")),

		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first row")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last row")),

		// Horizontal scroll without moving focus.
		ScrollLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "scroll left")),
		ScrollRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "scroll right")),

		ToggleCheck: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check row")),
		ToggleAll:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "check all")),
		Edit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		SortMulti:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "add sort")),

		Widen:   key.NewBinding(key.WithKeys("+", ">"), key.WithHelp("+", "widen column")),
		Narrow:  key.NewBinding(key.WithKeys("-", "<"), key.WithHelp("-", "narrow column")),
		Autofit: key.NewBinding(key.WithKeys("="), key.WithHelp("=", "fit column")),

		Copy: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy cell")),
	}
}
