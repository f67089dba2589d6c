package editors

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keys editors react to. Everything else is typed into
// the editor.
type KeyMap struct {
	Save, Cancel key.Binding
	// Prev and Next move the select highlight and step dates by one day.
	Prev, Next key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Prev:   key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
		Next:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
	}
}

func normalizeKeyMap(km KeyMap) KeyMap {
	if len(km.Save.Keys()) == 0 {
		return DefaultKeyMap()
	}
	return km
}
