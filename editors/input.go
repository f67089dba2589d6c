package editors

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/frametable/grid"
)

// InputConfig configures a text input editor.
type InputConfig struct {
	Placeholder string
	CharLimit   int

	// Parse converts the typed text into the saved value. A parse error
	// keeps the editor open and marks the input invalid. Defaults to the
	// text itself.
	Parse func(string) (any, error)

	KeyMap KeyMap
	// Style defaults to DefaultStyle.
	Style *Style
}

func normalizeInputConfig(cfg InputConfig) InputConfig {
	if cfg.Parse == nil {
		cfg.Parse = func(s string) (any, error) { return s, nil }
	}
	cfg.KeyMap = normalizeKeyMap(cfg.KeyMap)
	cfg.Style = styleOr(cfg.Style)
	return cfg
}

// Input returns a factory for single-line text editors.
func Input(cfg InputConfig) grid.EditorFactory {
	cfg = normalizeInputConfig(cfg)
	return func(ctx grid.EditorContext) grid.Editor {
		return newInput(cfg, ctx, grid.FormatValue(ctx.Value))
	}
}

type inputEditor struct {
	cfg InputConfig
	ctx grid.EditorContext
	ti  textinput.Model
}

func newInput(cfg InputConfig, ctx grid.EditorContext, value string) inputEditor {
	ti := newTextInput(ctx.Width, cfg.Placeholder, cfg.CharLimit)
	ti.SetValue(value)
	ti.CursorEnd()
	return inputEditor{cfg: cfg, ctx: ctx, ti: ti}
}

func newTextInput(width int, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	// One cell is kept for the cursor.
	ti.Width = max(width-1, 1)
	ti.Focus()
	return ti
}

func (e inputEditor) Init() tea.Cmd { return textinput.Blink }

func (e inputEditor) Update(msg tea.Msg) (grid.Editor, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, e.cfg.KeyMap.Save):
			v, err := e.cfg.Parse(e.ti.Value())
			if err != nil {
				e.ti.Err = err
				return e, nil
			}
			e.ctx.Save(v)
			return e, nil
		case key.Matches(k, e.cfg.KeyMap.Cancel):
			e.ctx.Cancel()
			return e, nil
		}
	}
	var cmd tea.Cmd
	e.ti, cmd = e.ti.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		e.ti.Err = nil
	}
	return e, cmd
}

func (e inputEditor) View() string {
	if e.ti.Err != nil {
		return e.cfg.Style.Invalid.Render(e.ti.Value())
	}
	return e.ti.View()
}

// Value returns the typed text.
func (e inputEditor) Value() string { return e.ti.Value() }
