package editors

import (
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/frametable/grid"
	"github.com/iw2rmb/frametable/internal/grapheme"
)

const defaultSelectMaxVisible = 6

// Option is one choice of a select editor.
type Option struct {
	Label string
	Value any
}

// SelectConfig configures a select editor.
type SelectConfig struct {
	Options []Option
	// MaxVisible caps the popup rows. Defaults to 6.
	MaxVisible int
	// MaxWidth caps the popup width. Zero means the widest label.
	MaxWidth int

	KeyMap KeyMap
	// Style defaults to DefaultStyle.
	Style *Style
}

func normalizeSelectConfig(cfg SelectConfig) SelectConfig {
	if cfg.MaxVisible <= 0 {
		cfg.MaxVisible = defaultSelectMaxVisible
	}
	cfg.MaxWidth = max(cfg.MaxWidth, 0)
	cfg.KeyMap = normalizeKeyMap(cfg.KeyMap)
	cfg.Style = styleOr(cfg.Style)
	return cfg
}

// Select returns a factory for select editors. Typing filters the options
// by label, Prev and Next move the highlight and Save stores the
// highlighted option's Value.
func Select(cfg SelectConfig) grid.EditorFactory {
	cfg = normalizeSelectConfig(cfg)
	return func(ctx grid.EditorContext) grid.Editor {
		e := selectEditor{cfg: cfg, ctx: ctx}
		e.visible = filterOptions(cfg.Options, "")
		for i, idx := range e.visible {
			if reflect.DeepEqual(cfg.Options[idx].Value, ctx.Value) {
				e.selected = i
				break
			}
		}
		e.offset = scrollOffset(e.offset, e.selected, len(e.visible), cfg.MaxVisible)
		return e
	}
}

type selectEditor struct {
	cfg SelectConfig
	ctx grid.EditorContext

	query    string
	visible  []int
	selected int
	offset   int
}

func (e selectEditor) Update(msg tea.Msg) (grid.Editor, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil
	}
	km := e.cfg.KeyMap
	switch {
	case key.Matches(k, km.Save):
		if opt, ok := e.current(); ok {
			e.ctx.Save(opt.Value)
		}
		return e, nil
	case key.Matches(k, km.Cancel):
		e.ctx.Cancel()
		return e, nil
	case key.Matches(k, km.Prev):
		e.selected = max(e.selected-1, 0)
	case key.Matches(k, km.Next):
		e.selected = min(e.selected+1, max(len(e.visible)-1, 0))
	case k.Type == tea.KeyBackspace:
		if cs := grapheme.Split(e.query); len(cs) > 0 {
			e.setQuery(strings.Join(cs[:len(cs)-1], ""))
		}
	case k.Type == tea.KeyRunes, k.Type == tea.KeySpace:
		e.setQuery(e.query + string(k.Runes))
	default:
		return e, nil
	}
	e.offset = scrollOffset(e.offset, e.selected, len(e.visible), e.cfg.MaxVisible)
	return e, nil
}

func (e *selectEditor) setQuery(q string) {
	e.query = q
	e.visible = filterOptions(e.cfg.Options, q)
	e.selected = 0
	e.offset = 0
}

func (e selectEditor) current() (Option, bool) {
	if e.selected < 0 || e.selected >= len(e.visible) {
		return Option{}, false
	}
	return e.cfg.Options[e.visible[e.selected]], true
}

// View shows the query while filtering, the highlighted label otherwise.
func (e selectEditor) View() string {
	if e.query != "" {
		return e.query
	}
	if opt, ok := e.current(); ok {
		return opt.Label
	}
	return ""
}

// Popup lists the visible window of filtered options.
func (e selectEditor) Popup() (string, bool) {
	st := e.cfg.Style
	if len(e.visible) == 0 {
		return st.Empty.Render("no match"), true
	}
	end := min(e.offset+e.cfg.MaxVisible, len(e.visible))
	rows := e.visible[e.offset:end]

	width := 0
	for _, idx := range rows {
		width = max(width, grapheme.Width(grapheme.Flatten(e.cfg.Options[idx].Label)))
	}
	if e.cfg.MaxWidth > 0 {
		width = min(width, e.cfg.MaxWidth)
	}

	out := make([]string, len(rows))
	for i, idx := range rows {
		label := grapheme.Truncate(grapheme.Flatten(e.cfg.Options[idx].Label), width, "…")
		label += strings.Repeat(" ", max(width-grapheme.Width(label), 0))
		if e.offset+i == e.selected {
			out[i] = st.Selected.Render(label)
		} else {
			out[i] = st.Option.Render(label)
		}
	}
	return strings.Join(out, "\n"), true
}

// filterOptions returns indices of options whose label contains query,
// case-insensitively.
func filterOptions(opts []Option, query string) []int {
	q := strings.ToLower(query)
	out := make([]int, 0, len(opts))
	for i, opt := range opts {
		if strings.Contains(strings.ToLower(opt.Label), q) {
			out = append(out, i)
		}
	}
	return out
}

// scrollOffset keeps selected inside a window of size rows.
func scrollOffset(offset, selected, n, size int) int {
	if n <= size {
		return 0
	}
	if selected < offset {
		return selected
	}
	if selected >= offset+size {
		return selected - size + 1
	}
	return min(offset, n-size)
}
