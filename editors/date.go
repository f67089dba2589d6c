package editors

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/frametable/grid"
)

// ErrRequired rejects an empty date when AllowEmpty is off.
var ErrRequired = errors.New("editors: value required")

// DateConfig configures a date editor.
type DateConfig struct {
	// Layout defaults to grid.DateLayout.
	Layout string
	// Location defaults to time.UTC.
	Location *time.Location
	// AllowEmpty saves the zero time for an empty input.
	AllowEmpty bool

	KeyMap KeyMap
	// Style defaults to DefaultStyle.
	Style *Style
}

func normalizeDateConfig(cfg DateConfig) DateConfig {
	if cfg.Layout == "" {
		cfg.Layout = grid.DateLayout
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	cfg.KeyMap = normalizeKeyMap(cfg.KeyMap)
	cfg.Style = styleOr(cfg.Style)
	return cfg
}

// Date returns a factory for date editors. Saved values are time.Time.
// Prev and Next step the date by one day.
func Date(cfg DateConfig) grid.EditorFactory {
	cfg = normalizeDateConfig(cfg)
	parse := func(s string) (any, error) { return parseDate(cfg, s) }
	return func(ctx grid.EditorContext) grid.Editor {
		text := ""
		switch v := ctx.Value.(type) {
		case time.Time:
			if !v.IsZero() {
				text = v.In(cfg.Location).Format(cfg.Layout)
			}
		case nil:
		default:
			text = grid.FormatValue(v)
		}
		in := newInput(InputConfig{
			Placeholder: strings.ToUpper(layoutHint(cfg.Layout)),
			CharLimit:   len(cfg.Layout),
			Parse:       parse,
			KeyMap:      cfg.KeyMap,
			Style:       cfg.Style,
		}, ctx, text)
		return dateEditor{cfg: cfg, input: in}
	}
}

func parseDate(cfg DateConfig, s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if cfg.AllowEmpty {
			return time.Time{}, nil
		}
		return nil, ErrRequired
	}
	t, err := time.ParseInLocation(cfg.Layout, s, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// layoutHint turns a reference layout into a placeholder.
func layoutHint(layout string) string {
	return strings.NewReplacer("2006", "yyyy", "01", "mm", "02", "dd").Replace(layout)
}

type dateEditor struct {
	cfg   DateConfig
	input inputEditor
}

func (e dateEditor) Init() tea.Cmd { return e.input.Init() }

func (e dateEditor) Update(msg tea.Msg) (grid.Editor, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		days := 0
		switch {
		case key.Matches(k, e.cfg.KeyMap.Prev):
			days = -1
		case key.Matches(k, e.cfg.KeyMap.Next):
			days = 1
		}
		if days != 0 {
			e.input = e.step(days)
			return e, nil
		}
	}
	ed, cmd := e.input.Update(msg)
	e.input = ed.(inputEditor)
	return e, cmd
}

// step moves the typed date by days. An empty input starts from today.
func (e dateEditor) step(days int) inputEditor {
	in := e.input
	var t time.Time
	if s := strings.TrimSpace(in.Value()); s == "" {
		t = time.Now().In(e.cfg.Location)
	} else {
		v, err := parseDate(e.cfg, s)
		if err != nil {
			in.ti.Err = err
			return in
		}
		t = v.(time.Time)
	}
	in.ti.SetValue(t.AddDate(0, 0, days).Format(e.cfg.Layout))
	in.ti.CursorEnd()
	in.ti.Err = nil
	return in
}

func (e dateEditor) View() string { return e.input.View() }
