package editors

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/frametable/grid"
)

type outcome struct {
	saved     bool
	cancelled bool
	value     any
}

func editCtx(value any, width int) (grid.EditorContext, *outcome) {
	out := &outcome{}
	return grid.EditorContext{
		Value:  value,
		Width:  width,
		Save:   func(v any) { out.saved, out.value = true, v },
		Cancel: func() { out.cancelled = true },
	}, out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(e grid.Editor, msgs ...tea.Msg) grid.Editor {
	for _, msg := range msgs {
		e, _ = e.Update(msg)
	}
	return e
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	bksp  = tea.KeyMsg{Type: tea.KeyBackspace}
)

func TestInput_SavesTypedText(t *testing.T) {
	ctx, out := editCtx("Oslo", 10)
	e := Input(InputConfig{})(ctx)

	if got := ansi.Strip(e.View()); !strings.HasPrefix(got, "Oslo") {
		t.Fatalf("initial view: got %q", got)
	}
	send(e, bksp, runes("w"), enter)
	if !out.saved || out.value != "Oslw" {
		t.Fatalf("save: got %+v, want value %q", out, "Oslw")
	}
}

func TestInput_ParseErrorKeepsEditorOpen(t *testing.T) {
	ctx, out := editCtx(12, 10)
	e := Input(InputConfig{Parse: func(s string) (any, error) { return strconv.Atoi(s) }})(ctx)

	e = send(e, runes("x"), enter)
	if out.saved {
		t.Fatalf("invalid input saved %v", out.value)
	}
	e = send(e, bksp, runes("5"), enter)
	if !out.saved || out.value != 125 {
		t.Fatalf("save after fix: got %+v, want %d", out, 125)
	}
}

func TestInput_Cancel(t *testing.T) {
	ctx, out := editCtx("a", 5)
	send(Input(InputConfig{})(ctx), runes("b"), esc)
	if !out.cancelled || out.saved {
		t.Fatalf("cancel: got %+v", out)
	}
}

var cityOptions = []Option{
	{Label: "Oslo", Value: "osl"},
	{Label: "Lima", Value: "lim"},
	{Label: "Rome", Value: "rom"},
	{Label: "Kyiv", Value: "kbp"},
	{Label: "Milan", Value: "mil"},
}

func TestSelect_StartsOnCurrentValue(t *testing.T) {
	ctx, out := editCtx("rom", 6)
	e := Select(SelectConfig{Options: cityOptions})(ctx)
	if got := e.View(); got != "Rome" {
		t.Fatalf("view: got %q, want %q", got, "Rome")
	}
	send(e, down, enter)
	if out.value != "kbp" {
		t.Fatalf("saved: got %v, want %q", out.value, "kbp")
	}
}

func TestSelect_FilterNarrowsOptions(t *testing.T) {
	ctx, out := editCtx(nil, 6)
	e := send(Select(SelectConfig{Options: cityOptions})(ctx), runes("M"))

	pe, ok := e.(grid.PopupEditor)
	if !ok {
		t.Fatalf("select must expose a popup")
	}
	popup, show := pe.Popup()
	lines := strings.Split(ansi.Strip(popup), "\n")
	if !show || len(lines) != 3 || lines[0] != "Lima " || lines[1] != "Rome " || lines[2] != "Milan" {
		t.Fatalf("filtered popup: got %q", lines)
	}
	if got := e.View(); got != "M" {
		t.Fatalf("view while filtering: got %q", got)
	}
	send(e, down, down, enter)
	if out.value != "mil" {
		t.Fatalf("saved: got %v, want %q", out.value, "mil")
	}
}

func TestSelect_NoMatch(t *testing.T) {
	ctx, out := editCtx(nil, 6)
	e := send(Select(SelectConfig{Options: cityOptions})(ctx), runes("zz"), enter)
	if out.saved {
		t.Fatalf("saved with no match: %v", out.value)
	}
	popup, _ := e.(grid.PopupEditor).Popup()
	if ansi.Strip(popup) != "no match" {
		t.Fatalf("empty popup: got %q", popup)
	}
	e = send(e, bksp, bksp)
	if popup, _ := e.(grid.PopupEditor).Popup(); len(strings.Split(popup, "\n")) != len(cityOptions) {
		t.Fatalf("clearing the query must restore all options")
	}
}

func TestSelect_PopupScrollsWithHighlight(t *testing.T) {
	ctx, _ := editCtx(nil, 6)
	e := Select(SelectConfig{Options: cityOptions, MaxVisible: 2})(ctx)
	e = send(e, down, down, down)
	popup, _ := e.(grid.PopupEditor).Popup()
	lines := strings.Split(ansi.Strip(popup), "\n")
	if len(lines) != 2 || lines[0] != "Rome" || lines[1] != "Kyiv" {
		t.Fatalf("window: got %q", lines)
	}
	e = send(e, up, up, up, up)
	if got := e.View(); got != "Oslo" {
		t.Fatalf("view after moving up: got %q", got)
	}
}

func TestScrollOffset(t *testing.T) {
	cases := []struct {
		offset, selected, n, size, want int
	}{
		{offset: 0, selected: 0, n: 3, size: 5, want: 0},
		{offset: 0, selected: 6, n: 10, size: 4, want: 3},
		{offset: 5, selected: 2, n: 10, size: 4, want: 2},
		{offset: 8, selected: 8, n: 10, size: 4, want: 6},
	}
	for _, tc := range cases {
		if got := scrollOffset(tc.offset, tc.selected, tc.n, tc.size); got != tc.want {
			t.Fatalf("scrollOffset(%d, %d, %d, %d): got %d, want %d", tc.offset, tc.selected, tc.n, tc.size, got, tc.want)
		}
	}
}

func TestDate_ParsesAndSteps(t *testing.T) {
	day := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	ctx, out := editCtx(day, 11)
	e := Date(DateConfig{})(ctx)

	if got := ansi.Strip(e.View()); !strings.HasPrefix(got, "2024-02-28") {
		t.Fatalf("initial view: got %q", got)
	}
	send(e, down, down, enter)
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got, ok := out.value.(time.Time)
	if !ok || !got.Equal(want) {
		t.Fatalf("saved: got %v, want %v", out.value, want)
	}
}

func TestDate_RejectsInvalid(t *testing.T) {
	ctx, out := editCtx(nil, 11)
	e := send(Date(DateConfig{})(ctx), runes("2024-13-01"), enter)
	if out.saved {
		t.Fatalf("invalid date saved: %v", out.value)
	}
	if got := ansi.Strip(e.View()); !strings.Contains(got, "2024-13-01") {
		t.Fatalf("invalid text must stay visible: got %q", got)
	}

	ctx, out = editCtx(nil, 11)
	send(Date(DateConfig{})(ctx), enter)
	if out.saved {
		t.Fatalf("empty date saved without AllowEmpty")
	}
	if _, err := parseDate(normalizeDateConfig(DateConfig{}), ""); !errors.Is(err, ErrRequired) {
		t.Fatalf("empty date error: got %v, want ErrRequired", err)
	}

	ctx, out = editCtx(nil, 11)
	send(Date(DateConfig{AllowEmpty: true})(ctx), enter)
	if v, ok := out.value.(time.Time); !out.saved || !ok || !v.IsZero() {
		t.Fatalf("allowed empty date: got %+v", out)
	}
}

func TestLayoutHint(t *testing.T) {
	if got, want := layoutHint("02.01.2006"), "dd.mm.yyyy"; got != want {
		t.Fatalf("hint: got %q, want %q", got, want)
	}
}
