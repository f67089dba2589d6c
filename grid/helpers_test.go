package grid

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/frametable/store"
)

type rec = map[string]any

var cities = []string{"Oslo", "Lima", "Rome", "Kyiv"}

func testRows(n int) []store.DataItem[rec] {
	out := make([]store.DataItem[rec], n)
	for i := range out {
		out[i] = store.DataItem[rec]{Values: rec{
			"id":     i,
			"code":   fmt.Sprintf("C%03d", i),
			"city":   cities[i%len(cities)],
			"amount": i * 1000,
		}}
	}
	return out
}

func col(field, label string, width int) store.Column[rec] {
	return store.Column[rec]{Key: store.Field(field), Label: label, Width: width}
}

// innerLines strips ANSI and the frame border from a rendered view.
func innerLines(t *testing.T, view string) []string {
	t.Helper()
	lines := strings.Split(ansi.Strip(view), "\n")
	if len(lines) < 2 {
		t.Fatalf("view has %d lines, want a framed view", len(lines))
	}
	lines = lines[1 : len(lines)-1]
	out := make([]string, len(lines))
	for i, line := range lines {
		r := []rune(line)
		if len(r) >= 2 {
			r = r[1 : len(r)-1]
		}
		out[i] = strings.TrimRight(string(r), " ")
	}
	return out
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sendAll[T any](m Model[T], msgs ...tea.Msg) (Model[T], tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

type memClipboard struct{ text string }

func (c *memClipboard) ReadText() (string, error) { return c.text, nil }
func (c *memClipboard) WriteText(s string) error {
	c.text = s
	return nil
}
