package grid

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/frametable/store"
)

type fakeEditor struct {
	ctx   store.EditorContext
	text  string
	popup string
}

func (e fakeEditor) Update(msg tea.Msg) (store.Editor, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, nil
	}
	switch k.Type {
	case tea.KeyEnter:
		e.ctx.Save(e.text)
	case tea.KeyRunes:
		e.text += string(k.Runes)
	}
	return e, nil
}

func (e fakeEditor) View() string { return "*" + e.text }

func (e fakeEditor) Popup() (string, bool) { return e.popup, e.popup != "" }

func editableColumns(popup string) []store.Column[rec] {
	cols := basicColumns()
	cols[1].Editable = true
	cols[1].Editor = func(ctx store.EditorContext) store.Editor {
		return fakeEditor{ctx: ctx, text: FormatValue(ctx.Value), popup: popup}
	}
	return cols
}

func TestEdit_SaveEmitsEvent(t *testing.T) {
	var events []EditEvent[rec]
	m := New(Config[rec]{
		Width:   30,
		Height:  8,
		Data:    testRows(3),
		Columns: editableColumns(""),
		OnEdit:  func(ev EditEvent[rec]) { events = append(events, ev) },
	})
	defer m.Close()

	m, _ = sendAll(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Editing() || !m.Store().Focus().Editing {
		t.Fatalf("editor not opened")
	}

	m, _ = m.Update(runes("x"))
	if got := innerLines(t, m.View())[1]; !strings.Contains(got, "*Osl") {
		t.Fatalf("edited cell must show the editor: got %q", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Editing() || m.Store().Focus().Editing {
		t.Fatalf("editor still open after save")
	}
	if len(events) != 1 {
		t.Fatalf("edit events: got %d, want %d", len(events), 1)
	}
	ev := events[0]
	if ev.Row != 0 || ev.Column != 1 || ev.Key.String() != "city" || ev.Previous != "Oslo" || ev.Value != "Oslox" {
		t.Fatalf("edit event: got %+v", ev)
	}
}

func TestEdit_EscCancels(t *testing.T) {
	events := 0
	m := New(Config[rec]{
		Width:   30,
		Height:  8,
		Data:    testRows(3),
		Columns: editableColumns(""),
		OnEdit:  func(EditEvent[rec]) { events++ },
	})
	defer m.Close()

	m, _ = sendAll(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter}, runes("z"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.Editing() {
		t.Fatalf("editor still open after esc")
	}
	if events != 0 {
		t.Fatalf("cancel must not emit edits: got %d", events)
	}
}

func TestEdit_ReadOnlyColumnDoesNotOpen(t *testing.T) {
	m := New(Config[rec]{Width: 30, Height: 8, Data: testRows(3), Columns: editableColumns("")})
	defer m.Close()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Editing() {
		t.Fatalf("editor opened on a read-only column")
	}
}

func TestEdit_PopupOverlaysView(t *testing.T) {
	m := New(Config[rec]{Width: 30, Height: 10, Data: testRows(3), Columns: editableColumns("pick")})
	defer m.Close()

	m, _ = sendAll(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	if !strings.Contains(view, "pick") {
		t.Fatalf("popup missing from view:\n%s", view)
	}
	if got := len(strings.Split(view, "\n")); got != 10 {
		t.Fatalf("view height with popup: got %d, want %d", got, 10)
	}
}

func TestEdit_ClickOnFocusedCellOpensEditor(t *testing.T) {
	m := New(Config[rec]{Width: 30, Height: 8, Data: testRows(3), Columns: editableColumns("")})
	defer m.Close()

	m, _ = sendAll(m, press(7, 2), press(7, 2))
	if !m.Editing() {
		t.Fatalf("second click on the focused cell must open the editor")
	}
}
