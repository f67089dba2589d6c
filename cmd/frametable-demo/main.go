package main

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/frametable"
	"github.com/iw2rmb/frametable/grid"
	"github.com/iw2rmb/frametable/logger"
	"github.com/iw2rmb/frametable/store"
)

const rowCount = 10_000

type trade struct {
	ID     string    `json:"id"`
	Symbol string    `json:"symbol"`
	Desk   string    `json:"desk"`
	Qty    int       `json:"qty"`
	Price  float64   `json:"price"`
	Date   time.Time `json:"date"`
}

var (
	symbols = []string{"ACME", "GLOBX", "INITECH", "UMBRL", "WAYNE", "STARK", "TYRELL"}
	desks   = []string{"Rates", "Credit", "Equities", "FX"}
)

func generate(n int) []store.DataItem[trade] {
	r := rand.New(rand.NewPCG(7, 11))
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]store.DataItem[trade], n)
	for i := range out {
		out[i] = store.DataItem[trade]{Values: trade{
			ID:     fmt.Sprintf("T%05d", i),
			Symbol: symbols[r.IntN(len(symbols))],
			Desk:   desks[r.IntN(len(desks))],
			Qty:    (r.IntN(400) + 1) * 25,
			Price:  float64(r.IntN(90_000)+1_000) / 100,
			Date:   start.AddDate(0, 0, r.IntN(365)),
		}}
	}
	return out
}

func notional(ctx store.CellContext[trade]) string {
	return grid.FormatNumber(float64(ctx.Values.Qty)*ctx.Values.Price, 2)
}

func columns() []store.Column[trade] {
	return []store.Column[trade]{
		{Key: store.Field("id"), Label: "ID", Width: 6, Sortable: true},
		{Key: store.Field("symbol"), Label: "Symbol", Width: 8, Sortable: true},
		{Key: store.Field("desk"), Label: "Desk", Width: 9, Sortable: true},
		{Key: store.Field("qty"), Label: "Qty", Width: 7, Align: store.AlignRight, Sortable: true, ItemRender: grid.NumberRenderer[trade](0)},
		{Key: store.Field("price"), Label: "Price", Width: 8, Align: store.AlignRight, Sortable: true, ItemRender: grid.NumberRenderer[trade](2)},
		{Key: store.Field("notional"), Label: "Notional", Width: 12, Align: store.AlignRight, ItemRender: notional},
		{Key: store.Field("date"), Label: "Date", Width: 10, Sortable: true},
	}
}

// hostState is shared with grid callbacks, which run outside Update.
type hostState struct {
	selected    int
	sort        []store.SortParam
	sortChanged bool
	lastCommit  string
	focus       store.Focus
}

type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }
func (systemClipboard) WriteText(s string) error  { return clipboard.WriteAll(s) }

type model struct {
	grid  grid.Model[trade]
	data  []store.DataItem[trade]
	host  *hostState
	width int
}

func newModel(log logger.Logger) model {
	host := &hostState{}
	data := generate(rowCount)
	g := grid.New(grid.Config[trade]{
		Width:             100,
		Height:            20,
		Data:              data,
		Columns:           columns(),
		FrozenColumnIndex: 1,
		RowSelection: &store.RowSelection{
			OnChange: func(ids []store.RowID, _ bool) { host.selected = len(ids) },
		},
		Sort: &store.Sort{
			OnChange: func(params []store.SortParam) {
				host.sort = params
				host.sortChanged = true
			},
		},
		OnChangeColumns: func(index, width int, cols []store.Column[trade]) {
			host.lastCommit = fmt.Sprintf("%s=%d", cols[index].Label, width)
		},
		Clipboard: systemClipboard{},
		Logger:    log,
	})
	g.Store().Watch(func(st store.State[trade]) any { return st.Focus }, func(v any) {
		host.focus = v.(store.Focus)
	})
	return model{grid: g, data: data, host: host}
}

func (m model) Init() tea.Cmd { return m.grid.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.grid = m.grid.SetSize(msg.Width, gridHeight(msg.Height))
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+q" {
			m.grid.Close()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	if m.host.sortChanged {
		m.host.sortChanged = false
		m.grid = m.grid.SetData(sortTrades(m.data, m.host.sort))
	}
	return m, cmd
}

func (m model) View() string {
	return strings.Join([]string{
		fmt.Sprintf("frametable %s | drag a header edge to resize, double click to autofit | ctrl+q quits", frametable.VersionTag()),
		m.grid.View(),
		m.status(),
	}, "\n")
}

func (m model) status() string {
	vs := m.grid.ViewportState()
	parts := []string{
		fmt.Sprintf("rows %d-%d of %d", vs.TopRow+1, vs.TopRow+vs.VisibleRows, vs.TotalRows),
		fmt.Sprintf("scroll %d,%d", vs.ScrollTop, vs.ScrollLeft),
		fmt.Sprintf("focus %s", m.host.focus),
		fmt.Sprintf("selected %d", m.host.selected),
	}
	if len(m.host.sort) > 0 {
		keys := make([]string, len(m.host.sort))
		for i, p := range m.host.sort {
			keys[i] = p.Key.String() + " " + p.Direction.String()
		}
		parts = append(parts, "sort "+strings.Join(keys, ", "))
	}
	if vs.Resizing {
		parts = append(parts, "resizing")
	} else if m.host.lastCommit != "" {
		parts = append(parts, "width "+m.host.lastCommit)
	}
	return strings.Join(parts, " | ")
}

func gridHeight(total int) int {
	return max(total-2, 0)
}

// sortTrades returns a sorted copy; later params break ties of earlier ones.
func sortTrades(data []store.DataItem[trade], params []store.SortParam) []store.DataItem[trade] {
	out := slices.Clone(data)
	if len(params) == 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b store.DataItem[trade]) int {
		for _, p := range params {
			c := compareField(a.Values, b.Values, p.Key.String())
			if p.Direction == store.SortDesc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}

func compareField(a, b trade, field string) int {
	switch field {
	case "id":
		return cmp.Compare(a.ID, b.ID)
	case "symbol":
		return cmp.Compare(a.Symbol, b.Symbol)
	case "desk":
		return cmp.Compare(a.Desk, b.Desk)
	case "qty":
		return cmp.Compare(a.Qty, b.Qty)
	case "price":
		return cmp.Compare(a.Price, b.Price)
	case "date":
		return a.Date.Compare(b.Date)
	default:
		return 0
	}
}

func newLogger() (logger.Logger, func(), error) {
	path := os.Getenv("FRAMETABLE_LOG")
	if path == "" {
		return logger.Discard, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return logger.New(logger.Options{Buffer: f, Level: logger.DebugLevel}), func() { _ = f.Close() }, nil
}

func main() {
	log, closeLog, err := newLogger()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	p := tea.NewProgram(newModel(log), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		closeLog()
		os.Exit(1)
	}
}
