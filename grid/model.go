package grid

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/frametable/measure"
	"github.com/iw2rmb/frametable/resize"
	"github.com/iw2rmb/frametable/store"
)

// Model is a Bubble Tea component rendering a store.Store as a table.
type Model[T any] struct {
	cfg Config[T]
	st  *store.Store[T]

	bus      *resize.Bus
	registry *measure.Registry
	resizer  *resize.Controller

	focused  bool
	viewport viewport.Model

	edit      *editState[T]
	lastPress handlePress
	cache     *renderCache

	unsubscribe []func()
}

type handlePress struct {
	column int
	at     time.Time
}

type renderCache struct {
	version uint64
	focused bool
	content string
	valid   bool
}

func New[T any](cfg Config[T]) Model[T] {
	cfg = normalizeConfig(cfg)
	st := store.New(store.Options[T]{
		Width:             cfg.Width,
		Height:            cfg.Height,
		HeaderHeight:      cfg.HeaderHeight,
		Separator:         1,
		Data:              cfg.Data,
		Columns:           cfg.Columns,
		ColumnGroups:      cfg.ColumnGroups,
		OnChangeColumns:   cfg.OnChangeColumns,
		FrozenColumnIndex: cfg.FrozenColumnIndex,
		ItemHeight:        cfg.ItemHeight,
		ItemPadding:       cfg.ItemPadding,
		ScrollTop:         cfg.ScrollTop,
		ScrollLeft:        cfg.ScrollLeft,
		RowKey:            cfg.RowKey,
		RowSelection:      cfg.RowSelection,
		Sort:              cfg.Sort,
		Logger:            cfg.Logger,
	})
	bus := resize.NewBus()
	registry := measure.NewRegistry()
	m := Model[T]{
		cfg:      cfg,
		st:       st,
		bus:      bus,
		registry: registry,
		resizer: resize.New(st, bus, registry, resize.Options{
			MinWidth:     cfg.ResizeMinWidth,
			HandleOffset: cfg.ResizeHandleOffset,
			Settle:       cfg.AutofitSettle,
			Logger:       cfg.Logger.With("component", "resize"),
		}),
		focused:  true,
		viewport: viewport.New(cfg.Width, cfg.Height),
		cache:    &renderCache{},
	}
	m.viewport.Style = cfg.Style.Frame
	if cfg.OnFocus != nil {
		onFocus := cfg.OnFocus
		m.unsubscribe = append(m.unsubscribe, st.Subscribe(store.SliceFocus, func(store.Change) {
			onFocus(focusOf(st.Focus()))
		}))
	}
	return m
}

// Store exposes the grid's state. Hosts may call its actions directly.
func (m Model[T]) Store() *store.Store[T] { return m.st }

// Registry is the measurement registry used by autofit.
func (m Model[T]) Registry() *measure.Registry { return m.registry }

func (m Model[T]) Init() tea.Cmd { return nil }

func (m Model[T]) SetSize(width, height int) Model[T] {
	width = max(width, 0)
	height = max(height, 0)
	m.viewport.Width = width
	m.viewport.Height = height
	m.st.SetSize(width, height)
	return m
}

func (m Model[T]) Focus() Model[T] {
	m.focused = true
	return m
}

func (m Model[T]) Blur() Model[T] {
	m.focused = false
	return m
}

func (m Model[T]) Focused() bool { return m.focused }

func (m Model[T]) SetData(items []store.DataItem[T]) Model[T] {
	m.st.SetData(items)
	return m
}

func (m Model[T]) SetColumns(cols []store.Column[T]) Model[T] {
	m.st.SetColumns(cols)
	return m
}

// Close cancels drags and pending autofits and detaches every listener.
// A closed grid ignores late autofit results.
func (m Model[T]) Close() {
	for _, fn := range m.unsubscribe {
		fn()
	}
	m.resizer.Close()
	m.st.Close()
}

func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case resize.AutofitMsg:
		if !m.resizer.Owns(msg) {
			return m, nil
		}
		if m.resizer.Apply(msg) {
			m.cfg.Logger.Debug("autofit applied", "column", msg.Column, "width", msg.Width)
		}
		return m, nil
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	if m.edit != nil {
		return m.updateEditor(msg)
	}
	return m, nil
}

func (m Model[T]) View() string {
	base := m.viewport
	base.SetContent(m.content())
	view := base.View()
	if m.edit != nil {
		view = m.overlayPopup(view)
	}
	return view
}

// content renders the inner grid, reusing the last rendering while the
// store and focus are unchanged.
func (m Model[T]) content() string {
	if m.edit == nil {
		v := m.st.Version()
		if m.cache.valid && m.cache.version == v && m.cache.focused == m.focused {
			return m.cache.content
		}
		s := m.renderContent(m.st.Snapshot())
		*m.cache = renderCache{version: v, focused: m.focused, content: s, valid: true}
		return s
	}
	return m.renderContent(m.st.Snapshot())
}
