package grid

import (
	"time"

	"github.com/iw2rmb/frametable/geometry"
	"github.com/iw2rmb/frametable/logger"
	"github.com/iw2rmb/frametable/store"
)

const (
	defaultResizeMinWidth      = 3
	defaultAutofitSettle       = 30 * time.Millisecond
	defaultDoubleClickInterval = 400 * time.Millisecond
)

// Config configures a grid Model. Sizes are terminal cells and lines.
type Config[T any] struct {
	Width, Height int

	// HeaderHeight is the height of one header row. Defaults to 1.
	HeaderHeight int

	Data         []store.DataItem[T]
	Columns      []store.Column[T]
	ColumnGroups []geometry.GroupDecl

	// OnChangeColumns receives the committed width at the end of every
	// resize gesture.
	OnChangeColumns func(index, width int, columns []store.Column[T])

	FrozenColumnIndex int

	// ItemHeight defaults to 1. ItemPadding adds blank lines above and below
	// each row.
	ItemHeight  int
	ItemPadding int

	ScrollTop  int
	ScrollLeft int

	// RowKey selects the unique row field. Defaults to store.Field("id").
	RowKey store.Key

	RowSelection *store.RowSelection
	Sort         *store.Sort

	OnEdit  func(ev EditEvent[T])
	OnFocus func(ev FocusEvent)

	// ResizeMinWidth floors dragged widths. Defaults to 3.
	ResizeMinWidth int
	// ResizeHandleOffset is added to the pointer column while dragging.
	ResizeHandleOffset int
	// AutofitSettle is how long the measuring surface stays attached.
	AutofitSettle time.Duration
	// DoubleClickInterval is the window for a second press on the same
	// handle to count as a double click.
	DoubleClickInterval time.Duration

	Style     Style
	KeyMap    KeyMap
	Clipboard Clipboard
	Logger    logger.Logger
}

func normalizeConfig[T any](cfg Config[T]) Config[T] {
	cfg.Width = max(cfg.Width, 0)
	cfg.Height = max(cfg.Height, 0)
	if cfg.HeaderHeight <= 0 {
		cfg.HeaderHeight = 1
	}
	if cfg.ItemHeight <= 0 {
		cfg.ItemHeight = 1
	}
	cfg.ItemPadding = max(cfg.ItemPadding, 0)
	if len(cfg.RowKey) == 0 {
		cfg.RowKey = store.Field("id")
	}
	if cfg.ResizeMinWidth <= 0 {
		cfg.ResizeMinWidth = defaultResizeMinWidth
	}
	if cfg.AutofitSettle <= 0 {
		cfg.AutofitSettle = defaultAutofitSettle
	}
	if cfg.DoubleClickInterval <= 0 {
		cfg.DoubleClickInterval = defaultDoubleClickInterval
	}
	if cfg.Style.Separator == "" {
		cfg.Style = DefaultStyle()
	}
	if len(cfg.KeyMap.Up.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	cfg.Logger = logger.OrDiscard(cfg.Logger)
	return cfg
}
