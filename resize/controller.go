// Package resize turns pointer drags on a column's resize handle into
// provisional and committed column widths, and sizes columns to their
// content on request.
package resize

import (
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/iw2rmb/frametable/logger"
	"github.com/iw2rmb/frametable/measure"
)

var (
	ErrBusy        = errors.New("resize: drag already in progress")
	ErrNotDragging = errors.New("resize: no drag in progress")
)

const (
	DefaultMinWidth     = 50
	DefaultHandleOffset = 4
	DefaultSettle       = 30 * time.Millisecond
)

// Target receives width updates. A store.Store satisfies it.
type Target interface {
	SetColumnWidth(index, width int)
	CommitColumnWidth(index int)
	SetColumnResizing(v bool)
}

type Options struct {
	// MinWidth floors every dragged width.
	MinWidth int
	// HandleOffset is added to the pointer position, which sits inside the
	// handle rather than on the column edge.
	HandleOffset int
	// Settle is how long an autofit surface stays attached before it is
	// measured.
	Settle time.Duration
	Logger logger.Logger
}

// DefaultOptions is a 50 unit floor, a 4 unit handle offset and a 30ms settle.
func DefaultOptions() Options {
	return Options{
		MinWidth:     DefaultMinWidth,
		HandleOffset: DefaultHandleOffset,
		Settle:       DefaultSettle,
	}
}

func normalizeOptions(o Options) Options {
	if o.MinWidth <= 0 {
		o.MinWidth = DefaultMinWidth
	}
	if o.Settle <= 0 {
		o.Settle = DefaultSettle
	}
	o.Logger = logger.OrDiscard(o.Logger)
	return o
}

// Controller is the drag state machine of one grid. It is Idle until Begin
// and returns to Idle on pointer up or Cancel.
type Controller struct {
	id       string
	opts     Options
	target   Target
	bus      *Bus
	registry *measure.Registry
	done     chan struct{}

	mu          sync.Mutex
	dragging    bool
	moved       bool
	column      int
	leftEdge    int
	initial     int
	width       int
	unsubscribe func()
	closeOnce   sync.Once
}

func New(target Target, bus *Bus, registry *measure.Registry, opts Options) *Controller {
	return &Controller{
		id:       uuid.NewString(),
		opts:     normalizeOptions(opts),
		target:   target,
		bus:      bus,
		registry: registry,
		done:     make(chan struct{}),
	}
}

func (c *Controller) Options() Options { return c.opts }

// Owns reports whether msg was issued by c.
func (c *Controller) Owns(msg AutofitMsg) bool { return msg.Source == c.id }

// Begin starts a drag of column whose left edge is at leftEdge. width is
// the column's width before the drag; Cancel restores it.
func (c *Controller) Begin(column, leftEdge, width int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging {
		return ErrBusy
	}
	c.dragging = true
	c.moved = false
	c.column, c.leftEdge, c.initial, c.width = column, leftEdge, width, width
	c.unsubscribe = c.bus.Subscribe(c.handle)
	c.opts.Logger.Debug("resize begin", "column", column, "left", leftEdge, "width", width)
	return nil
}

// Dragging reports the column being dragged.
func (c *Controller) Dragging() (column int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.column, c.dragging
}

// Width computes the provisional width for a pointer at x.
func (c *Controller) Width(x, leftEdge int) int {
	return max(c.opts.MinWidth, x+c.opts.HandleOffset-leftEdge)
}

func (c *Controller) handle(ev PointerEvent) {
	switch ev.Kind {
	case PointerMove:
		c.mu.Lock()
		if !c.dragging {
			c.mu.Unlock()
			return
		}
		col := c.column
		c.width = c.Width(ev.X, c.leftEdge)
		w := c.width
		c.moved = true
		c.mu.Unlock()

		c.target.SetColumnResizing(true)
		c.target.SetColumnWidth(col, w)
	case PointerUp:
		col, err := c.end()
		if err != nil {
			return
		}
		c.target.SetColumnResizing(false)
		c.target.CommitColumnWidth(col)
		c.opts.Logger.Debug("resize end", "column", col)
	}
}

func (c *Controller) end() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		return 0, ErrNotDragging
	}
	c.dragging = false
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	return c.column, nil
}

// Cancel abandons the current drag without committing. A column that was
// already dragged gets its width from before Begin back.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	moved, initial := c.moved, c.initial
	c.mu.Unlock()
	col, err := c.end()
	if err != nil {
		return err
	}
	if moved {
		c.target.SetColumnWidth(col, initial)
		c.target.SetColumnResizing(false)
		c.opts.Logger.Debug("resize cancelled", "column", col, "width", initial)
	}
	return nil
}

// Close cancels any drag and aborts pending autofits.
func (c *Controller) Close() {
	_ = c.Cancel()
	c.closeOnce.Do(func() { close(c.done) })
}

// AutofitMsg reports a finished autofit. OK is false when the column had no
// rendered cell or the controller was closed; the width must then be left
// unchanged. Source identifies the controller that issued it.
type AutofitMsg struct {
	Source string
	Column int
	Width  int
	OK     bool
}

// CloneFunc renders the current header and body tables for measuring.
type CloneFunc func() []measure.Table

// Autofit returns a command that measures column on its own off-screen
// surface. The surface is released on every path before the command
// returns.
func (c *Controller) Autofit(column int, clone CloneFunc) tea.Cmd {
	settle := c.opts.Settle
	log := c.opts.Logger
	return func() tea.Msg {
		s := c.registry.Attach(clone()...)
		defer s.Release()

		t := time.NewTimer(settle)
		defer t.Stop()
		select {
		case <-t.C:
		case <-c.done:
			log.Debug("autofit aborted", "column", column)
			return AutofitMsg{Source: c.id, Column: column}
		}

		w, ok, err := s.Measure(column)
		if err != nil || !ok {
			log.Debug("autofit skipped", "column", column, "err", err)
			return AutofitMsg{Source: c.id, Column: column}
		}
		log.Debug("autofit measured", "column", column, "width", w, "surface", s.ID())
		return AutofitMsg{Source: c.id, Column: column, Width: w, OK: true}
	}
}

// Apply commits a measured width to the target. It reports whether the
// width was applied.
func (c *Controller) Apply(msg AutofitMsg) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	if !msg.OK || msg.Source != c.id {
		return false
	}
	c.target.SetColumnWidth(msg.Column, msg.Width)
	c.target.CommitColumnWidth(msg.Column)
	return true
}
