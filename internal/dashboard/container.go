package dashboard

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

// DefaultDebounce coalesces bursts of resize events.
const DefaultDebounce = 100 * time.Millisecond

// RenderFunc receives every completed render pass, in order. err is ErrNoData
// when the container holds no incidents. It runs with the container locked
// and must not call back into it.
type RenderFunc func(Board, error)

// Container owns the board of one view. Data changes redraw immediately;
// resizes are debounced so a burst of them triggers a single full redraw at
// the final width.
type Container struct {
	clock    clockwork.Clock
	debounce time.Duration
	onRender RenderFunc

	mu      sync.Mutex
	kind    Kind
	title   string
	data    []domain.Incident
	width   float64
	pending clockwork.Timer
	seq     uint64
	board   Board
	err     error
	passes  int
	stopped bool
}

// NewContainer creates a container at the given viewport width. It does not
// render until SetData is called.
func NewContainer(width float64, debounce time.Duration, clock clockwork.Clock, onRender RenderFunc) *Container {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Container{
		clock:    clock,
		debounce: debounce,
		onRender: onRender,
		width:    width,
		err:      ErrNoData,
	}
}

// SetData replaces the view's incidents and redraws at the current width.
func (c *Container) SetData(kind Kind, title string, data []domain.Incident) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.kind, c.title, c.data = kind, title, data
	c.cancelPendingLocked()
	c.redrawLocked()
}

// Resize records a new viewport width and schedules a redraw after the
// debounce window. Earlier pending redraws are cancelled.
func (c *Container) Resize(width float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.width = width
	c.cancelPendingLocked()
	seq := c.seq
	c.pending = c.clock.AfterFunc(c.debounce, func() { c.fire(seq) })
}

// fire runs a debounced redraw unless a later resize or data change has
// superseded it.
func (c *Container) fire(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || seq != c.seq {
		return
	}
	c.pending = nil
	c.redrawLocked()
}

func (c *Container) redrawLocked() {
	c.board, c.err = Compose(c.data, c.width, c.kind, c.title)
	c.passes++
	if c.onRender != nil {
		c.onRender(c.board, c.err)
	}
}

func (c *Container) cancelPendingLocked() {
	c.seq++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// Board returns the most recent render pass.
func (c *Container) Board() (Board, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board, c.err
}

// Width returns the latest reported viewport width.
func (c *Container) Width() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

// Passes returns the number of completed render passes.
func (c *Container) Passes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passes
}

// Stop cancels any pending redraw. Later calls are ignored.
func (c *Container) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.cancelPendingLocked()
}

