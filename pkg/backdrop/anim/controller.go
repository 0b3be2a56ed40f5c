package anim

// FrameID identifies a pending frame request.
type FrameID uint64

// Scheduler is the host's per-frame signal. RequestFrame must not invoke fn
// synchronously.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Painter draws one frame at the given scroll offset.
type Painter interface {
	Paint(offset, width float64)
}

// PainterFunc adapts a function to [Painter].
type PainterFunc func(offset, width float64)

func (f PainterFunc) Paint(offset, width float64) { f(offset, width) }

// State is the controller state.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Options configures a Controller.
type Options struct {
	Speed float64 // offset increment per tick, expected positive
	Width float64 // wrap width

	// Present reports whether the drawing surface still exists. The
	// controller stops itself on the first tick where it returns false.
	// Nil means always present.
	Present func() bool

	// OnTick is called after every painted frame.
	OnTick func(offset float64)
}

// Controller owns the animation state of one visualization.
type Controller struct {
	sched   Scheduler
	painter Painter
	opts    Options

	state   State
	offset  float64
	ticks   int
	pending FrameID
	armed   bool
	gen     uint64
}

// New returns a stopped controller.
func New(s Scheduler, p Painter, opts Options) *Controller {
	return &Controller{sched: s, painter: p, opts: opts}
}

// Start arms the first frame. It is a no-op while running.
func (c *Controller) Start() {
	if c.state == Running {
		return
	}
	c.state = Running
	c.ticks = 0
	c.arm()
}

// Stop cancels the pending frame. It is safe to call repeatedly.
func (c *Controller) Stop() {
	if c.state == Stopped {
		return
	}
	c.state = Stopped
	c.gen++
	if c.armed {
		c.armed = false
		c.sched.CancelFrame(c.pending)
	}
}

func (c *Controller) arm() {
	c.gen++
	gen := c.gen
	c.pending = c.sched.RequestFrame(func() { c.tick(gen) })
	c.armed = true
}

func (c *Controller) tick(gen uint64) {
	if c.state != Running || gen != c.gen {
		return
	}
	c.armed = false

	if c.opts.Present != nil && !c.opts.Present() {
		c.Stop()
		return
	}

	c.offset += c.opts.Speed
	if c.offset < 0 || c.offset >= c.opts.Width {
		c.offset = 0
	}
	c.ticks++
	c.painter.Paint(c.offset, c.opts.Width)
	if c.opts.OnTick != nil {
		c.opts.OnTick(c.offset)
	}

	// The painter may have stopped us.
	if c.state == Running {
		c.arm()
	}
}

// SetWidth changes the wrap width. An offset outside [0, w) restarts at 0.
func (c *Controller) SetWidth(w float64) {
	c.opts.Width = w
	if c.offset < 0 || c.offset >= w {
		c.offset = 0
	}
}

// Paint draws the current offset immediately without advancing it.
func (c *Controller) Paint() {
	c.painter.Paint(c.offset, c.opts.Width)
}

func (c *Controller) State() State    { return c.state }
func (c *Controller) Running() bool   { return c.state == Running }
func (c *Controller) Offset() float64 { return c.offset }
func (c *Controller) Width() float64  { return c.opts.Width }
func (c *Controller) Ticks() int      { return c.ticks }
func (c *Controller) Pending() bool   { return c.armed }
