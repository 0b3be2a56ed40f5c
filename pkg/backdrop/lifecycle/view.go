package lifecycle

import (
	"maps"
	"slices"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/render"
)

// Surface is a drawing surface that can be resized.
type Surface interface {
	render.Canvas
	Resize(width, height float64)
}

// View is the host element the visualization is mounted on.
type View interface {
	// Surface returns the drawing surface, or false when it is gone.
	Surface() (Surface, bool)
	// ContentBox returns the current layout size.
	ContentBox() geometry.Bounds
	// ObserveResize registers fn for layout changes.
	ObserveResize(fn func(geometry.Bounds)) Observer
}

// Observer is a registered resize subscription.
type Observer interface {
	Disconnect()
}

// Viewport is a [View] whose size is set by the host.
type Viewport struct {
	surface   Surface
	box       geometry.Bounds
	detached  bool
	next      int
	observers map[int]func(geometry.Bounds)
}

// NewViewport returns a viewport drawing on s. A nil s models a view without
// a drawing surface.
func NewViewport(s Surface, box geometry.Bounds) *Viewport {
	return &Viewport{
		surface:   s,
		box:       box,
		observers: make(map[int]func(geometry.Bounds)),
	}
}

func (v *Viewport) Surface() (Surface, bool) {
	if v.surface == nil || v.detached {
		return nil, false
	}
	return v.surface, true
}

func (v *Viewport) ContentBox() geometry.Bounds { return v.box }

func (v *Viewport) ObserveResize(fn func(geometry.Bounds)) Observer {
	v.next++
	v.observers[v.next] = fn
	return &viewportObserver{v: v, id: v.next}
}

// SetContentBox changes the layout size and notifies observers in
// registration order. Unchanged sizes notify nobody.
func (v *Viewport) SetContentBox(b geometry.Bounds) {
	if b == v.box {
		return
	}
	v.box = b
	for _, id := range slices.Sorted(maps.Keys(v.observers)) {
		if fn, ok := v.observers[id]; ok {
			fn(b)
		}
	}
}

// Detach removes the drawing surface from the view.
func (v *Viewport) Detach() { v.detached = true }

// Observers returns the number of connected resize observers.
func (v *Viewport) Observers() int { return len(v.observers) }

type viewportObserver struct {
	v  *Viewport
	id int
}

func (o *viewportObserver) Disconnect() { delete(o.v.observers, o.id) }
