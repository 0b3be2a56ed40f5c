package lifecycle

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/anim"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/render/sink"
	"github.com/matzehuels/fightmetrics/pkg/config"
)

type countingHooks struct {
	mounts, unmounts, generates, ticks int
	lastTicks                          int
}

func (h *countingHooks) OnMount(string) { h.mounts++ }

func (h *countingHooks) OnUnmount(_ string, ticks int) {
	h.unmounts++
	h.lastTicks = ticks
}

func (h *countingHooks) OnGenerate(string, int, int, int, time.Duration) { h.generates++ }

func (h *countingHooks) OnTick(string, float64) { h.ticks++ }

func newManager(t *testing.T, sched anim.Scheduler, hooks *countingHooks) *Manager {
	t.Helper()
	cfg := config.Default()
	cfg.Count = 30
	cfg.MinSeparation = 60
	opts := Options{
		Config:    cfg,
		Rand:      geometry.NewRand(7),
		Scheduler: sched,
		Logger:    log.New(io.Discard),
	}
	if hooks != nil {
		opts.Hooks = hooks
	}
	return New(opts)
}

func assertInBounds(t *testing.T, m *Manager, b geometry.Bounds) {
	t.Helper()
	g := m.Graph()
	if len(g.Nodes) != 30 {
		t.Fatalf("got %d nodes, want 30", len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if !b.Contains(n.Position) {
			t.Fatalf("node %d at %+v outside %+v", n.Index, n.Position, b)
		}
	}
}

func TestMountResizeUnmount(t *testing.T) {
	sched := &anim.ManualScheduler{}
	hooks := &countingHooks{}
	m := newManager(t, sched, hooks)
	rec := &sink.Recorder{}
	view := NewViewport(rec, geometry.Bounds{Width: 800, Height: 400})

	m.Mount(view)
	if !m.Mounted() || !m.Running() {
		t.Fatalf("Mounted=%v Running=%v after Mount", m.Mounted(), m.Running())
	}
	if rec.Width != 800 || rec.Height != 400 {
		t.Errorf("surface sized %vx%v, want 800x400", rec.Width, rec.Height)
	}
	assertInBounds(t, m, geometry.Bounds{Width: 800, Height: 400})
	if sched.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", sched.Pending())
	}

	sched.Run(3)
	if m.Offset() != 1.5 {
		t.Errorf("Offset() = %v, want 1.5", m.Offset())
	}
	// Three copies per frame: 30 captions each.
	if got := len(filter(rec.Since(), sink.OpText)); got != 90 {
		t.Errorf("captions in frame = %d, want 90", got)
	}

	before := m.Graph()
	view.SetContentBox(geometry.Bounds{Width: 400, Height: 400})
	if rec.Width != 400 || rec.Height != 400 {
		t.Errorf("surface sized %vx%v, want 400x400", rec.Width, rec.Height)
	}
	assertInBounds(t, m, geometry.Bounds{Width: 400, Height: 400})
	after := m.Graph()
	same := 0
	for i := range after.Nodes {
		if after.Nodes[i].Position == before.Nodes[i].Position {
			same++
		}
	}
	if same != 0 {
		t.Errorf("%d positions survived the resize, want 0", same)
	}
	if sched.Pending() != 1 {
		t.Errorf("Pending() = %d after resize, want 1", sched.Pending())
	}

	m.Unmount()
	m.Unmount()
	if m.Mounted() || m.Running() {
		t.Error("still mounted after Unmount")
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d after Unmount, want 0", sched.Pending())
	}
	if view.Observers() != 0 {
		t.Errorf("Observers() = %d after Unmount, want 0", view.Observers())
	}
	if hooks.mounts != 1 || hooks.unmounts != 1 || hooks.generates != 2 || hooks.ticks != 3 {
		t.Errorf("hooks = %+v", hooks)
	}
	if hooks.lastTicks != 3 {
		t.Errorf("OnUnmount ticks = %d, want 3", hooks.lastTicks)
	}
}

func filter(ops []sink.Op, kind sink.OpKind) []sink.Op {
	var out []sink.Op
	for _, op := range ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func TestMountIsIdempotent(t *testing.T) {
	sched := &anim.ManualScheduler{}
	m := newManager(t, sched, nil)
	view := NewViewport(&sink.Recorder{}, geometry.Bounds{Width: 800, Height: 400})

	m.Mount(view)
	id := m.ID()
	m.Mount(view)
	if sched.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", sched.Pending())
	}
	if view.Observers() != 1 {
		t.Errorf("Observers() = %d, want 1", view.Observers())
	}
	if m.ID() != id || id == "" {
		t.Errorf("ID changed or empty: %q -> %q", id, m.ID())
	}
}

func TestMountWithoutSurface(t *testing.T) {
	sched := &anim.ManualScheduler{}
	m := newManager(t, sched, nil)
	view := NewViewport(nil, geometry.Bounds{Width: 800, Height: 400})

	m.Mount(view)
	if m.Mounted() || m.Running() {
		t.Error("mounted without a surface")
	}
	if sched.Pending() != 0 || view.Observers() != 0 {
		t.Errorf("Pending=%d Observers=%d, want 0", sched.Pending(), view.Observers())
	}
	m.Unmount()
}

func TestUnmountBeforeMount(t *testing.T) {
	m := newManager(t, &anim.ManualScheduler{}, nil)
	m.Unmount()
	if m.Offset() != 0 || m.Ticks() != 0 {
		t.Error("unmounted manager reports animation state")
	}
}

func TestSurfaceDisappears(t *testing.T) {
	sched := &anim.ManualScheduler{}
	m := newManager(t, sched, nil)
	rec := &sink.Recorder{}
	view := NewViewport(rec, geometry.Bounds{Width: 800, Height: 400})

	m.Mount(view)
	sched.Step()
	view.Detach()
	sched.Step()

	if m.Running() {
		t.Error("still running after the surface disappeared")
	}
	if !m.Mounted() {
		t.Error("surface loss should not release the mount")
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", sched.Pending())
	}
	if m.Offset() != 0.5 {
		t.Errorf("Offset() = %v, want 0.5", m.Offset())
	}
	if view.Observers() != 0 {
		t.Errorf("Observers() = %d after surface loss, want 0", view.Observers())
	}

	before := m.Graph()
	view.SetContentBox(geometry.Bounds{Width: 200, Height: 200})
	if rec.Width != 800 || rec.Height != 400 {
		t.Errorf("detached surface resized to %vx%v", rec.Width, rec.Height)
	}
	if after := m.Graph(); after.Nodes[0].Position != before.Nodes[0].Position {
		t.Error("graph regenerated after surface loss")
	}

	m.Unmount()
	if m.Mounted() {
		t.Error("still mounted after Unmount")
	}
}

// leakyView keeps its resize callback after Disconnect, like a host that
// delivers a notification already in flight.
type leakyView struct {
	*Viewport
	fn func(geometry.Bounds)
}

func (v *leakyView) ObserveResize(fn func(geometry.Bounds)) Observer {
	v.fn = fn
	return v.Viewport.ObserveResize(fn)
}

func TestResizeAfterUnmountIgnored(t *testing.T) {
	sched := &anim.ManualScheduler{}
	m := newManager(t, sched, nil)
	rec := &sink.Recorder{}
	view := &leakyView{Viewport: NewViewport(rec, geometry.Bounds{Width: 800, Height: 400})}

	m.Mount(view)
	before := m.Graph()
	m.Unmount()

	view.fn(geometry.Bounds{Width: 200, Height: 200})
	if rec.Width != 800 {
		t.Errorf("surface resized to %v after Unmount", rec.Width)
	}
	if m.Graph().Nodes[0].Position != before.Nodes[0].Position {
		t.Error("graph regenerated after Unmount")
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", sched.Pending())
	}
}

func TestRemountRestartsAnimation(t *testing.T) {
	sched := &anim.ManualScheduler{}
	m := newManager(t, sched, nil)
	view := NewViewport(&sink.Recorder{}, geometry.Bounds{Width: 800, Height: 400})

	m.Mount(view)
	sched.Run(4)
	m.Unmount()
	m.Mount(view)
	if !m.Running() || sched.Pending() != 1 {
		t.Fatalf("Running=%v Pending=%d after remount", m.Running(), sched.Pending())
	}
	if m.Ticks() != 0 {
		t.Errorf("Ticks() = %d, want 0 after remount", m.Ticks())
	}
}

func TestPaintDrawsCurrentOffset(t *testing.T) {
	sched := &anim.ManualScheduler{}
	m := newManager(t, sched, nil)
	rec := &sink.Recorder{}
	m.Mount(NewViewport(rec, geometry.Bounds{Width: 800, Height: 400}))

	m.Paint()
	if rec.Count(sink.OpClear) != 1 {
		t.Errorf("clears = %d, want 1", rec.Count(sink.OpClear))
	}
	if m.Ticks() != 0 {
		t.Error("Paint advanced the animation")
	}
}

func TestResizeAfterSurfaceLossIgnored(t *testing.T) {
	sched := &anim.ManualScheduler{}
	m := newManager(t, sched, nil)
	rec := &sink.Recorder{}
	view := &leakyView{Viewport: NewViewport(rec, geometry.Bounds{Width: 800, Height: 400})}

	m.Mount(view)
	before := m.Graph()
	view.Detach()
	sched.Step()

	view.fn(geometry.Bounds{Width: 200, Height: 200})
	if rec.Width != 800 {
		t.Errorf("surface resized to %v after it went away", rec.Width)
	}
	if m.Graph().Nodes[0].Position != before.Nodes[0].Position {
		t.Error("graph regenerated after surface loss")
	}
}
