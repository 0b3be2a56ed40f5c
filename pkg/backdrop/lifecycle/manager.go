package lifecycle

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/anim"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/graph"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/render"
	"github.com/matzehuels/fightmetrics/pkg/config"
	"github.com/matzehuels/fightmetrics/pkg/observability"
)

// Options configures a Manager.
type Options struct {
	Config    config.Config
	Rand      geometry.Rand  // nil seeds from Config
	Scheduler anim.Scheduler // required
	Logger    *log.Logger    // nil uses log.Default()
	Hooks     observability.BackdropHooks
}

// resources is everything Mount acquires and Unmount releases.
type resources struct {
	view     View
	surface  Surface
	observer Observer
	ctrl     *anim.Controller
	detached bool
}

// Manager mounts and unmounts one visualization instance.
type Manager struct {
	id     string
	opts   Options
	gen    *graph.Generator
	logger *log.Logger
	hooks  observability.BackdropHooks

	graph graph.Graph
	stats graph.Stats
	res   *resources
}

// New returns an unmounted manager.
func New(opts Options) *Manager {
	if opts.Rand == nil {
		opts.Rand = opts.Config.Rand()
	}
	m := &Manager{
		id:     uuid.NewString(),
		opts:   opts,
		gen:    opts.Config.Generator(opts.Rand),
		logger: opts.Logger,
		hooks:  opts.Hooks,
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	if m.hooks == nil {
		m.hooks = observability.Backdrop()
	}
	return m
}

// Mount attaches the visualization to v and starts animating. It is a no-op
// while mounted, and when v has no drawing surface.
func (m *Manager) Mount(v View) {
	if m.res != nil {
		return
	}
	s, ok := v.Surface()
	if !ok {
		m.logger.Debug("no drawing surface, skipping mount", "id", m.id)
		return
	}

	res := &resources{view: v, surface: s}
	style := m.opts.Config.Style()
	paint := anim.PainterFunc(func(offset, width float64) {
		render.RenderWrapped(res.surface, m.graph, offset, width, style)
	})
	res.ctrl = anim.New(m.opts.Scheduler, paint, anim.Options{
		Speed:   m.opts.Config.Speed,
		Width:   v.ContentBox().Width,
		Present: func() bool { return m.present(res) },
		OnTick:  func(offset float64) { m.hooks.OnTick(m.id, offset) },
	})
	m.res = res

	res.observer = v.ObserveResize(func(b geometry.Bounds) { m.onResize(res, b) })
	m.resize(res, v.ContentBox())
	res.ctrl.Start()

	m.hooks.OnMount(m.id)
	m.logger.Debug("mounted", "id", m.id)
}

// Unmount stops the animation and releases the view. It is safe to call
// repeatedly.
func (m *Manager) Unmount() {
	res := m.res
	if res == nil {
		return
	}
	m.res = nil
	res.ctrl.Stop()
	res.observer.Disconnect()

	m.hooks.OnUnmount(m.id, res.ctrl.Ticks())
	m.logger.Debug("unmounted", "id", m.id, "ticks", res.ctrl.Ticks())
}

func (m *Manager) present(res *resources) bool {
	if _, ok := res.view.Surface(); ok {
		return true
	}
	res.detached = true
	res.observer.Disconnect()
	m.logger.Debug("drawing surface gone, stopping", "id", m.id)
	return false
}

func (m *Manager) onResize(res *resources, b geometry.Bounds) {
	// A callback delivered after Unmount, after the surface went away, or
	// for an earlier mount.
	if m.res != res || res.detached {
		return
	}
	m.resize(res, b)
}

func (m *Manager) resize(res *resources, b geometry.Bounds) {
	res.surface.Resize(b.Width, b.Height)

	start := time.Now()
	g, stats := m.gen.Generate(b, m.opts.Config.Count)
	m.graph, m.stats = g, stats
	res.ctrl.SetWidth(b.Width)

	m.hooks.OnGenerate(m.id, stats.Nodes, stats.Edges, stats.Forced, time.Since(start))
	m.logger.Debug("generated graph",
		"id", m.id,
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"forced", stats.Forced,
		"width", b.Width,
		"height", b.Height,
	)
}

// Paint redraws the current frame without advancing the animation.
func (m *Manager) Paint() {
	if m.res != nil {
		m.res.ctrl.Paint()
	}
}

// ID identifies the instance in logs and metrics.
func (m *Manager) ID() string { return m.id }

// Mounted reports whether Mount acquired a surface and Unmount has not run.
func (m *Manager) Mounted() bool { return m.res != nil }

// Running reports whether frames are being scheduled.
func (m *Manager) Running() bool { return m.res != nil && m.res.ctrl.Running() }

// Offset returns the current scroll offset, or 0 when unmounted.
func (m *Manager) Offset() float64 {
	if m.res == nil {
		return 0
	}
	return m.res.ctrl.Offset()
}

// Ticks returns the frames painted since the last mount.
func (m *Manager) Ticks() int {
	if m.res == nil {
		return 0
	}
	return m.res.ctrl.Ticks()
}

// Graph returns a copy of the current graph.
func (m *Manager) Graph() graph.Graph { return m.graph.Clone() }

// Stats describes the most recent generation pass.
func (m *Manager) Stats() graph.Stats { return m.stats }
