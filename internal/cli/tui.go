package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/anim"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/lifecycle"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/render/sink"
	"github.com/matzehuels/fightmetrics/pkg/config"
)

func (c *CLI) animateCommand() *cobra.Command {
	var flags configFlags
	var fps int

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Play the scrolling background in the terminal",
		Long: `Animate mounts one instance on the terminal. Resizing the window
regenerates the graph; q, esc or ctrl+c quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			m := newAnimateModel(cfg, time.Second/time.Duration(max(fps, 1)), loggerFromContext(cmd.Context()))
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if am, ok := final.(*animateModel); ok {
				am.mgr.Unmount()
			}
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&fps, "fps", defaultFPS, "frames per second")
	return cmd
}

// =============================================================================
// teaScheduler - frame requests as bubbletea commands
// =============================================================================

// frameMsg fires a pending frame request.
type frameMsg struct{ id anim.FrameID }

// teaScheduler turns frame requests into tea.Tick commands. Callbacks run
// inside Update, so the visualization only ever sees the program goroutine.
type teaScheduler struct {
	interval time.Duration
	next     anim.FrameID
	pending  map[anim.FrameID]func()
	cmds     []tea.Cmd
}

func newTeaScheduler(interval time.Duration) *teaScheduler {
	return &teaScheduler{interval: interval, pending: make(map[anim.FrameID]func())}
}

func (s *teaScheduler) RequestFrame(fn func()) anim.FrameID {
	s.next++
	id := s.next
	s.pending[id] = fn
	s.cmds = append(s.cmds, tea.Tick(s.interval, func(time.Time) tea.Msg { return frameMsg{id: id} }))
	return id
}

func (s *teaScheduler) CancelFrame(id anim.FrameID) { delete(s.pending, id) }

// fire runs the callback for id unless it was cancelled.
func (s *teaScheduler) fire(id anim.FrameID) {
	if fn, ok := s.pending[id]; ok {
		delete(s.pending, id)
		fn()
	}
}

// drain returns the commands queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

// =============================================================================
// animateModel - the terminal host
// =============================================================================

type animateModel struct {
	mgr   *lifecycle.Manager
	view  *lifecycle.Viewport
	cells *sink.Cells
	sched *teaScheduler
}

func newAnimateModel(cfg config.Config, interval time.Duration, logger *log.Logger) *animateModel {
	sched := newTeaScheduler(interval)
	cells := sink.NewCells(0, 0)
	m := &animateModel{
		cells: cells,
		sched: sched,
		view:  lifecycle.NewViewport(cells, geometry.Bounds{}),
	}
	m.mgr = lifecycle.New(lifecycle.Options{Config: cfg, Scheduler: sched, Logger: logger})
	return m
}

func (m *animateModel) Init() tea.Cmd { return nil }

func (m *animateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.mgr.Unmount()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// One row is reserved for the status line.
		b := geometry.Bounds{
			Width:  float64(msg.Width) * m.cells.CellWidth,
			Height: float64(max(msg.Height-1, 0)) * m.cells.CellHeight,
		}
		m.view.SetContentBox(b)
		// The first size mounts; later ones reach the manager as resizes.
		m.mgr.Mount(m.view)
		m.mgr.Paint()
	case frameMsg:
		m.sched.fire(msg.id)
	}
	return m, m.sched.drain()
}

func (m *animateModel) View() string {
	if !m.mgr.Mounted() {
		return StyleDim.Render("waiting for terminal size…")
	}
	var b strings.Builder
	b.WriteString(m.cells.String())
	b.WriteByte('\n')
	stats := m.mgr.Stats()
	b.WriteString(StyleTitle.Render("FightMetrics"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d nodes · %d edges · offset %.1f · q quit", stats.Nodes, stats.Edges, m.mgr.Offset())))
	return b.String()
}
