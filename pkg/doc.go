// Package pkg provides the libraries behind the FightMetrics animated
// background.
//
// # Overview
//
// The background is a procedurally generated node/edge graph labelled with
// fight metrics, scrolled horizontally with seamless wrap-around. The pkg
// directory is organized into two areas:
//
//  1. [backdrop] - The visualization engine (sampling, generation,
//     rendering, animation, lifecycle)
//  2. Infrastructure - [config], [errors], [observability] and [buildinfo]
//
// # Architecture
//
// The data flow of one instance:
//
//	View (drawing surface + content box)
//	         ↓
//	    [backdrop/geometry] (rejection-sampled node positions)
//	         ↓
//	    [backdrop/graph] (labels, values, shapes, random edges)
//	         ↓
//	    [backdrop/anim] (one frame per tick, wrap at the viewport width)
//	         ↓
//	    [backdrop/render] → SVG / PNG / terminal cells
//
// [backdrop/lifecycle] owns the whole chain: it mounts on a view, regenerates
// on resize and tears everything down on unmount.
//
// # Quick Start
//
// Export one frame headlessly:
//
//	cfg := config.Default()
//	sched := &anim.ManualScheduler{}
//	svg := sink.NewSVG(cfg.Width, cfg.Height)
//
//	m := lifecycle.New(lifecycle.Options{Config: cfg, Scheduler: sched})
//	m.Mount(lifecycle.NewViewport(svg, cfg.Bounds()))
//	sched.Run(60) // advance one second at 60 fps
//	os.WriteFile("frame.svg", svg.Bytes(), 0o644)
//	m.Unmount()
//
// [backdrop]: https://pkg.go.dev/github.com/matzehuels/fightmetrics/pkg/backdrop
// [backdrop/geometry]: https://pkg.go.dev/github.com/matzehuels/fightmetrics/pkg/backdrop/geometry
// [backdrop/graph]: https://pkg.go.dev/github.com/matzehuels/fightmetrics/pkg/backdrop/graph
// [backdrop/anim]: https://pkg.go.dev/github.com/matzehuels/fightmetrics/pkg/backdrop/anim
// [backdrop/render]: https://pkg.go.dev/github.com/matzehuels/fightmetrics/pkg/backdrop/render
// [backdrop/lifecycle]: https://pkg.go.dev/github.com/matzehuels/fightmetrics/pkg/backdrop/lifecycle
// [config]: https://pkg.go.dev/github.com/matzehuels/fightmetrics/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/fightmetrics/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/fightmetrics/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/fightmetrics/pkg/buildinfo
package pkg
