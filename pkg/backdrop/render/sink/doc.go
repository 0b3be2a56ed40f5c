// Package sink provides drawing surfaces for the backdrop renderer.
//
// Every surface implements [render.Canvas] and a Resize method, so any of
// them can be handed to the lifecycle manager as the view's surface:
//
//   - [SVG] buffers elements and emits a standalone SVG document.
//   - [PNG] rasterizes with github.com/fogleman/gg.
//   - [Cells] maps pixels onto a terminal character grid styled with lipgloss.
//   - [Recorder] keeps a log of every call, for tests.
//
// Surfaces are not safe for concurrent use.
//
// [render.Canvas]: github.com/matzehuels/fightmetrics/pkg/backdrop/render.Canvas
package sink
