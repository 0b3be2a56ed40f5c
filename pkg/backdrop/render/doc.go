// Package render draws a backdrop graph onto a [Canvas].
//
// # Overview
//
// The renderer is pure with respect to the graph: it reads nodes and edges
// and issues drawing calls, so the same graph can be painted several times
// per frame at different horizontal offsets. [RenderWrapped] uses this to
// paint three copies (offset, offset-width, offset+width) which makes a
// finite-width graph scroll without a visible seam.
//
// # Canvas
//
// Concrete surfaces live in the [sink] subpackage: SVG documents, PNG
// rasters, terminal cell grids and a call recorder for tests.
//
// [sink]: github.com/matzehuels/fightmetrics/pkg/backdrop/render/sink
package render
