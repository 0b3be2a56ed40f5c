// Package nodelink exports a backdrop graph as a conventional node-link
// diagram.
//
// [ToDOT] produces Graphviz DOT source; node shapes map to the Graphviz
// shapes circle, box and triangle, and node labels carry the caption.
// [RenderSVG] runs the DOT through github.com/goccy/go-graphviz in process,
// so no external Graphviz install is needed:
//
//	dot := nodelink.ToDOT(g)
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Graphviz lays the nodes out itself; the sampled positions are not used.
package nodelink
