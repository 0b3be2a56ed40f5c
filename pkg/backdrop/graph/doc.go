// Package graph turns placed points into the labelled node/edge graph drawn
// by the backdrop.
//
// # Nodes
//
// [Annotate] attaches a metric label, a percentage value in [50, 100) and a
// shape to every point. Labels and values are drawn independently; shapes
// cycle through [Shapes] in creation order so neighbouring indices always
// look different.
//
// # Edges
//
// [GenerateEdges] gives each node a random out-degree inside [DegreeBounds]
// and picks every target uniformly over all nodes. A draw that lands on the
// source itself is dropped rather than retried, so effective out-degree can
// fall below the one requested. Duplicate edges are allowed.
//
// # Generator
//
// [Generator] bundles placement, annotation and edge generation into one
// call and reports [Stats] about the pass:
//
//	gen := graph.NewGenerator(rng, sampler)
//	g, stats := gen.Generate(geometry.Bounds{Width: 800, Height: 400}, 30)
//
// # Serialization
//
// [WriteJSON] and [ReadJSON] use a stable JSON layout for exporting frames.
package graph
