package graph

import "github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"

// Stats describes one generation pass.
type Stats struct {
	Nodes            int
	Edges            int
	Forced           int // nodes placed after the attempt cap
	SelfLoopsSkipped int
}

// Generator produces complete graphs from one random source.
type Generator struct {
	Rand    geometry.Rand
	Sampler geometry.Sampler
	Labels  []string
	Degree  DegreeBounds
}

// NewGenerator returns a generator with default labels and degree bounds.
// The sampler's random source is replaced by rng so that one seed drives the
// whole pass.
func NewGenerator(rng geometry.Rand, s geometry.Sampler) *Generator {
	s.Rand = rng
	return &Generator{
		Rand:    rng,
		Sampler: s,
		Labels:  DefaultLabels,
		Degree:  DefaultDegree,
	}
}

// Generate places count nodes inside b and connects them.
func (g *Generator) Generate(b geometry.Bounds, count int) (Graph, Stats) {
	p := g.Sampler.Place(count, b)
	nodes := Annotate(g.Rand, p.Points, g.Labels)
	edges, skipped := GenerateEdges(g.Rand, nodes, g.Degree)
	return Graph{Nodes: nodes, Edges: edges}, Stats{
		Nodes:            len(nodes),
		Edges:            len(edges),
		Forced:           p.Forced,
		SelfLoopsSkipped: skipped,
	}
}
