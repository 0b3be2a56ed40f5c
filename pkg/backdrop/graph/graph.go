package graph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
)

// Shape is the primitive a node is drawn with.
type Shape int

const (
	Circle Shape = iota
	Square
	Triangle
)

// Shapes is the creation-order cycle of node shapes.
var Shapes = [...]Shape{Circle, Square, Triangle}

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// ParseShape is the inverse of [Shape.String].
func ParseShape(s string) (Shape, bool) {
	for _, sh := range Shapes {
		if sh.String() == s {
			return sh, true
		}
	}
	return 0, false
}

// Value range for generated node values.
const (
	MinValue = 50.0
	MaxValue = 100.0
)

// Node is a labelled point of the backdrop graph.
type Node struct {
	Index    int
	Position geometry.Point
	Label    string
	Value    float64
	Shape    Shape
}

// Caption is the text drawn next to the node, e.g. "Striking Accuracy 73.4%".
func (n Node) Caption() string {
	return fmt.Sprintf("%s %.1f%%", n.Label, n.Value)
}

// Edge is a directed edge between two node indices.
type Edge struct {
	From, To int
}

// Graph is one generation pass worth of nodes and edges.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	return Graph{Nodes: slices.Clone(g.Nodes), Edges: slices.Clone(g.Edges)}
}

// Endpoints returns the source and target nodes of e.
func (g Graph) Endpoints(e Edge) (from, to Node) {
	return g.Nodes[e.From], g.Nodes[e.To]
}

// Annotate attaches a label, value and shape to every point.
// An empty labels slice falls back to [DefaultLabels].
func Annotate(rng geometry.Rand, points []geometry.Point, labels []string) []Node {
	if len(labels) == 0 {
		labels = DefaultLabels
	}
	nodes := make([]Node, len(points))
	for i, p := range points {
		nodes[i] = Node{
			Index:    i,
			Position: p,
			Value:    MinValue + rng.Float64()*(MaxValue-MinValue),
			Label:    labels[rng.IntN(len(labels))],
			Shape:    Shapes[i%len(Shapes)],
		}
	}
	return nodes
}

// DegreeBounds is the inclusive range of requested out-degrees.
type DegreeBounds struct {
	Min, Max int
}

// DefaultDegree requests between one and three edges per node.
var DefaultDegree = DegreeBounds{Min: 1, Max: 3}

func (d DegreeBounds) normalize() DegreeBounds {
	d.Min = max(d.Min, 0)
	d.Max = max(d.Max, d.Min)
	return d
}

// GenerateEdges draws random outgoing edges for every node.
// It returns the edges and the number of targets skipped as self-loops.
func GenerateEdges(rng geometry.Rand, nodes []Node, d DegreeBounds) ([]Edge, int) {
	d = d.normalize()
	n := len(nodes)
	if n == 0 {
		return nil, 0
	}

	edges := make([]Edge, 0, n*(d.Min+d.Max)/2)
	skipped := 0
	for from := range n {
		degree := d.Min + rng.IntN(d.Max-d.Min+1)
		for range degree {
			to := rng.IntN(n)
			if to == from {
				skipped++
				continue
			}
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges, skipped
}
