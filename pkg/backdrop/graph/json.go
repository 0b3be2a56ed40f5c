package graph

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
)

// document is the JSON layout of a graph.
type document struct {
	Nodes []nodeJSON `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

type nodeJSON struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Shape string  `json:"shape"`
}

type edgeJSON struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// WriteJSON writes g as indented JSON.
func WriteJSON(w io.Writer, g Graph) error {
	doc := document{
		Nodes: make([]nodeJSON, len(g.Nodes)),
		Edges: make([]edgeJSON, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		doc.Nodes[i] = nodeJSON{X: n.Position.X, Y: n.Position.Y, Label: n.Label, Value: n.Value, Shape: n.Shape.String()}
	}
	for i, e := range g.Edges {
		doc.Edges[i] = edgeJSON(e)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ReadJSON decodes a graph written by [WriteJSON].
func ReadJSON(r io.Reader) (Graph, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Graph{}, fmt.Errorf("decode graph: %w", err)
	}

	g := Graph{Nodes: make([]Node, len(doc.Nodes)), Edges: make([]Edge, len(doc.Edges))}
	for i, n := range doc.Nodes {
		shape, ok := ParseShape(n.Shape)
		if !ok {
			return Graph{}, fmt.Errorf("node %d: unknown shape %q", i, n.Shape)
		}
		g.Nodes[i] = Node{Index: i, Position: geometry.Point{X: n.X, Y: n.Y}, Label: n.Label, Value: n.Value, Shape: shape}
	}
	for i, e := range doc.Edges {
		if e.From < 0 || e.From >= len(g.Nodes) || e.To < 0 || e.To >= len(g.Nodes) {
			return Graph{}, fmt.Errorf("edge %d: endpoint out of range", i)
		}
		g.Edges[i] = Edge(e)
	}
	return g, nil
}
