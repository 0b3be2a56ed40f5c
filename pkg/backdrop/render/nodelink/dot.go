package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/graph"
)

var dotShapes = map[graph.Shape]string{
	graph.Circle:   "circle",
	graph.Square:   "box",
	graph.Triangle: "triangle",
}

// dotEscaper quotes label text for a DOT double-quoted string. Graphviz
// reads \n as a centered line break.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)

func quoteDOT(s string) string {
	s = strings.Map(func(r rune) rune {
		if r != '\n' && r != '\r' && unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return `"` + dotEscaper.Replace(s) + `"`
}

// ToDOT converts g to Graphviz DOT source. Node IDs are "n<index>".
func ToDOT(g graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph backdrop {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=\"#e63946\", fontcolor=\"#0b0f1a\", fontsize=10];\n")
	buf.WriteString("  edge [color=\"#9aa4b2\"];\n\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  n%d [label=%s, shape=%s];\n", n.Index, quoteDOT(n.Caption()), dotShapes[n.Shape])
	}
	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", e.From, e.To)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out and renders DOT source to SVG with Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
