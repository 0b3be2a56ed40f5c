package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/graph"
)

func testGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{Index: 0, Label: "Striking Accuracy", Value: 61.2, Shape: graph.Circle},
			{Index: 1, Label: "Control Time", Value: 88, Shape: graph.Square},
			{Index: 2, Label: "Takedown Defense", Value: 54.5, Shape: graph.Triangle, Position: geometry.Point{X: 1}},
		},
		Edges: []graph.Edge{{From: 0, To: 1}, {From: 2, To: 0}},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph())

	for _, want := range []string{
		"digraph backdrop {",
		`n0 [label="Striking Accuracy 61.2%", shape=circle];`,
		`n1 [label="Control Time 88.0%", shape=box];`,
		`n2 [label="Takedown Defense 54.5%", shape=triangle];`,
		"n0 -> n1;",
		"n2 -> n0;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
}

func TestQuoteDOT(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Control Time", `"Control Time"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
		{"tab\there", `"tab here"`},
		{"nul\x00byte", `"nul byte"`},
	}
	for _, tt := range tests {
		if got := quoteDOT(tt.in); got != tt.want {
			t.Errorf("quoteDOT(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestToDOTEscapesLabels(t *testing.T) {
	g := graph.Graph{Nodes: []graph.Node{{Label: "Sig. \"Str\"\tLanded", Value: 70, Shape: graph.Circle}}}
	dot := ToDOT(g)
	want := `n0 [label="Sig. \"Str\" Landed 70.0%", shape=circle];`
	if !strings.Contains(dot, want) {
		t.Errorf("ToDOT() = %s, want line %s", dot, want)
	}
	if _, err := RenderSVG(context.Background(), dot); err != nil {
		t.Fatalf("RenderSVG() on escaped labels: %v", err)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(graph.Graph{})
	if !strings.HasPrefix(dot, "digraph backdrop {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT() on empty graph = %q", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testGraph()))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}
