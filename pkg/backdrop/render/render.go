package render

import (
	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/graph"
)

// Canvas is a 2D drawing context. Shape methods fill and then stroke.
type Canvas interface {
	// Clear erases the whole surface.
	Clear()
	// Line strokes a straight segment.
	Line(x1, y1, x2, y2 float64)
	// Circle draws a disc of radius r centred on (cx, cy).
	Circle(cx, cy, r float64)
	// Rect draws an axis-aligned rectangle with its top-left corner at (x, y).
	Rect(x, y, w, h float64)
	// Polygon draws a closed polygon.
	Polygon(pts []geometry.Point)
	// Text draws s with its baseline starting at (x, y).
	Text(x, y float64, s string)
}

// Style controls node geometry.
type Style struct {
	NodeSize float64 // circle radius, half the square side, triangle half-base
	LabelGap float64 // space between a shape and its caption
}

// DefaultStyle matches the page background.
var DefaultStyle = Style{NodeSize: 8, LabelGap: 6}

// RenderFrame clears c and draws g shifted right by xOffset.
func RenderFrame(c Canvas, g graph.Graph, xOffset float64, st Style) {
	c.Clear()
	DrawGraph(c, g, xOffset, st)
}

// RenderWrapped clears c once and draws three copies of g so that the
// viewport is always covered while offset travels through [0, width).
func RenderWrapped(c Canvas, g graph.Graph, offset, width float64, st Style) {
	c.Clear()
	for _, dx := range WrapOffsets(offset, width) {
		DrawGraph(c, g, dx, st)
	}
}

// WrapOffsets returns the three horizontal offsets painted per frame.
func WrapOffsets(offset, width float64) [3]float64 {
	return [3]float64{offset, offset - width, offset + width}
}

// DrawGraph draws edges, then node shapes and captions, without clearing.
func DrawGraph(c Canvas, g graph.Graph, xOffset float64, st Style) {
	for _, e := range g.Edges {
		from, to := g.Endpoints(e)
		c.Line(from.Position.X+xOffset, from.Position.Y, to.Position.X+xOffset, to.Position.Y)
	}
	for _, n := range g.Nodes {
		p := n.Position.Translate(xOffset, 0)
		drawShape(c, n.Shape, p, st.NodeSize)
		c.Text(p.X+st.NodeSize+st.LabelGap, p.Y+st.NodeSize/2, n.Caption())
	}
}

func drawShape(c Canvas, s graph.Shape, p geometry.Point, size float64) {
	switch s {
	case graph.Square:
		c.Rect(p.X-size, p.Y-size, 2*size, 2*size)
	case graph.Triangle:
		c.Polygon(Triangle(p, size))
	default:
		c.Circle(p.X, p.Y, size)
	}
}

// Triangle returns the vertices of the isosceles triangle drawn for a node
// centred on p: apex above, base below.
func Triangle(p geometry.Point, size float64) []geometry.Point {
	return []geometry.Point{
		{X: p.X, Y: p.Y - size},
		{X: p.X + size, Y: p.Y + size},
		{X: p.X - size, Y: p.Y + size},
	}
}
