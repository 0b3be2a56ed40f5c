package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
)

// SVG is a surface that renders to an SVG document.
type SVG struct {
	width, height float64
	palette       Palette
	fontSize      float64
	body          bytes.Buffer
}

// SVGOption configures an SVG surface.
type SVGOption func(*SVG)

// WithSVGPalette overrides the default palette.
func WithSVGPalette(p Palette) SVGOption { return func(s *SVG) { s.palette = p } }

// WithFontSize sets the caption font size in pixels.
func WithFontSize(px float64) SVGOption { return func(s *SVG) { s.fontSize = px } }

// NewSVG returns an empty width x height SVG surface.
func NewSVG(width, height float64, opts ...SVGOption) *SVG {
	s := &SVG{width: width, height: height, palette: DefaultPalette, fontSize: 10}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resize changes the document size. Existing content is kept.
func (s *SVG) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Size returns the document size.
func (s *SVG) Size() (width, height float64) { return s.width, s.height }

func (s *SVG) Clear() { s.body.Reset() }

func (s *SVG) Line(x1, y1, x2, y2 float64) {
	fmt.Fprintf(&s.body, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" class="edge"/>`+"\n", x1, y1, x2, y2)
}

func (s *SVG) Circle(cx, cy, r float64) {
	fmt.Fprintf(&s.body, `  <circle cx="%.2f" cy="%.2f" r="%.2f" class="node"/>`+"\n", cx, cy, r)
}

func (s *SVG) Rect(x, y, w, h float64) {
	fmt.Fprintf(&s.body, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" class="node"/>`+"\n", x, y, w, h)
}

func (s *SVG) Polygon(pts []geometry.Point) {
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(&s.body, `  <polygon points="%s" class="node"/>`+"\n", strings.Join(coords, " "))
}

func (s *SVG) Text(x, y float64, text string) {
	fmt.Fprintf(&s.body, `  <text x="%.2f" y="%.2f" class="caption">%s</text>`+"\n", x, y, escape(text))
}

// Bytes returns the current frame as a standalone SVG document.
func (s *SVG) Bytes() []byte {
	p := s.palette
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	fmt.Fprintf(&buf, "  <style>\n    .edge { stroke: %s; stroke-opacity: %s; stroke-width: 1; }\n", hex(p.Edge), opacity(p.Edge))
	fmt.Fprintf(&buf, "    .node { fill: %s; fill-opacity: %s; stroke: %s; stroke-width: 1; }\n", hex(p.Fill), opacity(p.Fill), hex(p.Stroke))
	fmt.Fprintf(&buf, "    .caption { fill: %s; font-family: sans-serif; font-size: %.0fpx; }\n  </style>\n", hex(p.Text), s.fontSize)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.0f" height="%.0f" fill="%s"/>`+"\n", s.width, s.height, hex(p.Background))
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
