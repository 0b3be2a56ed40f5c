package sink

import (
	"image"
	"io"

	"github.com/fogleman/gg"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
)

// PNG is a raster surface backed by a gg drawing context.
type PNG struct {
	dc      *gg.Context
	palette Palette
}

// NewPNG returns a width x height raster surface filled with the background.
func NewPNG(width, height float64) *PNG {
	p := &PNG{palette: DefaultPalette}
	p.Resize(width, height)
	return p
}

// Resize replaces the raster with an empty one of the new size.
func (p *PNG) Resize(width, height float64) {
	p.dc = gg.NewContext(max(int(width), 1), max(int(height), 1))
	p.Clear()
}

func (p *PNG) Clear() {
	p.dc.SetColor(p.palette.Background)
	p.dc.Clear()
}

func (p *PNG) Line(x1, y1, x2, y2 float64) {
	p.dc.SetColor(p.palette.Edge)
	p.dc.SetLineWidth(1)
	p.dc.DrawLine(x1, y1, x2, y2)
	p.dc.Stroke()
}

func (p *PNG) Circle(cx, cy, r float64) {
	p.dc.DrawCircle(cx, cy, r)
	p.fillStroke()
}

func (p *PNG) Rect(x, y, w, h float64) {
	p.dc.DrawRectangle(x, y, w, h)
	p.fillStroke()
}

func (p *PNG) Polygon(pts []geometry.Point) {
	if len(pts) == 0 {
		return
	}
	p.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.dc.LineTo(pt.X, pt.Y)
	}
	p.dc.ClosePath()
	p.fillStroke()
}

func (p *PNG) Text(x, y float64, s string) {
	p.dc.SetColor(p.palette.Text)
	p.dc.DrawString(s, x, y)
}

func (p *PNG) fillStroke() {
	p.dc.SetColor(p.palette.Fill)
	p.dc.FillPreserve()
	p.dc.SetColor(p.palette.Stroke)
	p.dc.SetLineWidth(1)
	p.dc.Stroke()
}

// Image returns the current raster.
func (p *PNG) Image() image.Image { return p.dc.Image() }

// Encode writes the current raster as PNG.
func (p *PNG) Encode(w io.Writer) error { return p.dc.EncodePNG(w) }
