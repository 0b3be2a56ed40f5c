package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
)

// Default pixel size of one terminal cell.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellEdge
	cellNode
	cellText
)

type cell struct {
	r    rune
	kind cellKind
}

var (
	cellEdgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cellNodeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("167")).Bold(true)
	cellTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Cells is a terminal surface. Drawing happens in pixel coordinates which
// are mapped onto a grid of CellWidth x CellHeight pixel cells.
type Cells struct {
	CellWidth, CellHeight float64
	Plain                 bool // skip lipgloss styling in String

	cols, rows int
	grid       [][]cell
}

// NewCells returns a surface of cols x rows terminal cells.
func NewCells(cols, rows int) *Cells {
	c := &Cells{CellWidth: DefaultCellWidth, CellHeight: DefaultCellHeight}
	c.ResizeCells(cols, rows)
	return c
}

// ResizeCells changes the grid size in cells and clears it.
func (c *Cells) ResizeCells(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.grid = make([][]cell, c.rows)
	for i := range c.grid {
		c.grid[i] = make([]cell, c.cols)
	}
	c.Clear()
}

// Resize changes the grid to cover width x height pixels.
func (c *Cells) Resize(width, height float64) {
	c.ResizeCells(int(width/c.CellWidth), int(height/c.CellHeight))
}

// PixelSize returns the area covered by the grid in pixels.
func (c *Cells) PixelSize() geometry.Bounds {
	return geometry.Bounds{Width: float64(c.cols) * c.CellWidth, Height: float64(c.rows) * c.CellHeight}
}

func (c *Cells) Clear() {
	for _, row := range c.grid {
		for i := range row {
			row[i] = cell{r: ' '}
		}
	}
}

func (c *Cells) toCell(x, y float64) (col, row int) {
	return int(math.Floor(x / c.CellWidth)), int(math.Floor(y / c.CellHeight))
}

func (c *Cells) set(col, row int, r rune, kind cellKind) {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return
	}
	// Edges never overwrite nodes or captions.
	if kind == cellEdge && c.grid[row][col].kind != cellEmpty {
		return
	}
	c.grid[row][col] = cell{r: r, kind: kind}
}

func (c *Cells) Line(x1, y1, x2, y2 float64) {
	c0, r0 := c.toCell(x1, y1)
	c1, r1 := c.toCell(x2, y2)
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		c.set(c0, r0, '·', cellEdge)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

func (c *Cells) Circle(cx, cy, _ float64) {
	col, row := c.toCell(cx, cy)
	c.set(col, row, '●', cellNode)
}

func (c *Cells) Rect(x, y, w, h float64) {
	col, row := c.toCell(x+w/2, y+h/2)
	c.set(col, row, '■', cellNode)
}

func (c *Cells) Polygon(pts []geometry.Point) {
	if len(pts) == 0 {
		return
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	col, row := c.toCell(sx/n, sy/n)
	c.set(col, row, '▲', cellNode)
}

func (c *Cells) Text(x, y float64, s string) {
	col, row := c.toCell(x, y-c.CellHeight/2)
	for _, r := range s {
		c.set(col, row, r, cellText)
		col++
	}
}

// String renders the grid, one line per row.
func (c *Cells) String() string {
	var b strings.Builder
	for i, row := range c.grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		c.writeRow(&b, row)
	}
	return b.String()
}

// writeRow emits runs of same-kind cells with one style call per run.
func (c *Cells) writeRow(b *strings.Builder, row []cell) {
	var run strings.Builder
	kind := cellEmpty
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(c.style(kind, run.String()))
		run.Reset()
	}
	for _, ce := range row {
		if ce.kind != kind {
			flush()
			kind = ce.kind
		}
		run.WriteRune(ce.r)
	}
	flush()
}

func (c *Cells) style(kind cellKind, s string) string {
	if c.Plain {
		return s
	}
	switch kind {
	case cellEdge:
		return cellEdgeStyle.Render(s)
	case cellNode:
		return cellNodeStyle.Render(s)
	case cellText:
		return cellTextStyle.Render(s)
	default:
		return s
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
