package sink

import "github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"

// OpKind identifies a recorded drawing call.
type OpKind string

const (
	OpClear   OpKind = "clear"
	OpLine    OpKind = "line"
	OpCircle  OpKind = "circle"
	OpRect    OpKind = "rect"
	OpPolygon OpKind = "polygon"
	OpText    OpKind = "text"
	OpResize  OpKind = "resize"
)

// Op is one recorded call. Args holds the scalar arguments in call order.
type Op struct {
	Kind   OpKind
	Args   []float64
	Points []geometry.Point
	Text   string
}

// Recorder is a surface that records calls instead of drawing.
type Recorder struct {
	Ops           []Op
	Width, Height float64
}

func (r *Recorder) add(op Op) { r.Ops = append(r.Ops, op) }

func (r *Recorder) Resize(width, height float64) {
	r.Width, r.Height = width, height
	r.add(Op{Kind: OpResize, Args: []float64{width, height}})
}

func (r *Recorder) Clear() { r.add(Op{Kind: OpClear}) }

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.add(Op{Kind: OpLine, Args: []float64{x1, y1, x2, y2}})
}

func (r *Recorder) Circle(cx, cy, rad float64) {
	r.add(Op{Kind: OpCircle, Args: []float64{cx, cy, rad}})
}

func (r *Recorder) Rect(x, y, w, h float64) {
	r.add(Op{Kind: OpRect, Args: []float64{x, y, w, h}})
}

func (r *Recorder) Polygon(pts []geometry.Point) {
	r.add(Op{Kind: OpPolygon, Points: append([]geometry.Point(nil), pts...)})
}

func (r *Recorder) Text(x, y float64, s string) {
	r.add(Op{Kind: OpText, Args: []float64{x, y}, Text: s})
}

// Count returns how many recorded ops have the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Since returns the ops recorded after the last Clear.
func (r *Recorder) Since() []Op {
	for i := len(r.Ops) - 1; i >= 0; i-- {
		if r.Ops[i].Kind == OpClear {
			return r.Ops[i+1:]
		}
	}
	return r.Ops
}

// Reset drops all recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
