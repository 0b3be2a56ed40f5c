package geometry

import (
	"math"
	"math/rand/v2"
)

// DefaultAttempts is the number of candidate draws per node before the
// sampler gives up on the separation constraint.
const DefaultAttempts = 100

// Rand is the random source used for sampling.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed source seeded from seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Point is a position in viewport coordinates.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Translate returns p shifted by dx, dy.
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Bounds is the size of a viewport anchored at the origin.
type Bounds struct {
	Width, Height float64
}

// Contains reports whether p lies inside [0, Width) x [0, Height).
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Empty reports whether b has no drawable area.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Sampler places points with a best-effort minimum pairwise separation.
type Sampler struct {
	Rand          Rand
	MinSeparation float64
	Attempts      int // values below 1 behave as 1
}

// Placement is the result of one sampling pass.
type Placement struct {
	Points []Point
	Forced int // points accepted after the attempt cap ran out
}

// Place draws count points inside b.
func (s *Sampler) Place(count int, b Bounds) Placement {
	if count <= 0 {
		return Placement{}
	}
	attempts := max(s.Attempts, 1)

	pts := make([]Point, 0, count)
	forced := 0
	for range count {
		var c Point
		ok := false
		for range attempts {
			c = s.candidate(b)
			if s.separated(c, pts) {
				ok = true
				break
			}
		}
		if !ok {
			forced++
		}
		pts = append(pts, c)
	}
	return Placement{Points: pts, Forced: forced}
}

func (s *Sampler) candidate(b Bounds) Point {
	return Point{X: s.Rand.Float64() * b.Width, Y: s.Rand.Float64() * b.Height}
}

func (s *Sampler) separated(c Point, accepted []Point) bool {
	for _, p := range accepted {
		if c.Dist(p) < s.MinSeparation {
			return false
		}
	}
	return true
}

// GenerateNodes places count points in b using the default attempt cap.
func GenerateNodes(rng Rand, count int, b Bounds, minSeparation float64) []Point {
	s := Sampler{Rand: rng, MinSeparation: minSeparation, Attempts: DefaultAttempts}
	return s.Place(count, b).Points
}
