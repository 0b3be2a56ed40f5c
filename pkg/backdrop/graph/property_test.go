package graph

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
)

func TestGraphProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	bounds := geometry.Bounds{Width: 800, Height: 400}

	generate := func(seed uint64, count int) Graph {
		s := geometry.Sampler{MinSeparation: 60, Attempts: geometry.DefaultAttempts}
		g, _ := NewGenerator(geometry.NewRand(seed), s).Generate(bounds, count)
		return g
	}

	properties.Property("edges never loop back to their source", prop.ForAll(
		func(seed uint64, count int) bool {
			for _, e := range generate(seed, count).Edges {
				if e.From == e.To {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
		gen.IntRange(0, 40),
	))

	properties.Property("values and shapes follow creation order", prop.ForAll(
		func(seed uint64, count int) bool {
			for i, n := range generate(seed, count).Nodes {
				if n.Value < 50 || n.Value >= 100 || n.Shape != Shapes[i%3] {
					return false
				}
			}
			return true
		},
		gen.UInt64(),
		gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}
