// Package geometry places node positions inside a 2D viewport.
//
// # Overview
//
// Positions are produced by bounded rejection sampling: each candidate is
// drawn uniformly inside the [Bounds] and redrawn while it sits closer than
// the minimum separation to an already accepted point. After [Sampler.Attempts]
// draws the last candidate is accepted regardless, so placement always
// terminates and over-dense configurations degrade the spacing instead of
// hanging.
//
//	rng := geometry.NewRand(42)
//	s := geometry.Sampler{Rand: rng, MinSeparation: 60, Attempts: 100}
//	p := s.Place(30, geometry.Bounds{Width: 800, Height: 400})
//	fmt.Println(len(p.Points), p.Forced)
//
// # Randomness
//
// All sampling goes through the [Rand] interface, which *math/rand/v2.Rand
// satisfies. Inject a seeded source (see [NewRand]) for reproducible output.
package geometry
