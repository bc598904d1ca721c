// Package utils generates starting positions for points on the unit
// sphere.
package utils

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
)

// Func places the point at index, out of total points, on the unit
// sphere. rng is the board's random source; deterministic placements
// (such as Spiral) may ignore it.
type Func func(rng *rand.Rand, index, total int) r3.Vector

// Cube draws each coordinate uniformly from [-1, 1] and normalizes the
// result. This is biased toward the cube's corner directions rather
// than uniform over the sphere's surface, but matches the reference
// system's starting condition.
func Cube(rng *rand.Rand, _, _ int) r3.Vector {
	v := r3.Vector{
		X: rng.Float64()*2 - 1,
		Y: rng.Float64()*2 - 1,
		Z: rng.Float64()*2 - 1,
	}
	return v.Mul(1 / v.Norm())
}

// Spiral places point index of total along a golden-angle spiral that
// winds from pole to pole, giving a deterministic, near-equidistributed
// starting arrangement. rng is ignored.
func Spiral(_ *rand.Rand, index, total int) r3.Vector {
	if total < 1 {
		total = 1
	}
	i := float64(index) + 0.5
	theta := math.Pi * (1 + math.Sqrt(5)) * i
	phi := math.Acos(1 - 2*i/float64(total))
	width := math.Sin(phi)
	return r3.Vector{
		X: width * math.Cos(theta),
		Y: math.Cos(phi),
		Z: width * math.Sin(theta),
	}
}
