package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

// parallelThreshold is the particle count above which DirectSum splits
// the outer loop across dynamo.ParallelFor's worker pool instead of
// running single-threaded; below it the goroutine overhead outweighs
// the saving.
const parallelThreshold = 64

// DirectSum is the canonical O(N^2) gravitational force evaluator:
// every particle attracts every other particle, with an optional
// softening length to tame close encounters. It implements
// dynamo.Force and never aliases the particle slice it is given.
type DirectSum struct {
	// Softening added in quadrature to the squared separation, so two
	// particles exactly on top of each other still produce a finite
	// acceleration. Zero disables softening.
	Softening float64
}

func (d DirectSum) Accelerations(particles []dynamo.Particle, g float64) []mgl64.Vec3 {
	n := len(particles)
	accel := make([]mgl64.Vec3, n)
	eps2 := d.Softening * d.Softening

	massive := make([]int, 0, n)
	for i, p := range particles {
		if !p.IsTestParticle() {
			massive = append(massive, i)
		}
	}

	compute := func(start, end int) {
		for i := start; i < end; i++ {
			var a mgl64.Vec3
			pi := particles[i]
			for _, j := range massive {
				if j == i {
					continue
				}
				pj := particles[j]
				rel := pj.Pos.Sub(pi.Pos)
				r2 := rel.Dot(rel) + eps2
				invR3 := 1 / (r2 * math.Sqrt(r2))
				a = a.Add(rel.Mul(g * pj.Mass * invR3))
			}
			accel[i] = a
		}
	}

	dynamo.ParallelFor(n, parallelThreshold, compute)
	return accel
}
