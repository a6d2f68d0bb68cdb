package physics

import "github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"

// FigureEight builds a Simulation seeded with the classic equal-mass
// figure-eight three-body solution (Chenciner-Montgomery), a standard
// torture test for an integrator: unlike the Kepler two-body scenarios,
// all three masses are comparable and the orbit self-intersects.
//
// The Simulation returned has G=1, DirectSum gravity, and leapfrog
// selected; the caller can reassign any of those before integrating.
func FigureEight() *dynamo.Simulation {
	sim := dynamo.NewSimulation()
	sim.G = 1.0
	sim.Force = DirectSum{}

	add := func(name string, x, y, vx, vy float64) {
		_, _ = sim.Store.Add(dynamo.ParticleDescriptor{
			Mass: 1.0,
			X:    x, Y: y, Z: 0,
			VX: vx, VY: vy, VZ: 0,
			Name: name,
		})
	}

	add("body-1", -1.0, 0.0, 0.347111, 0.532728)
	add("body-2", 1.0, 0.0, 0.347111, 0.532728)
	add("body-3", 0.0, 0.0, -0.694222, -1.065456)

	return sim
}
