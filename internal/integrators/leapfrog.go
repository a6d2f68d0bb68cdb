package integrators

import (
	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

// Leapfrog is the kick-drift-kick (velocity Verlet) symplectic
// integrator: a half-kick from the acceleration at the current
// positions, a full drift, then a second half-kick from the
// acceleration at the new positions. It preserves phase-space volume
// exactly and has bounded long-term energy error independent of the
// number of steps taken, which is why it is the default here.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog { return &Leapfrog{} }

func (l *Leapfrog) Step(force dynamo.Force, particles []dynamo.Particle, g, t, dt float64) (float64, error) {
	acc := force.Accelerations(particles, g)
	halfDt := 0.5 * dt

	for i := range particles {
		particles[i].Vel = particles[i].Vel.Add(acc[i].Mul(halfDt))
	}
	for i := range particles {
		particles[i].Pos = particles[i].Pos.Add(particles[i].Vel.Mul(dt))
	}

	acc = force.Accelerations(particles, g)
	for i := range particles {
		particles[i].Vel = particles[i].Vel.Add(acc[i].Mul(halfDt))
	}

	return dt, nil
}

func (l *Leapfrog) RequiresSplitting() bool { return false }

func init() {
	dynamo.RegisterIntegrator("leapfrog", func() dynamo.Integrator { return NewLeapfrog() })
}
