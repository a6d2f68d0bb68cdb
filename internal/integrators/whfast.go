package integrators

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

// WHFast is a Wisdom-Holman-style symplectic integrator: it splits the
// force on every particle into an exact two-body Kepler term relative
// to particles[0] (treated as the primary) and a perturbation
// ("interaction") term, drifts each particle along its own Kepler orbit
// for the full step, and applies the interaction term as two half-kicks
// bracketing the drift.
//
// This is not REBOUND's actual WHFast, which integrates in Jacobi or
// democratic-heliocentric coordinates; this implementation always works
// in whatever frame the particles are already in, which is why
// RequiresSplitting reports true: any AdditionalForce would corrupt the
// two-body/perturbation split this integrator depends on.
type WHFast struct{}

func NewWHFast() *WHFast { return &WHFast{} }

func (w *WHFast) RequiresSplitting() bool { return true }

func (w *WHFast) Step(force dynamo.Force, particles []dynamo.Particle, g, t, dt float64) (float64, error) {
	n := len(particles)
	if n == 0 {
		return dt, nil
	}
	if n == 1 {
		particles[0].Pos = particles[0].Pos.Add(particles[0].Vel.Mul(dt))
		return dt, nil
	}

	halfKick(force, particles, g, 0.5*dt)

	primary := particles[0]
	for i := 1; i < n; i++ {
		relPos := particles[i].Pos.Sub(primary.Pos)
		relVel := particles[i].Vel.Sub(primary.Vel)
		mu := g * (primary.Mass + particles[i].Mass)

		newRelPos, newRelVel, err := dynamo.KeplerAdvance(relPos, relVel, mu, dt)
		if err != nil {
			return 0, err
		}
		particles[i].Pos = primary.Pos.Add(newRelPos)
		particles[i].Vel = primary.Vel.Add(newRelVel)
	}
	particles[0].Pos = particles[0].Pos.Add(particles[0].Vel.Mul(dt))

	halfKick(force, particles, g, 0.5*dt)

	return dt, nil
}

// halfKick applies a kick from the interaction (non-Kepler) part of the
// acceleration: the total N-body acceleration minus the two-body
// acceleration each particle already receives from the analytic Kepler
// drift relative to particles[0].
func halfKick(force dynamo.Force, particles []dynamo.Particle, g, dt float64) {
	n := len(particles)
	accTotal := force.Accelerations(particles, g)
	primary := particles[0]

	for i := 0; i < n; i++ {
		kepAcc := mgl64.Vec3{}
		if i != 0 {
			rel := particles[i].Pos.Sub(primary.Pos)
			r := rel.Len()
			if r > 0 {
				kepAcc = rel.Mul(-g * primary.Mass / (r * r * r))
			}
		}
		interaction := accTotal[i].Sub(kepAcc)
		particles[i].Vel = particles[i].Vel.Add(interaction.Mul(dt))
	}
}

func init() {
	dynamo.RegisterIntegrator("whfast", func() dynamo.Integrator { return NewWHFast() })
}
