package integrators

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

type keplerForce struct{}

func (keplerForce) Accelerations(particles []dynamo.Particle, g float64) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(particles))
	for i, p := range particles {
		r := p.Pos.Len()
		if r == 0 {
			continue
		}
		out[i] = p.Pos.Mul(-g / (r * r * r))
	}
	return out
}

func energyOf(p dynamo.Particle, g float64) float64 {
	r := p.Pos.Len()
	return 0.5*p.Vel.Dot(p.Vel) - g/r
}

// TestLeapfrogEnergyConservation checks the bounded-oscillation energy
// behavior that is the whole point of a symplectic integrator: over a
// few orbits, the specific orbital energy should stay close to its
// initial value rather than drifting away.
func TestLeapfrogEnergyConservation(t *testing.T) {
	integ := NewLeapfrog()
	force := keplerForce{}
	g := 1.0

	particles := []dynamo.Particle{{
		Mass: 0,
		Pos:  mgl64.Vec3{1, 0, 0},
		Vel:  mgl64.Vec3{0, 1, 0},
	}}
	e0 := energyOf(particles[0], g)

	dt := 0.001
	steps := int(4 * 2 * math.Pi / dt)
	for i := 0; i < steps; i++ {
		if _, err := integ.Step(force, particles, g, float64(i)*dt, dt); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}

	drift := math.Abs(energyOf(particles[0], g)-e0) / math.Abs(e0)
	if drift > 1e-4 {
		t.Errorf("leapfrog energy drift too large after 4 orbits: %e", drift)
	}
}

func TestLeapfrogRequiresSplittingFalse(t *testing.T) {
	if NewLeapfrog().RequiresSplitting() {
		t.Error("leapfrog does not split forces and must report RequiresSplitting() == false")
	}
}

func TestLeapfrogReturnsRequestedDt(t *testing.T) {
	integ := NewLeapfrog()
	particles := []dynamo.Particle{{Mass: 0, Pos: mgl64.Vec3{1, 0, 0}, Vel: mgl64.Vec3{0, 1, 0}}}
	got, err := integ.Step(keplerForce{}, particles, 1.0, 0, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.01 {
		t.Errorf("expected achieved dt 0.01, got %v", got)
	}
}
