package integrators

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/physics"
)

// TestWHFastRequiresSplittingTrue checks the contract WHFast's own doc
// comment depends on: its Kepler/interaction split is only valid
// without extra non-gravitational forces.
func TestWHFastRequiresSplittingTrue(t *testing.T) {
	if !NewWHFast().RequiresSplitting() {
		t.Error("WHFast splits forces and must report RequiresSplitting() == true")
	}
}

func TestWHFastSingleParticleDrifts(t *testing.T) {
	integ := NewWHFast()
	particles := []dynamo.Particle{{
		Mass: 1.0,
		Pos:  mgl64.Vec3{0, 0, 0},
		Vel:  mgl64.Vec3{1, 2, 0},
	}}
	if _, err := integ.Step(physics.DirectSum{}, particles, 1.0, 0, 1.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mgl64.Vec3{1, 2, 0}
	if particles[0].Pos.Sub(want).Len() > 1e-12 {
		t.Errorf("a lone particle should drift freely, got %v want %v", particles[0].Pos, want)
	}
}

// TestWHFastMatchesKeplerForTwoBody checks that a bound two-body system
// with no interaction term beyond the exact two-body force advances
// along the analytic Kepler solution: after one full period the
// secondary should return close to its starting state.
func TestWHFastMatchesKeplerForTwoBody(t *testing.T) {
	integ := NewWHFast()
	g := 1.0
	primaryMass := 1.0

	particles := []dynamo.Particle{
		{Mass: primaryMass, Pos: mgl64.Vec3{0, 0, 0}, Vel: mgl64.Vec3{0, 0, 0}},
		{Mass: 0, Pos: mgl64.Vec3{1, 0, 0}, Vel: mgl64.Vec3{0, 1, 0}},
	}
	start := particles[1].Pos

	dt := 0.01
	period := 2 * math.Pi
	steps := int(period / dt)
	for i := 0; i < steps; i++ {
		if _, err := integ.Step(physics.DirectSum{}, particles, g, float64(i)*dt, dt); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}
	if rem := period - float64(steps)*dt; rem > 0 {
		if _, err := integ.Step(physics.DirectSum{}, particles, g, float64(steps)*dt, rem); err != nil {
			t.Fatalf("final partial step failed: %v", err)
		}
	}

	if particles[1].Pos.Sub(start).Len() > 1e-3 {
		t.Errorf("secondary should return near its starting position after one period, drift %v", particles[1].Pos.Sub(start).Len())
	}
}

