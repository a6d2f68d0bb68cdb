package integrators

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

func TestIAS15RequiresSplittingFalse(t *testing.T) {
	if NewIAS15().RequiresSplitting() {
		t.Error("ias15 applies no Kepler split and must report RequiresSplitting() == false")
	}
}

func TestIAS15SuggestedDtZeroBeforeFirstStep(t *testing.T) {
	integ := NewIAS15()
	if got := integ.SuggestedDt(); got != 0 {
		t.Errorf("expected SuggestedDt() == 0 before any Step, got %v", got)
	}
}

func TestIAS15SuggestsSmallerStepAfterHighError(t *testing.T) {
	integ := NewIAS15()
	particles := []dynamo.Particle{{
		Mass: 0,
		Pos:  mgl64.Vec3{1, 0, 0},
		Vel:  mgl64.Vec3{0, 1, 0},
	}}

	if _, err := integ.Step(keplerForce{}, particles, 1.0, 0, 1.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := integ.SuggestedDt(); s <= 0 || s >= 1.0 {
		t.Errorf("expected a positive suggested step smaller than the 1.0 just taken, got %v", s)
	}
}

// TestIAS15CheckpointRestoreRoundTrip exercises the AdaptiveIntegrator
// contract: Checkpoint/Restore must round-trip the integrator's private
// scratch state so a shortened exact-finish step can be undone.
func TestIAS15CheckpointRestoreRoundTrip(t *testing.T) {
	integ := NewIAS15()
	particles := []dynamo.Particle{{
		Mass: 0,
		Pos:  mgl64.Vec3{1, 0, 0},
		Vel:  mgl64.Vec3{0, 1, 0},
	}}
	if _, err := integ.Step(keplerForce{}, particles, 1.0, 0, 0.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := integ.Checkpoint()
	savedDt := integ.SuggestedDt()

	if _, err := integ.Step(keplerForce{}, particles, 1.0, 0.5, 0.01); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if integ.SuggestedDt() == savedDt {
		t.Fatal("expected SuggestedDt to change after a second Step, test is not exercising anything")
	}

	integ.Restore(snap)
	if integ.SuggestedDt() != savedDt {
		t.Errorf("Restore did not bring SuggestedDt back to %v, got %v", savedDt, integ.SuggestedDt())
	}
}

// TestIAS15AccuracyOverShortArc checks a cheap accuracy property: a
// circular orbit's radius should stay near 1 over a quarter period,
// the same property TestRK4MatchesCircularOrbit checks, so the two
// integrators can be read side by side.
func TestIAS15AccuracyOverShortArc(t *testing.T) {
	integ := NewIAS15()
	particles := []dynamo.Particle{{
		Mass: 0,
		Pos:  mgl64.Vec3{1, 0, 0},
		Vel:  mgl64.Vec3{0, 1, 0},
	}}

	t0 := 0.0
	dt := 0.05
	target := math.Pi / 2
	for t0 < target {
		step := dt
		if t0+step > target {
			step = target - t0
		}
		achieved, err := integ.Step(keplerForce{}, particles, 1.0, t0, step)
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
		t0 += achieved
	}

	r := particles[0].Pos.Len()
	if math.Abs(r-1.0) > 1e-5 {
		t.Errorf("expected radius ~1.0 after a quarter orbit, got %v", r)
	}
}
