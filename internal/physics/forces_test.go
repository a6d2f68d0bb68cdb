package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

func TestDirectSumZeroForSingleParticle(t *testing.T) {
	particles := []dynamo.Particle{{Mass: 1.0, Pos: mgl64.Vec3{0, 0, 0}}}
	accel := DirectSum{}.Accelerations(particles, 1.0)
	if accel[0].Len() != 0 {
		t.Errorf("a lone particle must feel no force, got %v", accel[0])
	}
}

// TestDirectSumNewtonThirdLaw checks that for two unequal masses the
// forces (accelerations scaled by mass) are equal and opposite.
func TestDirectSumNewtonThirdLaw(t *testing.T) {
	particles := []dynamo.Particle{
		{Mass: 2.0, Pos: mgl64.Vec3{-1, 0, 0}},
		{Mass: 3.0, Pos: mgl64.Vec3{1, 0, 0}},
	}
	accel := DirectSum{}.Accelerations(particles, 1.0)

	f0 := accel[0].Mul(particles[0].Mass)
	f1 := accel[1].Mul(particles[1].Mass)
	if f0.Add(f1).Len() > 1e-12 {
		t.Errorf("expected equal and opposite forces, got f0=%v f1=%v", f0, f1)
	}
	if accel[0].X() <= 0 {
		t.Errorf("particle 0 should accelerate toward particle 1 (+x), got %v", accel[0])
	}
	if accel[1].X() >= 0 {
		t.Errorf("particle 1 should accelerate toward particle 0 (-x), got %v", accel[1])
	}
}

func TestDirectSumTestParticlesExertNoForce(t *testing.T) {
	particles := []dynamo.Particle{
		{Mass: 1.0, Pos: mgl64.Vec3{0, 0, 0}},
		{Mass: 0, Pos: mgl64.Vec3{1, 0, 0}}, // test particle
	}
	accel := DirectSum{}.Accelerations(particles, 1.0)
	if accel[0].Len() != 0 {
		t.Errorf("a test particle must not perturb a massive one, got accel[0]=%v", accel[0])
	}
}

func TestDirectSumSofteningTamesCloseEncounter(t *testing.T) {
	particles := []dynamo.Particle{
		{Mass: 1.0, Pos: mgl64.Vec3{0, 0, 0}},
		{Mass: 1.0, Pos: mgl64.Vec3{1e-6, 0, 0}},
	}
	unsoftened := DirectSum{}.Accelerations(particles, 1.0)
	softened := DirectSum{Softening: 1.0}.Accelerations(particles, 1.0)

	if softened[0].Len() >= unsoftened[0].Len() {
		t.Errorf("softening should reduce the acceleration at close range, got softened=%v unsoftened=%v",
			softened[0].Len(), unsoftened[0].Len())
	}
}

// TestDirectSumScalesAboveParallelThreshold runs DirectSum with an N
// above parallelThreshold, so dynamo.ParallelFor takes its goroutine
// path, and checks that one finite (non-NaN) acceleration comes back
// per particle.
func TestDirectSumScalesAboveParallelThreshold(t *testing.T) {
	n := parallelThreshold + 8
	particles := make([]dynamo.Particle, n)
	for i := range particles {
		angle := 2 * math.Pi * float64(i) / float64(n)
		particles[i] = dynamo.Particle{
			Mass: 1.0,
			Pos:  mgl64.Vec3{math.Cos(angle), math.Sin(angle), 0},
		}
	}
	accel := DirectSum{}.Accelerations(particles, 1.0)
	if len(accel) != n {
		t.Fatalf("expected %d accelerations, got %d", n, len(accel))
	}
	for i, a := range accel {
		if math.IsNaN(a.X()) || math.IsNaN(a.Y()) || math.IsNaN(a.Z()) {
			t.Fatalf("particle %d produced a NaN acceleration", i)
		}
	}
}
