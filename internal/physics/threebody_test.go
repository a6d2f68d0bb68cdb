package physics

import (
	"context"
	"math"
	"testing"

	_ "github.com/Ruth-Huang6012/REBOUND-2planets/internal/integrators"
	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/metrics"
)

func TestFigureEightBuildsThreeBodies(t *testing.T) {
	sim := FigureEight()
	if sim.Store.Len() != 3 {
		t.Fatalf("expected 3 particles, got %d", sim.Store.Len())
	}
	if sim.G != 1.0 {
		t.Errorf("expected G=1.0, got %v", sim.G)
	}
	total := 0.0
	for _, p := range sim.Store.All() {
		total += p.Mass
	}
	if math.Abs(total-3.0) > 1e-12 {
		t.Errorf("expected total mass 3.0, got %v", total)
	}
}

func TestFigureEightInitialMomentumIsZero(t *testing.T) {
	sim := FigureEight()
	p := metrics.TotalMomentum(sim)
	if p.Len() > 1e-9 {
		t.Errorf("the figure-eight's three equal masses are constructed to start with zero net momentum, got %v", p)
	}
}

// TestFigureEightEnergyBoundedOverOnePeriod integrates the classic
// figure-eight solution for roughly one period and checks that energy
// stays close to its initial value, the torture test DirectSum and
// leapfrog are meant to survive.
func TestFigureEightEnergyBoundedOverOnePeriod(t *testing.T) {
	sim := FigureEight()
	if err := sim.SetIntegratorName("leapfrog"); err != nil {
		t.Fatalf("leapfrog should be registered: %v", err)
	}
	sim.Dt = 0.0001

	e0 := metrics.TotalEnergy(sim)
	const period = 6.3259 // known period of the Chenciner-Montgomery solution
	if err := sim.Integrate(context.Background(), period); err != nil {
		t.Fatalf("integration failed: %v", err)
	}

	drift := math.Abs(metrics.TotalEnergy(sim)-e0) / math.Abs(e0)
	if drift > 1e-2 {
		t.Errorf("figure-eight energy drift too large over one period: %e", drift)
	}
}
