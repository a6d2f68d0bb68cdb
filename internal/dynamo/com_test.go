package dynamo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMoveToCOMZeroesBarycenter(t *testing.T) {
	sim := NewSimulation()
	mustAdd(t, sim, ParticleDescriptor{Mass: 1.0, X: -1.0, VY: 0.5, HashStr: "a"})
	mustAdd(t, sim, ParticleDescriptor{Mass: 3.0, X: 1.0, VY: -0.2, HashStr: "b"})

	sim.MoveToCOM()

	pos, vel, mass := sim.COM()
	if mass != 4.0 {
		t.Fatalf("expected total mass 4, got %v", mass)
	}
	if pos.Len() > 1e-12 {
		t.Errorf("expected COM position at origin after MoveToCOM, got %v", pos)
	}
	if vel.Len() > 1e-12 {
		t.Errorf("expected COM velocity at zero after MoveToCOM, got %v", vel)
	}
}

// TestMoveToCOMIsIdempotent checks that calling MoveToCOM a second
// time shifts positions by a negligible amount, since the system is
// already centered after the first call.
func TestMoveToCOMIsIdempotent(t *testing.T) {
	sim := NewSimulation()
	mustAdd(t, sim, ParticleDescriptor{Mass: 1.0, X: -1.0, VY: 0.5, HashStr: "a"})
	mustAdd(t, sim, ParticleDescriptor{Mass: 3.0, X: 1.0, VY: -0.2, HashStr: "b"})

	sim.MoveToCOM()
	before := make([]mgl64.Vec3, sim.Store.Len())
	for i, p := range sim.Store.All() {
		before[i] = p.Pos
	}

	sim.MoveToCOM()
	for i, p := range sim.Store.All() {
		if p.Pos.Sub(before[i]).Len() > 1e-14 {
			t.Errorf("particle %d moved by %v on a second MoveToCOM call", i, p.Pos.Sub(before[i]).Len())
		}
	}
}

func TestMoveToCOMEmptyStoreIsNoop(t *testing.T) {
	sim := NewSimulation()
	sim.MoveToCOM() // must not panic on an empty store
	pos, vel, mass := sim.COM()
	if mass != 0 || pos.Len() != 0 || vel.Len() != 0 {
		t.Errorf("expected all-zero COM for an empty store, got pos=%v vel=%v mass=%v", pos, vel, mass)
	}
}

func mustAdd(t *testing.T, sim *Simulation, d ParticleDescriptor) {
	t.Helper()
	if _, err := sim.Store.Add(d); err != nil {
		t.Fatalf("add failed: %v", err)
	}
}
