package dynamo

import "github.com/go-gl/mathgl/mgl64"

// MoveToCOM recomputes the mass-weighted center of position and velocity
// and subtracts both from every particle, eliminating drift of the
// inertial frame. It is a no-op on an empty store and leaves a
// store with zero total mass untouched (all particles are test
// particles; there is nothing to weight by).
//
// Calling MoveToCOM twice shifts positions the second time by a vector
// bounded by machine epsilon times the system's characteristic scale:
// the mass-weighted sums computed the first time are already ~0, so the
// second correction is pure floating-point noise.
func (s *Simulation) MoveToCOM() {
	store := s.Store
	n := len(store.particles)
	if n == 0 {
		return
	}

	var totalMass float64
	var r, v mgl64.Vec3
	for _, p := range store.particles {
		r = r.Add(p.Pos.Mul(p.Mass))
		v = v.Add(p.Vel.Mul(p.Mass))
		totalMass += p.Mass
	}
	if totalMass == 0 {
		return
	}
	r = r.Mul(1 / totalMass)
	v = v.Mul(1 / totalMass)

	for i := range store.particles {
		store.particles[i].Pos = store.particles[i].Pos.Sub(r)
		store.particles[i].Vel = store.particles[i].Vel.Sub(v)
	}
}

// COM returns the current mass-weighted center of position and
// velocity without mutating the store.
func (s *Simulation) COM() (pos, vel mgl64.Vec3, totalMass float64) {
	for _, p := range s.Store.particles {
		pos = pos.Add(p.Pos.Mul(p.Mass))
		vel = vel.Add(p.Vel.Mul(p.Mass))
		totalMass += p.Mass
	}
	if totalMass != 0 {
		pos = pos.Mul(1 / totalMass)
		vel = vel.Mul(1 / totalMass)
	}
	return pos, vel, totalMass
}
