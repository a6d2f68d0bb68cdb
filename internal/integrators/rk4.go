package integrators

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

// RK4 is a fixed-step, non-symplectic classical Runge-Kutta integrator.
// It is cheap per step (4 force evaluations) and useful for short
// integrations or tests where long-term symplectic energy behavior
// doesn't matter, but its energy error grows unboundedly over long
// runs, unlike Leapfrog or WHFast.
type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) RequiresSplitting() bool { return false }

func (r *RK4) Step(force dynamo.Force, particles []dynamo.Particle, g, t, dt float64) (float64, error) {
	n := len(particles)

	pos := make([]mgl64.Vec3, n)
	vel := make([]mgl64.Vec3, n)
	for i, p := range particles {
		pos[i], vel[i] = p.Pos, p.Vel
	}

	eval := func(p, v []mgl64.Vec3) []mgl64.Vec3 {
		tmp := make([]dynamo.Particle, n)
		copy(tmp, particles)
		for i := range tmp {
			tmp[i].Pos, tmp[i].Vel = p[i], v[i]
		}
		return force.Accelerations(tmp, g)
	}

	add := func(base []mgl64.Vec3, rate []mgl64.Vec3, scale float64) []mgl64.Vec3 {
		out := make([]mgl64.Vec3, n)
		for i := range out {
			out[i] = base[i].Add(rate[i].Mul(scale))
		}
		return out
	}

	k1v := eval(pos, vel)
	k1x := vel

	pos2 := add(pos, k1x, dt/2)
	vel2 := add(vel, k1v, dt/2)
	k2v := eval(pos2, vel2)
	k2x := vel2

	pos3 := add(pos, k2x, dt/2)
	vel3 := add(vel, k2v, dt/2)
	k3v := eval(pos3, vel3)
	k3x := vel3

	pos4 := add(pos, k3x, dt)
	vel4 := add(vel, k3v, dt)
	k4v := eval(pos4, vel4)
	k4x := vel4

	dt6 := dt / 6.0
	for i := range particles {
		particles[i].Pos = pos[i].Add(
			k1x[i].Add(k2x[i].Mul(2)).Add(k3x[i].Mul(2)).Add(k4x[i]).Mul(dt6))
		particles[i].Vel = vel[i].Add(
			k1v[i].Add(k2v[i].Mul(2)).Add(k3v[i].Mul(2)).Add(k4v[i]).Mul(dt6))
	}

	return dt, nil
}

func init() {
	dynamo.RegisterIntegrator("rk4", func() dynamo.Integrator { return NewRK4() })
}
