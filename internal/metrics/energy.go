package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

// TotalEnergy returns the sum of kinetic and gravitational potential
// energy of every particle in sim, using sim.G and an O(N^2) pass over
// particle pairs for the potential term.
func TotalEnergy(sim *dynamo.Simulation) float64 {
	particles := sim.Store.All()
	var energy float64
	for _, p := range particles {
		energy += 0.5 * p.Mass * p.Vel.Dot(p.Vel)
	}
	for i := 0; i < len(particles); i++ {
		for j := i + 1; j < len(particles); j++ {
			r := particles[i].Pos.Sub(particles[j].Pos).Len()
			if r > 0 {
				energy -= sim.G * particles[i].Mass * particles[j].Mass / r
			}
		}
	}
	return energy
}

// TotalMomentum returns sum(m_i * v_i).
func TotalMomentum(sim *dynamo.Simulation) mgl64.Vec3 {
	var p mgl64.Vec3
	for _, particle := range sim.Store.All() {
		p = p.Add(particle.Vel.Mul(particle.Mass))
	}
	return p
}

// TotalAngularMomentum returns sum(m_i * r_i x v_i) about the inertial
// origin.
func TotalAngularMomentum(sim *dynamo.Simulation) mgl64.Vec3 {
	var l mgl64.Vec3
	for _, particle := range sim.Store.All() {
		l = l.Add(particle.Pos.Cross(particle.Vel).Mul(particle.Mass))
	}
	return l
}

// EnergyDrift is a dynamo.Observer that tracks the largest fractional
// deviation of total energy from its value at the first observed step.
// Attach it with Simulation.AddObserver to watch conservation live
// instead of only checking it after a run finishes.
type EnergyDrift struct {
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) OnStep(sim *dynamo.Simulation, t float64) {
	energy := TotalEnergy(sim)
	if e.samples == 0 {
		e.initial = energy
	}
	e.current = energy
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

// Value returns the largest fractional energy drift observed so far.
func (e *EnergyDrift) Value() float64 { return e.maxDrift }

// Current returns the most recently observed total energy.
func (e *EnergyDrift) Current() float64 { return e.current }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.current = 0
	e.maxDrift = 0
	e.samples = 0
}
