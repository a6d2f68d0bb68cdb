package dynamo

import "github.com/go-gl/mathgl/mgl64"

// Particle is the basic unit of the simulation: a point mass with a
// Cartesian state and a hash identity that survives index compaction.
type Particle struct {
	Mass float64
	Radius float64
	Pos  mgl64.Vec3
	Vel  mgl64.Vec3
	Hash uint64
	Name string
}

// IsTestParticle reports whether p exerts no gravitational force.
func (p Particle) IsTestParticle() bool { return p.Mass == 0 }

// ParticleDescriptor is the union of the ways a caller can add a
// particle: full Cartesian state, or mass plus orbital elements
// relative to a primary. Zero-value fields that are not part of the
// chosen representation are ignored.
type ParticleDescriptor struct {
	Mass   float64
	Radius float64

	// Cartesian form.
	X, Y, Z       float64
	VX, VY, VZ    float64

	// Orbital-element form, interpreted relative to Primary (or the
	// first particle in the store if HasPrimary is false).
	UseOrbit bool
	A        float64 // semi-major axis
	E        float64 // eccentricity
	Inc      float64 // inclination i
	Omega    float64 // longitude of ascending node Ω
	ArgPeri  float64 // argument of periapsis ω
	F        float64 // true anomaly f

	// Alternative angle set; used instead of F/ArgPeri when HasAlt is
	// set: ArgPeri is taken as Pomega - Omega and the mean anomaly as
	// Lambda - Pomega.
	HasAlt       bool
	MeanAnomaly  float64 // M (ignored on input, derived from Lambda and Pomega)
	EccAnomaly   float64 // E (ignored on input, only set on output)
	Pomega       float64 // longitude of periapsis ϖ = Ω + ω
	Lambda       float64 // mean longitude λ = ϖ + M

	Primary    uint64 // hash of the primary
	HasPrimary bool   // false means "the first particle in the store"

	// Identity.
	Hash     uint64
	HashStr  string
	HasHash  bool
	Name     string
}

// Force computes accelerations for the particles currently held by a
// Store. Implementations must not alias the particle slice: they read
// positions/masses and write into the accelerations they return.
type Force interface {
	Accelerations(particles []Particle, g float64) []mgl64.Vec3
}

// AdditionalForce is composed on top of gravity by a Simulation before
// handing the combined acceleration field to the integrator.
type AdditionalForce interface {
	Apply(particles []Particle, t float64, accel []mgl64.Vec3)
}

// Integrator advances the particle array by one internal step. The
// returned dt is the step size actually achieved, which may differ
// from the requested one for adaptive schemes.
type Integrator interface {
	Step(force Force, particles []Particle, g, t, dt float64) (achievedDt float64, err error)
	// RequiresSplitting reports whether this integrator splits forces
	// (e.g. Kepler drift vs. interaction kick) in a way that is
	// invalidated by additional, non-gravitational forces.
	RequiresSplitting() bool
}

// AdaptiveIntegrator is an Integrator that can shorten its next
// suggested step in response to an error estimate, and that can
// restore its internal scratch state after an exact-finish short step.
type AdaptiveIntegrator interface {
	Integrator
	SuggestedDt() float64
	Checkpoint() IntegratorState
	Restore(IntegratorState)
}

// IntegratorState is an opaque snapshot of an integrator's private
// scratch state, used to undo the bookkeeping effects of a shortened
// exact-finish step.
type IntegratorState interface{}

// Observer receives a callback after every completed integration step.
type Observer interface {
	OnStep(sim *Simulation, t float64)
}

// Status is the read-only scalar snapshot returned by Simulation.Status.
type Status struct {
	Time       float64
	N          int
	Integrator string
	Dt         float64
	StepsTaken int
	WallClock  float64
	Version    string
	BuildDate  string
}
