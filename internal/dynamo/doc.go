// Package dynamo provides the particle store and integration driver for
// N-body gravitational simulation.
//
// The package defines the fundamental types used across the engine:
//
//   - [Particle]: position, velocity, mass and a stable hash identity
//   - [Store]: the particle container, addressable by index or hash
//   - [Force]: pluggable acceleration evaluator
//   - [Integrator]: pluggable stepping scheme
//   - [Simulation]: orchestrates a run via [Simulation.Integrate]
//
// # Example
//
//	sim := dynamo.NewSimulation()
//	sim.G = 1.0
//	sim.Force = physics.DirectSum{}
//	sim.Store.Add(dynamo.ParticleDescriptor{Mass: 1.0})
//	sim.Store.Add(dynamo.ParticleDescriptor{UseOrbit: true, A: 1.0, HashStr: "earth"})
//	sim.MoveToCOM()
//	err := sim.Integrate(context.Background(), 2*math.Pi)
//
// # Thread Safety
//
// Simulation instances are NOT safe for concurrent mutation. Reads
// between calls to Integrate are safe. For independent parallel runs,
// use [Ensemble].
package dynamo
