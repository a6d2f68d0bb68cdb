// Package integrators provides concrete dynamo.Integrator
// implementations, registered with dynamo by symbolic name so that
// internal/config and the CLI can select one by string:
//
//   - "leapfrog": kick-drift-kick, symplectic, the default.
//   - "whfast": Wisdom-Holman Kepler-drift + interaction-kick split.
//   - "ias15": adaptive embedded Runge-Kutta, for close encounters.
//   - "rk4": fixed-step classical Runge-Kutta, for short test runs.
//
// "mercurius" and "saba" are valid symbolic names with no registered
// factory; selecting them returns dynamo.ErrUnknownIntegrator, same as
// any other unrecognized name.
package integrators
