// Package physics provides gravity evaluators and canonical scenario
// builders on top of internal/dynamo's particle store and driver.
//
//   - [DirectSum]: O(N^2) gravity, the dynamo.Force implementation used
//     by every preset and by internal/config's scenario loader.
//   - [FigureEight]: the equal-mass three-body figure-eight solution,
//     a standard torture test for an integrator's energy behavior.
package physics
