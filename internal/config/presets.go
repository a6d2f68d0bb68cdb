package config

// Presets are the literal scenarios used as both documentation and the
// end-to-end regression fixtures, each exercising a distinct orbital
// configuration or failure mode the engine must handle correctly.
var Presets = map[string]*Scenario{
	// One full orbital period of two planets around a stationary m=1
	// primary, starting from rest at the barycenter.
	"three-body-kepler": {
		Name: "three-body-kepler", Integrator: "leapfrog", Dt: 0.001, G: 1.0, Duration: DefaultDuration,
		Particles: []ParticleConfig{
			{Mass: 1.0, Hash: "sol"},
			{Mass: 0, UseOrbit: true, A: 1.0, Hash: "earth"},
			{Mass: 0, UseOrbit: true, A: 1.52, Hash: "mars"},
		},
	},

	// A fast-moving inner body on an escape trajectory alongside two
	// bound planets; exercises EscapeError and the caller-resolves-then-
	// resumes contract.
	"escape-handling": {
		Name: "escape-handling", Integrator: "leapfrog", Dt: 0.001, G: 1.0, Duration: 20 * DefaultDuration,
		ExitMaxDistance: 50,
		Particles: []ParticleConfig{
			{Mass: 1.0, Hash: "sol"},
			{Mass: 0, X: 0.4, VX: 5.0, Hash: "mercury"},
			{Mass: 0, UseOrbit: true, A: 0.7, Hash: "venus"},
			{Mass: 0, UseOrbit: true, A: 1.0, Hash: "earth"},
		},
	},

	// Four named, distinct-position test particles for exercising hash
	// stability under Store.RemoveByHash.
	"hash-stability": {
		Name: "hash-stability", Integrator: "rk4", Dt: 0.01, G: 1.0, Duration: 1.0,
		Particles: []ParticleConfig{
			{Mass: 0, X: 1, Hash: "a"},
			{Mass: 0, X: 2, Hash: "b"},
			{Mass: 0, X: 3, Hash: "c"},
			{Mass: 0, X: 4, Hash: "d"},
		},
	},

	// Equal-mass figure-eight solution; see physics.FigureEight for the
	// literal initial conditions.
	"figure-eight": {
		Name: "figure-eight", Integrator: "leapfrog", Dt: 0.001, G: 1.0, Duration: 6.32591,
		Particles: []ParticleConfig{
			{Mass: 1.0, X: -1.0, Y: 0.0, VX: 0.347111, VY: 0.532728, Hash: "body-1"},
			{Mass: 1.0, X: 1.0, Y: 0.0, VX: 0.347111, VY: 0.532728, Hash: "body-2"},
			{Mass: 1.0, X: 0.0, Y: 0.0, VX: -0.694222, VY: -1.065456, Hash: "body-3"},
		},
	},

	// A sun plus two massive planets plus a ring of massless test
	// particles, supplementing the core scenarios with the
	// solar_system_with_testparticles usage pattern: test particles feel
	// gravity from the massive set but never perturb it or each other.
	"solar-system-test-particles": {
		Name: "solar-system-test-particles", Integrator: "whfast", Dt: 0.01, G: 1.0, Duration: 4 * DefaultDuration,
		Particles: []ParticleConfig{
			{Mass: 1.0, Hash: "sol"},
			{Mass: 3e-6, UseOrbit: true, A: 1.0, Hash: "earth"},
			{Mass: 9.5e-4, UseOrbit: true, A: 5.2, Hash: "jupiter"},
			{Mass: 0, UseOrbit: true, A: 1.3, Primary: "sol", Hash: "test-1"},
			{Mass: 0, UseOrbit: true, A: 2.1, Primary: "sol", Hash: "test-2"},
			{Mass: 0, UseOrbit: true, A: 3.4, Primary: "sol", Hash: "test-3"},
		},
	},
}

// GetPreset returns the named preset, or nil if it is not registered.
func GetPreset(name string) *Scenario {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	clone := *p
	clone.Particles = append([]ParticleConfig(nil), p.Particles...)
	return &clone
}

// ListPresets returns the names of all registered presets.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
