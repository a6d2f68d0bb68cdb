package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/physics"

	_ "github.com/Ruth-Huang6012/REBOUND-2planets/internal/integrators"
)

const (
	DefaultDt         = 0.01
	DefaultDuration   = 2 * math.Pi
	DefaultG          = 1.0
	DefaultIntegrator = "leapfrog"
)

// ParticleConfig is the YAML-serializable form of dynamo.ParticleDescriptor.
// Primary is a string hashed with dynamo.HashString, rather than a raw
// uint64, so scenario files stay human-editable.
type ParticleConfig struct {
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius,omitempty"`

	X, Y, Z    float64 `yaml:"x,omitempty"`
	VX, VY, VZ float64 `yaml:"vx,omitempty"`

	UseOrbit bool    `yaml:"use_orbit,omitempty"`
	A        float64 `yaml:"a,omitempty"`
	E        float64 `yaml:"e,omitempty"`
	Inc      float64 `yaml:"inc,omitempty"`
	Omega    float64 `yaml:"omega,omitempty"`
	ArgPeri  float64 `yaml:"arg_peri,omitempty"`
	F        float64 `yaml:"f,omitempty"`

	UseAltAngles bool    `yaml:"use_alt_angles,omitempty"`
	MeanAnomaly  float64 `yaml:"mean_anomaly,omitempty"`
	Pomega       float64 `yaml:"pomega,omitempty"`
	Lambda       float64 `yaml:"lambda,omitempty"`

	Primary string `yaml:"primary,omitempty"`
	Hash    string `yaml:"hash,omitempty"`
	Name    string `yaml:"name,omitempty"`
}

// Scenario is a complete, loadable simulation setup: integrator choice,
// physical constants, watchdog thresholds, and the particle list.
type Scenario struct {
	Name       string  `yaml:"name"`
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	G          float64 `yaml:"g"`
	Duration   float64 `yaml:"duration"`
	Softening  float64 `yaml:"softening"`
	Seed       int64   `yaml:"seed"`

	// ExitMaxDistance/ExitMinDistance <= 0 means "disabled", since YAML
	// has no native representation for +Inf; Build translates 0 to
	// math.Inf(1) for the max and leaves 0 as 0 for the min, matching
	// dynamo's own defaults.
	ExitMaxDistance float64 `yaml:"exit_max_distance,omitempty"`
	ExitMinDistance float64 `yaml:"exit_min_distance,omitempty"`

	Particles []ParticleConfig `yaml:"particles"`
}

// DefaultScenario returns a Scenario with the engine's own defaults:
// leapfrog, dt=0.01, G=1, one full default-unit orbital period, no
// escape bounds, no particles.
func DefaultScenario() *Scenario {
	return &Scenario{
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		G:          DefaultG,
		Duration:   DefaultDuration,
	}
}

// Load reads a Scenario from a YAML file, starting from
// DefaultScenario so unset fields keep the engine's own defaults.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultScenario()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Scenario) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs a ready-to-integrate Simulation from the scenario:
// DirectSum gravity, the named integrator, watchdog thresholds, and
// every configured particle added in order. Particle-add failures
// (ErrInvalidOrbit, ErrDuplicateHash) abort the build with the
// offending particle's index folded into the error via fmt.Errorf's
// %w, leaving the caller a returned nil Simulation rather than a
// partially populated one.
func (c *Scenario) Build() (*dynamo.Simulation, error) {
	sim := dynamo.NewSimulation()
	sim.G = c.G
	if sim.G == 0 {
		sim.G = DefaultG
	}
	sim.Dt = c.Dt
	if sim.Dt == 0 {
		sim.Dt = DefaultDt
	}
	sim.Force = physics.DirectSum{Softening: c.Softening}

	integratorName := c.Integrator
	if integratorName == "" {
		integratorName = DefaultIntegrator
	}
	if err := sim.SetIntegratorName(integratorName); err != nil {
		return nil, err
	}

	if c.ExitMaxDistance > 0 {
		sim.ExitMaxDistance = c.ExitMaxDistance
	} else {
		sim.ExitMaxDistance = math.Inf(1)
	}
	sim.ExitMinDistance = c.ExitMinDistance

	for i, pc := range c.Particles {
		if _, err := sim.Store.Add(toDescriptor(pc)); err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
	}

	return sim, nil
}

func toDescriptor(pc ParticleConfig) dynamo.ParticleDescriptor {
	d := dynamo.ParticleDescriptor{
		Mass: pc.Mass, Radius: pc.Radius,
		X: pc.X, Y: pc.Y, Z: pc.Z,
		VX: pc.VX, VY: pc.VY, VZ: pc.VZ,
		UseOrbit: pc.UseOrbit,
		A:        pc.A, E: pc.E, Inc: pc.Inc, Omega: pc.Omega, ArgPeri: pc.ArgPeri, F: pc.F,
		HasAlt:      pc.UseAltAngles,
		MeanAnomaly: pc.MeanAnomaly, Pomega: pc.Pomega, Lambda: pc.Lambda,
		Name: pc.Name,
	}
	if pc.Primary != "" {
		d.HasPrimary = true
		d.Primary = dynamo.HashString(pc.Primary)
	}
	if pc.Hash != "" {
		d.HashStr = pc.Hash
	}
	return d
}
