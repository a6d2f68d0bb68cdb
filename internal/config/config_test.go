package config

import (
	"math"
	"testing"
)

func TestDefaultScenario(t *testing.T) {
	cfg := DefaultScenario()

	if cfg.Integrator != "leapfrog" {
		t.Errorf("expected integrator leapfrog, got %s", cfg.Integrator)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.G != DefaultG {
		t.Errorf("expected G=%v, got %v", DefaultG, cfg.G)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("three-body-kepler")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Particles) != 3 {
		t.Errorf("expected 3 particles, got %d", len(cfg.Particles))
	}
	if cfg.Particles[1].Hash != "earth" {
		t.Errorf("expected second particle hash earth, got %s", cfg.Particles[1].Hash)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_ReturnsIndependentCopy(t *testing.T) {
	a := GetPreset("hash-stability")
	b := GetPreset("hash-stability")
	a.Particles[0].Hash = "mutated"
	if b.Particles[0].Hash == "mutated" {
		t.Error("GetPreset must return an independent copy of its particle slice")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected at least one preset")
	}
}

func TestScenarioBuild(t *testing.T) {
	cfg := GetPreset("three-body-kepler")
	sim, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if sim.Len() != 3 {
		t.Errorf("expected 3 particles, got %d", sim.Len())
	}
	if sim.IntegratorName != "leapfrog" {
		t.Errorf("expected leapfrog, got %s", sim.IntegratorName)
	}
	if !math.IsInf(sim.ExitMaxDistance, 1) {
		t.Error("expected ExitMaxDistance to default to +Inf when unset")
	}
}

func TestScenarioBuild_UnknownIntegrator(t *testing.T) {
	cfg := DefaultScenario()
	cfg.Integrator = "not-a-real-integrator"
	cfg.Particles = []ParticleConfig{{Mass: 1.0}}
	if _, err := cfg.Build(); err == nil {
		t.Error("expected an error for an unknown integrator")
	}
}
