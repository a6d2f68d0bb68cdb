package dynamo

import (
	"context"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Simulation drives a Store forward in time under a pluggable Force and
// Integrator. It embeds *Store, so sim.G, sim.Add, sim.Len and friends
// resolve directly against the particle container; Simulation adds the
// time-evolution state on top.
type Simulation struct {
	*Store

	T  float64
	Dt float64

	IntegratorName string
	Integrator     Integrator

	// Force is the gravity evaluator; it must be set before Integrate is
	// called (internal/physics.DirectSum in the common case).
	Force Force

	ExitMaxDistance float64
	ExitMinDistance float64

	AdditionalForces []AdditionalForce
	Observers        []Observer

	StepsTaken int
	WallClock  time.Duration

	Version   string
	BuildDate string
}

// NewSimulation returns an empty Simulation with G=1, dt=0.01, no escape
// bounds, and the leapfrog integrator selected.
func NewSimulation() *Simulation {
	s := &Simulation{
		Store:           NewStore(),
		Dt:              0.01,
		ExitMaxDistance: math.Inf(1),
		ExitMinDistance: 0,
		Version:         Version,
		BuildDate:       BuildDate,
	}
	_ = s.SetIntegratorName("leapfrog")
	return s
}

// SetIntegratorName selects an integrator by symbolic name, constructing
// a fresh one so its private scratch state always starts clean. Unknown
// names, including the recognized-but-unimplemented "mercurius" and
// "saba" identifiers, report ErrUnknownIntegrator and leave the current
// selection untouched.
func (s *Simulation) SetIntegratorName(name string) error {
	integ, err := newIntegrator(name)
	if err != nil {
		return err
	}
	s.IntegratorName = name
	s.Integrator = integ
	return nil
}

// AddObserver registers a callback invoked after every completed step.
func (s *Simulation) AddObserver(o Observer) { s.Observers = append(s.Observers, o) }

// AddForce registers a non-gravitational force, composed on top of
// gravity inside the force evaluator contract. Integrators that split
// gravity from everything else (whfast) refuse to run once any
// AdditionalForce is registered; see RequiresSplitting.
func (s *Simulation) AddForce(f AdditionalForce) { s.AdditionalForces = append(s.AdditionalForces, f) }

// Clone deep-copies the particle store and scalar state into a new,
// independent Simulation with a freshly constructed integrator. It does
// not copy Observers (they typically close over the original
// Simulation) or WallClock/StepsTaken, since a clone starts a new run.
func (s *Simulation) Clone() *Simulation {
	c := &Simulation{
		Store:           s.Store.clone(),
		T:               s.T,
		Dt:              s.Dt,
		ExitMaxDistance: s.ExitMaxDistance,
		ExitMinDistance: s.ExitMinDistance,
		Force:           s.Force,
		Version:         s.Version,
		BuildDate:       s.BuildDate,
	}
	c.AdditionalForces = append([]AdditionalForce(nil), s.AdditionalForces...)
	if s.IntegratorName != "" {
		_ = c.SetIntegratorName(s.IntegratorName)
	}
	return c
}

// Integrate advances the simulation to target, shortening the final
// internal step so that T lands on target exactly (exact_finish=true).
// If target equals the current time it returns immediately without
// touching any state. On an escape, encounter, or interruption, T is
// left at the violating step's boundary so the caller can inspect and
// fix up the particle set before calling Integrate again.
//
// Dt is treated as a ceiling rather than a fixed step: when the
// selected Integrator also implements AdaptiveIntegrator, its
// SuggestedDt() from the previous step can shrink the next requested
// step below Dt, but never grow it past Dt.
func (s *Simulation) Integrate(ctx context.Context, target float64) error {
	return s.integrate(ctx, target, true)
}

// IntegrateUntil is Integrate with explicit control over exact_finish:
// when false, the driver stops at the first completed step whose end is
// at or past target, without shortening that step.
func (s *Simulation) IntegrateUntil(ctx context.Context, target float64, exactFinish bool) error {
	return s.integrate(ctx, target, exactFinish)
}

func (s *Simulation) integrate(ctx context.Context, target float64, exactFinish bool) error {
	if s.Store.Len() == 0 {
		return ErrNoParticles
	}
	if s.Integrator == nil {
		return ErrUnknownIntegrator
	}
	if target == s.T {
		return nil
	}
	if s.Integrator.RequiresSplitting() && len(s.AdditionalForces) > 0 {
		return ErrSplittingInvalidated
	}

	forward := target > s.T
	started := time.Now()
	defer func() { s.WallClock += time.Since(started) }()

	adaptive, isAdaptive := s.Integrator.(AdaptiveIntegrator)
	var nextStep float64 // 0 means "no adaptive suggestion yet"

	for stepping(s.T, target, forward) {
		select {
		case <-ctx.Done():
			return &InterruptedError{Time: s.T}
		default:
		}

		remaining := target - s.T
		maxStep := math.Abs(s.Dt)
		step := maxStep
		if isAdaptive && nextStep > 0 && nextStep < maxStep {
			step = nextStep
		}
		requested := step
		if !forward {
			requested = -requested
		}

		landsOnTarget := (forward && s.T+requested >= target) || (!forward && s.T+requested <= target)

		dt := requested
		var checkpoint IntegratorState
		shortened := false
		if landsOnTarget && exactFinish {
			dt = remaining
			if isAdaptive {
				checkpoint = adaptive.Checkpoint()
				shortened = true
			}
		}

		achieved, err := s.Integrator.Step(s.force(), s.Store.particles, s.Store.G, s.T, dt)
		if err != nil {
			return err
		}
		s.T += achieved
		s.StepsTaken++

		if shortened {
			adaptive.Restore(checkpoint)
		}
		if isAdaptive {
			nextStep = adaptive.SuggestedDt()
		}

		if err := s.checkBounds(); err != nil {
			return err
		}

		for _, obs := range s.Observers {
			obs.OnStep(s, s.T)
		}

		if !exactFinish && landsOnTarget {
			break
		}
	}
	return nil
}

func stepping(t, target float64, forward bool) bool {
	if forward {
		return t < target
	}
	return t > target
}

// force composes gravity with any registered additional forces into a
// single Force so the integrator only ever sees one acceleration field.
func (s *Simulation) force() Force {
	if len(s.AdditionalForces) == 0 {
		return s.Force
	}
	return &combinedForce{base: s.Force, extra: s.AdditionalForces, t: s.T}
}

type combinedForce struct {
	base  Force
	extra []AdditionalForce
	t     float64
}

func (c *combinedForce) Accelerations(particles []Particle, g float64) []mgl64.Vec3 {
	accel := c.base.Accelerations(particles, g)
	for _, f := range c.extra {
		f.Apply(particles, c.t, accel)
	}
	return accel
}

// checkBounds implements the escape/encounter watchdog. Distances are
// measured from the inertial origin, which only coincides with the
// barycenter after the caller has called MoveToCOM; that convention is
// deliberate, not a bug, and matches the documented behavior of the
// escape check this engine's watchdog is modeled on.
func (s *Simulation) checkBounds() error {
	ps := s.Store.particles

	if !math.IsInf(s.ExitMaxDistance, 1) {
		limit2 := s.ExitMaxDistance * s.ExitMaxDistance
		for i, p := range ps {
			if p.Pos.Dot(p.Pos) > limit2 {
				return &EscapeError{Time: s.T, Hash: p.Hash, Index: i}
			}
		}
	}

	if s.ExitMinDistance > 0 {
		for i := 0; i < len(ps); i++ {
			for j := i + 1; j < len(ps); j++ {
				if ps[i].Pos.Sub(ps[j].Pos).Len() < s.ExitMinDistance {
					return &EncounterError{Time: s.T, HashA: ps[i].Hash, HashB: ps[j].Hash}
				}
			}
		}
	}
	return nil
}
