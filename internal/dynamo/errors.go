package dynamo

import (
	"errors"
	"fmt"
)

// Configuration errors leave the Simulation unchanged (transactional add).
var (
	ErrInvalidOrbit      = errors.New("dynamo: invalid orbit (geometrically impossible elements)")
	ErrDuplicateHash     = errors.New("dynamo: hash already in use")
	ErrNoParticles       = errors.New("dynamo: simulation has no particles")
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")
	ErrNotFound          = errors.New("dynamo: no particle at that index or hash")
	ErrIndexInvalidated  = errors.New("dynamo: index used after a mutation invalidated it")

	// ErrSplittingInvalidated is returned by an Integrator.Step when the
	// integrator requires a force splitting (e.g. Wisdom-Holman's
	// Kepler/interaction split) and the Simulation has additional,
	// non-gravitational forces registered.
	ErrSplittingInvalidated = errors.New("dynamo: additional forces invalidate this integrator's splitting")
)

// EscapeError reports that a particle exited the configured
// exit_max_distance. The offending particle is not removed; the caller
// must locate and remove it through Store and may then call Integrate
// again.
type EscapeError struct {
	Time  float64
	Hash  uint64
	Index int
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("A particle escaped (r>exit_max_distance) at t=%.6f", e.Time)
}

func (e *EscapeError) Unwrap() error { return errEscape }

var errEscape = errors.New("dynamo: escape detected")

// IsEscape reports whether err is (or wraps) an escape failure.
func IsEscape(err error) bool { return errors.Is(err, errEscape) }

// EncounterError reports that two particles came within
// exit_min_distance of each other.
type EncounterError struct {
	Time         float64
	HashA, HashB uint64
}

func (e *EncounterError) Error() string {
	return fmt.Sprintf("A close encounter occurred (r<exit_min_distance) at t=%.6f", e.Time)
}

func (e *EncounterError) Unwrap() error { return errEncounter }

var errEncounter = errors.New("dynamo: encounter detected")

// IsEncounter reports whether err is (or wraps) an encounter failure.
func IsEncounter(err error) bool { return errors.Is(err, errEncounter) }

// InterruptedError reports that integration stopped at a step boundary
// because the caller's cancellation flag (or context) fired. Partial
// steps are never rolled back further than the last completed boundary.
type InterruptedError struct {
	Time float64
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("integration interrupted at t=%.6f", e.Time)
}

func (e *InterruptedError) Unwrap() error { return errInterrupted }

var errInterrupted = errors.New("dynamo: interrupted")

// IsInterrupted reports whether err is (or wraps) an interruption.
func IsInterrupted(err error) bool { return errors.Is(err, errInterrupted) }
