package dynamo

import (
	"context"
	"sync"
)

// Ensemble runs independent copies of a base Simulation in parallel, each
// with its own seed offset. Copies do not share any mutable state; Store
// slices are deep-copied per run.
type Ensemble struct {
	base      *Simulation
	numRuns   int
	seedStart int64
}

// NewEnsemble builds an Ensemble of numRuns independent clones of base,
// seeded starting at seedStart and incrementing by one per run. Seeds are
// informational only here (the core engine is deterministic); callers that
// want seed-dependent behavior (e.g. randomized initial conditions) read
// EnsembleRun.Seed before building their particle set.
func NewEnsemble(base *Simulation, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart}
}

// EnsembleRun is one member of an Ensemble, handed to build so the caller
// can populate a fresh Simulation before it is integrated.
type EnsembleRun struct {
	Seed int64
	Sim  *Simulation
}

// Run builds numRuns clones via build, integrates each to target in
// parallel, and returns their final Simulations in input order. If any
// run returns an error, Run returns the first one encountered (by index)
// together with the partial results, so the caller can still inspect
// successful runs.
func (e *Ensemble) Run(ctx context.Context, target float64, build func(r *EnsembleRun)) ([]*Simulation, error) {
	sims := make([]*Simulation, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sim := e.base.Clone()
			run := &EnsembleRun{Seed: e.seedStart + int64(idx), Sim: sim}
			if build != nil {
				build(run)
			}
			errs[idx] = run.Sim.Integrate(ctx, target)
			sims[idx] = run.Sim
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return sims, err
		}
	}
	return sims, nil
}

// ParallelFor executes fn over disjoint chunks of the range [0, n),
// joining all workers before returning. Used by force evaluators to
// split per-particle work across a fixed-size worker pool; callers that
// need it sequential (n small) get a direct call with no goroutines.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	const numWorkers = 4
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
