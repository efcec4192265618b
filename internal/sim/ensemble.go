package sim

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/bonsai/internal/bonsai"
)

// Ensemble grows one tree per seed in [seedStart, seedStart+numRuns).
type Ensemble struct {
	base      *Runner
	opts      bonsai.Options
	numRuns   int
	seedStart uint64
	workers   int
}

func NewEnsemble(r *Runner, opts bonsai.Options, numRuns int, seedStart uint64) *Ensemble {
	if seedStart == 0 {
		seedStart = 1
	}
	return &Ensemble{
		base:      r,
		opts:      opts,
		numRuns:   numRuns,
		seedStart: seedStart,
		workers:   runtime.NumCPU(),
	}
}

// Run returns the finished trees in seed order. Runs that failed are left
// out, and the first failure is returned alongside the rest.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)
	sem := make(chan struct{}, max(e.workers, 1))

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			opts := e.opts
			opts.Seed = e.seedStart + uint64(idx)
			tree, err := bonsai.Plant(opts)
			if err != nil {
				errs[idx] = err
				return
			}

			runner := New(e.base.metrics...)
			results[idx], errs[idx] = runner.Run(ctx, tree, nil, cfg)
		}(i)
	}

	wg.Wait()

	var firstErr error
	finished := make([]*Result, 0, e.numRuns)
	for i, err := range errs {
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		finished = append(finished, results[i])
	}

	return finished, firstErr
}
