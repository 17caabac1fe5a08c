package sim

import (
	"context"
	"sync"

	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/theme"
)

// Ensemble records the same configuration under consecutive seeds, one
// goroutine per run. Each run owns its animator and host; only the theme
// cell is shared.
type Ensemble struct {
	theme     *theme.Cell
	numRuns   int
	seedStart int64
}

func NewEnsemble(cell *theme.Cell, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{theme: cell, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			s := New(e.theme)
			for _, m := range metrics.Default() {
				s.AddMetric(m)
			}
			results[idx], errs[idx] = s.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
