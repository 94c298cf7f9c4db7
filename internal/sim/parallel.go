package sim

import (
	"context"
	"sync"
)

// Ensemble runs several independent worlds from the same config, each with
// its own seed, one goroutine per world.
type Ensemble struct {
	cfg       Config
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

// NewEnsemble prepares numRuns worlds seeded seedStart, seedStart+1, ...
// metrics is called once per world so that no metric is shared between
// goroutines; it may be nil.
func NewEnsemble(cfg Config, numRuns int, seedStart int64, metrics func() []Metric) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, frames int, dt float64) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.cfg
			cfg.Rand = nil
			cfg.Seed = e.seedStart + int64(idx)

			w := New(cfg)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					w.AddMetric(m)
				}
			}
			results[idx], errs[idx] = w.Run(ctx, frames, dt)
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
