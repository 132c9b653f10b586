package sim

import (
	"context"
	"sync"

	"github.com/san-kum/clothsim/internal/cloth"
)

// WorldFactory builds a fresh world relaxed with the given sweep count.
type WorldFactory func(sweeps int) (*cloth.World, error)

// Ensemble runs the same scene at several sweep counts. Each run gets its
// own world and its own metrics, so runs share no mutable state.
type Ensemble struct {
	factory    WorldFactory
	newMetrics func() []Metric
}

func NewEnsemble(factory WorldFactory, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{factory: factory, newMetrics: newMetrics}
}

// Run returns one result per entry of sweeps, in the same order.
func (e *Ensemble) Run(ctx context.Context, sweeps []int, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(sweeps))
	errs := make([]error, len(sweeps))

	var wg sync.WaitGroup
	for i, k := range sweeps {
		wg.Add(1)
		go func(idx, k int) {
			defer wg.Done()

			w, err := e.factory(k)
			if err != nil {
				errs[idx] = err
				return
			}

			var metrics []Metric
			if e.newMetrics != nil {
				metrics = e.newMetrics()
			}
			results[idx], errs[idx] = New(metrics...).Run(ctx, w, cfg)
		}(i, k)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
