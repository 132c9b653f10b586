package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New(metrics ...Metric) *Simulator {
	return &Simulator{
		metrics:   metrics,
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps w for cfg.Ticks ticks. On cancellation the partial result is
// returned along with ctx.Err().
func (s *Simulator) Run(ctx context.Context, w *cloth.World, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Series:  make(map[string][]float64),
		Metrics: make(map[string]float64),
		Total:   w.NumConstraints(),
	}

	for _, m := range s.metrics {
		m.Reset()
		if b, ok := m.(Baseliner); ok {
			b.Baseline(w)
		}
		if _, ok := m.(Sampler); ok {
			result.Series[m.Name()] = make([]float64, 0, cfg.Ticks)
		}
	}

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.finish(w, result)
			return result, ctx.Err()
		default:
		}

		torn := w.Tick(cloth.TickInput{
			Forces: cfg.Forces,
			Bounds: cfg.Bounds,
			Events: cfg.Script[i],
		})
		for _, idx := range torn {
			result.Tears = append(result.Tears, Tear{Tick: i, Constraint: idx})
		}

		if !finite(w) {
			s.finish(w, result)
			return result, SimError{Tick: i, Message: "particle position is not finite"}
		}

		for _, m := range s.metrics {
			m.Observe(w, i)
			if sm, ok := m.(Sampler); ok {
				result.Series[m.Name()] = append(result.Series[m.Name()], sm.Current())
			}
		}
		for _, obs := range s.observers {
			obs.OnTick(w, i, torn)
		}

		result.Ticks++
	}

	s.finish(w, result)
	return result, nil
}

func (s *Simulator) finish(w *cloth.World, result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = w.Positions()
	result.Active = w.ActiveCount()
}

func validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if err := cfg.Bounds.Validate(); err != nil {
		return err
	}
	for tick := range cfg.Script {
		if tick < 0 || tick >= cfg.Ticks {
			return fmt.Errorf("scripted event at tick %d outside run of %d ticks", tick, cfg.Ticks)
		}
	}
	return nil
}

func finite(w *cloth.World) bool {
	ps := w.Particles()
	for i := 0; i < ps.Len(); i++ {
		p := ps.Position(i)
		if math.IsNaN(p.X()) || math.IsNaN(p.Y()) || math.IsInf(p.X(), 0) || math.IsInf(p.Y(), 0) {
			return false
		}
	}
	return true
}
