package dynamo

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	controller Controller
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator, controller Controller) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// System returns the simulated system.
func (s *Simulator) System() System { return s.dyn }

// Run integrates from x0 over the grid described by cfg. Metrics and
// observers see every sample in order. A partial result is returned with
// any integration error.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if cfg.Samples <= 0 {
		return nil, fmt.Errorf("samples must be positive, got %d", cfg.Samples)
	}
	if cfg.Samples > 1 && cfg.Stop <= cfg.Start {
		return nil, fmt.Errorf("stop must be after start, got [%f, %f]", cfg.Start, cfg.Stop)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result, err := solve(ctx, s.dyn, s.integrator, s.controller, x0, cfg.Grid(), cfg, s.observe)
	if result == nil {
		return nil, err
	}

	if len(result.States) > 0 {
		initialEnergy := s.computeEnergy(result.States[0])
		finalEnergy := s.computeEnergy(result.Final())
		if initialEnergy != 0 && !math.IsNaN(initialEnergy) {
			result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, err
}

func (s *Simulator) observe(x State, u Control, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, u, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, u, t)
	}
}

func (s *Simulator) computeEnergy(x State) float64 {
	if ec, ok := s.dyn.(Hamiltonian); ok {
		return ec.Energy(x)
	}
	return 0
}
