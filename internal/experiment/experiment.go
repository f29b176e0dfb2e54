package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/logging"
)

// ModelName is the only model the registry knows.
const ModelName = "lotka_volterra"

type Experiment struct {
	cfg       *config.Config
	system    dynamo.System
	simulator *dynamo.Simulator
	logger    *slog.Logger
	traced    bool
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:    cfg,
		logger: logging.Discard(),
	}
}

// FromConfig validates cfg and wires model, integrator, controller and the
// default metrics from the registry.
func FromConfig(cfg *config.Config, reg *Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = NewRegistry()
	}

	params := map[string]float64{
		"alpha": cfg.Params.Alpha,
		"beta":  cfg.Params.Beta,
		"delta": cfg.Params.Delta,
		"gamma": cfg.Params.Gamma,
	}
	dyn, err := reg.GetModel(ModelName, params)
	if err != nil {
		return nil, err
	}

	integ, err := reg.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	ctrl, err := reg.GetController(cfg.Controller, cfg.GetControllerParams())
	if err != nil {
		return nil, err
	}

	e := New(cfg)
	if err := e.Setup(dyn, integ, ctrl, reg.DefaultMetrics(dyn)); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Experiment) Setup(dyn dynamo.System, integrator dynamo.Integrator, controller dynamo.Controller, metrics []dynamo.Metric) error {
	if dyn == nil || integrator == nil {
		return fmt.Errorf("experiment needs a system and an integrator")
	}
	e.system = dyn
	e.simulator = dynamo.New(dyn, integrator, controller)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

// WithLogger sets the logger used for run summaries and, at trace level,
// every sample.
func (e *Experiment) WithLogger(logger *slog.Logger) *Experiment {
	if logger == nil {
		return e
	}
	e.logger = logger
	return e
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	if !e.traced && e.logger.Enabled(ctx, logging.LevelTrace) {
		e.simulator.AddObserver(logging.NewSampleLogger(e.logger))
		e.traced = true
	}

	simCfg := e.cfg.SimConfig()
	e.logger.Debug("running experiment",
		"integrator", e.cfg.Integrator,
		"controller", e.cfg.Controller,
		"adaptive", simCfg.Adaptive,
		"samples", simCfg.Samples,
	)

	result, err := e.simulator.Run(ctx, e.cfg.GetInitState(), simCfg)
	if err != nil {
		e.logger.Error("simulation failed", "error", err)
		return result, err
	}

	e.logger.Debug("experiment finished", "steps", result.StepsTaken, "samples", len(result.States))
	return result, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) System() dynamo.System { return e.system }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *dynamo.Simulator {
	return e.simulator
}

// Simulate is the one-shot recompute used by the interactive view and the
// CLI: build from cfg, run, return the trajectory.
func Simulate(ctx context.Context, cfg *config.Config) (*dynamo.Result, error) {
	e, err := FromConfig(cfg, nil)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx)
}
