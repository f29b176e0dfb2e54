package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/experiment"
	"github.com/san-kum/predprey/internal/logging"
	"github.com/san-kum/predprey/internal/storage"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run of a scenario. The run starts from the named
// preset, or the defaults, and the config block is decoded on top of it.
type ScenarioStep struct {
	Name   string    `yaml:"name"`
	Preset string    `yaml:"preset"`
	Config yaml.Node `yaml:"config"`
	SaveAs string    `yaml:"save_as"`
}

// StepResult is the outcome of one scenario step. RunID is empty when the
// step was not saved.
type StepResult struct {
	Name   string
	RunID  string
	Result *dynamo.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Resolve builds the step's configuration.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if !s.Config.IsZero() {
		if err := s.Config.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps with SaveAs are written to
// store when it is non-nil. Results of the steps that completed are returned
// with the first error.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i+1)
		}
		logger.Info("running scenario step", "scenario", scenario.Name, "step", name, "index", i+1, "of", len(scenario.Steps))

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp, err := experiment.FromConfig(cfg, nil)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.WithLogger(logger).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: result}
		if step.SaveAs != "" && store != nil {
			runID, err := store.Save(storage.MetadataFromConfig(cfg), result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = runID
			logger.Info("saved scenario step", "step", name, "label", step.SaveAs, "run", runID)
		}

		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs the base configuration once per value of one slider
// key, evenly spaced over [Min, Max]. Runs are spread over Workers
// goroutines; zero means GOMAXPROCS.
type ParameterSweep struct {
	Param   string
	Min     float64
	Max     float64
	Steps   int
	Base    *config.Config
	Workers int
}

// SweepResult summarises one run of a sweep.
type SweepResult struct {
	Value        float64
	PreyMean     float64
	PredatorMean float64
	PreyPeak     float64
	PredatorPeak float64
	Period       float64
	PreyPeaks    []float64
}

func (p *ParameterSweep) validate() (config.Slider, error) {
	slider, ok := config.SliderByKey(p.Param)
	if !ok {
		return slider, fmt.Errorf("unknown sweep parameter: %s", p.Param)
	}
	if p.Steps < 1 {
		return slider, fmt.Errorf("sweep needs at least one step, got %d", p.Steps)
	}
	if p.Max < p.Min {
		return slider, fmt.Errorf("sweep range [%g, %g] is empty", p.Min, p.Max)
	}
	if p.Min < slider.Min || p.Max > slider.Max {
		return slider, fmt.Errorf("sweep range [%g, %g] outside %s range [%g, %g]", p.Min, p.Max, p.Param, slider.Min, slider.Max)
	}
	for _, v := range p.Values() {
		if !slider.OnStep(v) {
			return slider, fmt.Errorf("sweep value %s=%g is off the slider step %g", p.Param, v, slider.Step)
		}
	}
	return slider, nil
}

// Values returns the parameter values visited by the sweep.
func (p *ParameterSweep) Values() []float64 {
	return dynamo.Linspace(p.Min, p.Max, p.Steps)
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	slider, err := sweep.validate()
	if err != nil {
		return nil, err
	}

	base := sweep.Base
	if base == nil {
		base = config.DefaultConfig()
	}

	values := sweep.Values()
	cfgs := make([]*config.Config, len(values))
	for i, v := range values {
		cfg := *base
		slider.Set(&cfg, v)
		cfgs[i] = &cfg
	}

	logger.Info("starting sweep", "param", sweep.Param, "min", sweep.Min, "max", sweep.Max, "steps", len(values))
	runs, err := RunAll(ctx, cfgs, sweep.Workers)
	if err != nil {
		return nil, fmt.Errorf("sweep %s: %w", sweep.Param, err)
	}

	results := make([]SweepResult, len(values))
	for i, v := range values {
		results[i] = summarize(v, runs[i])
		logger.Debug("sweep step", "param", sweep.Param, "value", v, "prey_peak", results[i].PreyPeak)
	}
	return results, nil
}

func summarize(v float64, result *dynamo.Result) SweepResult {
	prey := result.Prey()
	sr := SweepResult{
		Value:        v,
		PreyMean:     result.Metrics["prey_mean"],
		PredatorMean: result.Metrics["predator_mean"],
		PreyPeak:     result.Metrics["prey_peak"],
		PredatorPeak: result.Metrics["predator_peak"],
		PreyPeaks:    analysis.LocalMaxima(prey),
	}
	if len(result.Times) > 1 {
		sr.Period = analysis.DominantPeriod(prey, result.Times[1]-result.Times[0])
	}
	return sr
}

// PeakDiagram converts sweep results into the points drawn by
// analysis.PeakDiagramToASCII.
func PeakDiagram(results []SweepResult) []analysis.PeakPoint {
	points := make([]analysis.PeakPoint, len(results))
	for i, r := range results {
		points[i] = analysis.PeakPoint{Param: r.Value, Values: r.PreyPeaks}
	}
	return points
}
