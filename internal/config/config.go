package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/predprey/internal/dynamo"
)

const (
	DefaultPrey      = 50.0
	DefaultPredator  = 10.0
	DefaultRate      = 1.0
	DefaultDt        = 0.01
	DefaultTolerance = 1e-8
	DefaultStart     = 0.0
	DefaultStop      = 50.0
	DefaultSamples   = 1000
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Integrator string          `yaml:"integrator"`
	Controller string          `yaml:"controller"`
	Dt         float64         `yaml:"dt"`
	Tolerance  float64         `yaml:"tolerance"`
	Adaptive   bool            `yaml:"adaptive"`
	Grid       GridConfig      `yaml:"grid"`
	InitState  InitStateConfig `yaml:"init_state"`
	Params     ParamsConfig    `yaml:"params"`
	Harvest    HarvestConfig   `yaml:"harvest"`
	PID        PIDConfig       `yaml:"pid,omitempty"`
}

type GridConfig struct {
	Start   float64 `yaml:"start"`
	Stop    float64 `yaml:"stop"`
	Samples int     `yaml:"samples"`
}

type InitStateConfig struct {
	Prey     float64 `yaml:"prey"`
	Predator float64 `yaml:"predator"`
}

type ParamsConfig struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Delta float64 `yaml:"delta"`
	Gamma float64 `yaml:"gamma"`
}

// HarvestConfig holds per-capita harvesting efforts.
type HarvestConfig struct {
	Prey     float64 `yaml:"prey"`
	Predator float64 `yaml:"predator"`
}

type PIDConfig struct {
	Species string  `yaml:"species"`
	Kp      float64 `yaml:"kp"`
	Ki      float64 `yaml:"ki"`
	Kd      float64 `yaml:"kd"`
	Target  float64 `yaml:"target"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk45",
		Controller: "none",
		Dt:         DefaultDt,
		Tolerance:  DefaultTolerance,
		Adaptive:   true,
		Grid: GridConfig{
			Start:   DefaultStart,
			Stop:    DefaultStop,
			Samples: DefaultSamples,
		},
		InitState: InitStateConfig{
			Prey:     DefaultPrey,
			Predator: DefaultPredator,
		},
		Params: ParamsConfig{
			Alpha: DefaultRate,
			Beta:  DefaultRate,
			Delta: DefaultRate,
			Gamma: DefaultRate,
		},
		PID: PIDConfig{
			Species: "prey",
			Kp:      0.5,
			Ki:      0.05,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the slider ranges and steps, the grid and the
// controller options.
func (c *Config) Validate() error {
	for _, s := range Sliders() {
		v := s.Get(c)
		if v < s.Min || v > s.Max {
			return fmt.Errorf("%w: %s=%g outside [%g, %g]", ErrInvalidConfig, s.Key, v, s.Min, s.Max)
		}
		if !s.OnStep(v) {
			return fmt.Errorf("%w: %s=%g is not a multiple of %g from %g", ErrInvalidConfig, s.Key, v, s.Step, s.Min)
		}
	}
	if c.Grid.Samples <= 0 {
		return fmt.Errorf("%w: grid.samples must be positive, got %d", ErrInvalidConfig, c.Grid.Samples)
	}
	if c.Grid.Samples > 1 && c.Grid.Stop <= c.Grid.Start {
		return fmt.Errorf("%w: grid.stop must be after grid.start", ErrInvalidConfig)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if c.Adaptive && c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidConfig, c.Tolerance)
	}
	if c.Harvest.Prey < 0 || c.Harvest.Predator < 0 {
		return fmt.Errorf("%w: harvest effort must be non-negative", ErrInvalidConfig)
	}
	if _, ok := pidSpecies(c.PID.Species); !ok && (c.Controller == "pid" || c.PID.Species != "") {
		return fmt.Errorf("%w: pid.species must be prey or predator, got %q", ErrInvalidConfig, c.PID.Species)
	}
	return nil
}

func pidSpecies(name string) (float64, bool) {
	switch name {
	case "prey":
		return 0, true
	case "predator":
		return 1, true
	}
	return 0, false
}

func (c *Config) GetInitState() dynamo.State {
	return dynamo.State{c.InitState.Prey, c.InitState.Predator}
}

// SimConfig converts the grid and stepping options into a solver config.
func (c *Config) SimConfig() dynamo.Config {
	sc := dynamo.DefaultConfig()
	sc.Start = c.Grid.Start
	sc.Stop = c.Grid.Stop
	sc.Samples = c.Grid.Samples
	sc.Dt = c.Dt
	sc.Adaptive = c.Adaptive
	if c.Tolerance > 0 {
		sc.Tolerance = c.Tolerance
	}
	if sc.MaxDt < sc.Dt {
		sc.MaxDt = sc.Dt
	}
	return sc
}

func (c *Config) GetControllerParams() map[string]float64 {
	switch c.Controller {
	case "harvest":
		return map[string]float64{
			"prey_effort":     c.Harvest.Prey,
			"predator_effort": c.Harvest.Predator,
		}
	case "pid":
		species, _ := pidSpecies(c.PID.Species)
		return map[string]float64{
			"species": species,
			"kp":      c.PID.Kp,
			"ki":      c.PID.Ki,
			"kd":      c.PID.Kd,
			"target":  c.PID.Target,
		}
	default:
		return map[string]float64{}
	}
}
