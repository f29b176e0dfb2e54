package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "rk45", cfg.Integrator)
	assert.Equal(t, "none", cfg.Controller)
	assert.True(t, cfg.Adaptive)
	assert.Equal(t, 50.0, cfg.InitState.Prey)
	assert.Equal(t, 10.0, cfg.InitState.Predator)
	assert.Equal(t, ParamsConfig{Alpha: 1, Beta: 1, Delta: 1, Gamma: 1}, cfg.Params)
	assert.Equal(t, GridConfig{Start: 0, Stop: 50, Samples: 1000}, cfg.Grid)
	require.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Params.Beta = 4
	cfg.InitState.Predator = 30
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("params: {alpha: 3}\n"))
	require.NoError(t, err)

	assert.Equal(t, 3.0, cfg.Params.Alpha)
	assert.Equal(t, 1.0, cfg.Params.Gamma)
	assert.Equal(t, 1000, cfg.Grid.Samples)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("params: [1, 2"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"prey below range", func(c *Config) { c.InitState.Prey = 5 }, "prey"},
		{"predator above range", func(c *Config) { c.InitState.Predator = 110 }, "predator"},
		{"alpha zero", func(c *Config) { c.Params.Alpha = 0 }, "alpha"},
		{"gamma above range", func(c *Config) { c.Params.Gamma = 11 }, "gamma"},
		{"no samples", func(c *Config) { c.Grid.Samples = 0 }, "samples"},
		{"reversed grid", func(c *Config) { c.Grid.Stop = -1 }, "stop"},
		{"zero dt", func(c *Config) { c.Dt = 0 }, "dt"},
		{"negative harvest", func(c *Config) { c.Harvest.Prey = -1 }, "harvest"},
		{"prey off step", func(c *Config) { c.InitState.Prey = 55 }, "prey"},
		{"alpha off step", func(c *Config) { c.Params.Alpha = 1.5 }, "alpha"},
		{"unknown pid species", func(c *Config) { c.Controller = "pid"; c.PID.Species = "wolves" }, "pid.species"},
		{"empty pid species", func(c *Config) { c.Controller = "pid"; c.PID.Species = "" }, "pid.species"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateAcceptsStepValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitState.Prey = 100
	cfg.Params.Gamma = 7
	cfg.Controller = "pid"
	cfg.PID.Species = "predator"
	assert.NoError(t, cfg.Validate())

	// species only matters once a pid block names one
	cfg = DefaultConfig()
	cfg.PID.Species = ""
	assert.NoError(t, cfg.Validate())
}

func TestSimConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Stop = 20
	cfg.Grid.Samples = 200
	cfg.Adaptive = false

	sc := cfg.SimConfig()
	assert.Equal(t, 20.0, sc.Stop)
	assert.Equal(t, 200, sc.Samples)
	assert.False(t, sc.Adaptive)
	assert.Equal(t, cfg.Dt, sc.Dt)
	assert.Len(t, sc.Grid(), 200)
}

func TestGetInitState(t *testing.T) {
	cfg := DefaultConfig()
	state := cfg.GetInitState()

	require.Len(t, state, 2)
	assert.Equal(t, 50.0, state[0])
	assert.Equal(t, 10.0, state[1])
}

func TestGetControllerParams(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.GetControllerParams())

	cfg.Controller = "harvest"
	cfg.Harvest = HarvestConfig{Prey: 0.3, Predator: 0.1}
	params := cfg.GetControllerParams()
	assert.Equal(t, 0.3, params["prey_effort"])
	assert.Equal(t, 0.1, params["predator_effort"])

	cfg.Controller = "pid"
	cfg.PID.Species = "predator"
	assert.Equal(t, 1.0, cfg.GetControllerParams()["species"])
}
