package storage

import (
	"github.com/san-kum/predprey/internal/config"
)

// MetadataFromConfig fills the descriptive fields of a run record from the
// configuration that produced it.
func MetadataFromConfig(cfg *config.Config) RunMetadata {
	meta := RunMetadata{
		Model:      "lotka_volterra",
		Integrator: cfg.Integrator,
		Controller: cfg.Controller,
		Adaptive:   cfg.Adaptive,
		Dt:         cfg.Dt,
		Start:      cfg.Grid.Start,
		Stop:       cfg.Grid.Stop,
		Samples:    cfg.Grid.Samples,
		InitState: Populations{
			Prey:     cfg.InitState.Prey,
			Predator: cfg.InitState.Predator,
		},
		Params: map[string]float64{
			"alpha": cfg.Params.Alpha,
			"beta":  cfg.Params.Beta,
			"delta": cfg.Params.Delta,
			"gamma": cfg.Params.Gamma,
		},
	}
	if cfg.Controller == "harvest" {
		meta.Harvest = Populations{Prey: cfg.Harvest.Prey, Predator: cfg.Harvest.Predator}
	}
	return meta
}
