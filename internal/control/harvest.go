package control

import (
	"fmt"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/physics"
)

// Harvest removes a fixed fraction of each population per unit time:
// u = (−Eₓ·x, −E_y·y). It shifts the coexistence equilibrium to
// ((γ+E_y)/δ, (α−Eₓ)/β).
type Harvest struct {
	PreyEffort     float64
	PredatorEffort float64
}

func NewHarvest(preyEffort, predatorEffort float64) *Harvest {
	return &Harvest{
		PreyEffort:     preyEffort,
		PredatorEffort: predatorEffort,
	}
}

func (h *Harvest) Compute(x dynamo.State, t float64) dynamo.Control {
	if len(x) < 2 {
		return dynamo.Control{0, 0}
	}
	return dynamo.Control{-h.PreyEffort * x[0], -h.PredatorEffort * x[1]}
}

// Yield returns the harvest rate taken from state x.
func (h *Harvest) Yield(x dynamo.State) float64 {
	if len(x) < 2 {
		return 0
	}
	return h.PreyEffort*x[0] + h.PredatorEffort*x[1]
}

// Equilibrium returns the coexistence point of the harvested system. A
// negative predator component means the prey effort exceeds α and the
// predators cannot persist.
func (h *Harvest) Equilibrium(p physics.Params) dynamo.State {
	return dynamo.State{(p.Gamma + h.PredatorEffort) / p.Delta, (p.Alpha - h.PreyEffort) / p.Beta}
}

// GetParams returns tunable parameters for live adjustment
func (h *Harvest) GetParams() map[string]float64 {
	return map[string]float64{
		"prey_effort":     h.PreyEffort,
		"predator_effort": h.PredatorEffort,
	}
}

// SetParam adjusts a harvesting effort
func (h *Harvest) SetParam(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%w: %s must be non-negative, got %f", dynamo.ErrParameterBounds, name, value)
	}
	switch name {
	case "prey_effort":
		h.PreyEffort = value
	case "predator_effort":
		h.PredatorEffort = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
