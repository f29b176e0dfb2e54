package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/predprey/internal/control"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/metrics"
	"github.com/san-kum/predprey/internal/physics"
)

type Registry struct {
	models      map[string]func(map[string]float64) (dynamo.System, error)
	integrators map[string]func() dynamo.Integrator
	controllers map[string]func(map[string]float64) dynamo.Controller
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func(map[string]float64) (dynamo.System, error)),
		integrators: make(map[string]func() dynamo.Integrator),
		controllers: make(map[string]func(map[string]float64) dynamo.Controller),
	}

	r.models["lotka_volterra"] = func(params map[string]float64) (dynamo.System, error) {
		lv := physics.NewLotkaVolterra(physics.DefaultParams())
		for name, v := range params {
			if err := lv.SetParam(name, v); err != nil {
				return nil, err
			}
		}
		return lv, nil
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }

	r.controllers["none"] = func(params map[string]float64) dynamo.Controller {
		return control.NewNone(2)
	}
	r.controllers["harvest"] = func(params map[string]float64) dynamo.Controller {
		return control.NewHarvest(params["prey_effort"], params["predator_effort"])
	}
	r.controllers["pid"] = func(params map[string]float64) dynamo.Controller {
		pid := control.NewPID(params["kp"], params["ki"], params["kd"], params["target"])
		pid.Species = int(params["species"])
		return pid
	}

	return r
}

func (r *Registry) GetModel(name string, params map[string]float64) (dynamo.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(params)
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetController(name string, params map[string]float64) (dynamo.Controller, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) ListModels() []string      { return sortedKeys(r.models) }
func (r *Registry) ListIntegrators() []string { return sortedKeys(r.integrators) }
func (r *Registry) ListControllers() []string { return sortedKeys(r.controllers) }

func (r *Registry) DefaultMetrics(dyn dynamo.System) []dynamo.Metric {
	return metrics.DefaultSet(dyn)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
