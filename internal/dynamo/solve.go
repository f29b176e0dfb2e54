package dynamo

import (
	"context"
	"fmt"
	"math"
)

// sampleFunc is called once per grid sample, in order.
type sampleFunc func(x State, u Control, t float64)

// Solve integrates dyn from x0 and samples the solution at every entry of
// times. The first sample is a copy of x0 at times[0]. Internal steps are
// independent of the grid: fixed steps of at most cfg.Dt, or error
// controlled steps when cfg.Adaptive is set.
//
// On failure the partially filled result is returned together with the
// error.
func Solve(ctx context.Context, dyn System, integ Integrator, ctrl Controller, x0 State, times []float64, cfg Config) (*Result, error) {
	return solve(ctx, dyn, integ, ctrl, x0, times, cfg, nil)
}

func solve(ctx context.Context, dyn System, integ Integrator, ctrl Controller, x0 State, times []float64, cfg Config, onSample sampleFunc) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := checkGrid(times); err != nil {
		return nil, err
	}
	if len(x0) != dyn.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system expects %d", ErrDimensionMismatch, len(x0), dyn.StateDim())
	}

	result := &Result{
		States:   make([]State, 0, len(times)),
		Controls: make([]Control, 0, len(times)),
		Times:    make([]float64, 0, len(times)),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	x := x0.Clone()
	t := times[0]
	dt := cfg.Dt

	record := func() {
		u := computeControl(ctrl, dyn, x, t)
		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, t)
		if onSample != nil {
			onSample(x, u, t)
		}
	}
	record()

	for i := 1; i < len(times); i++ {
		target := times[i]

		var err error
		if cfg.Adaptive {
			x, dt, err = advanceAdaptive(ctx, dyn, integ, ctrl, x, t, target, dt, cfg, result)
		} else {
			x, err = advanceFixed(ctx, dyn, integ, ctrl, x, t, target, cfg, result)
		}
		if err != nil {
			result.Errors = append(result.Errors, err)
			return result, err
		}

		t = target
		record()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Adaptive {
		if cfg.Tolerance <= 0 {
			return fmt.Errorf("tolerance must be positive for adaptive stepping")
		}
		if cfg.MinDt <= 0 || cfg.MaxDt < cfg.MinDt {
			return fmt.Errorf("invalid adaptive step bounds [%g, %g]", cfg.MinDt, cfg.MaxDt)
		}
	}
	return nil
}

func computeControl(ctrl Controller, dyn System, x State, t float64) Control {
	if ctrl == nil {
		return make(Control, dyn.ControlDim())
	}
	return ctrl.Compute(x, t)
}

// advanceFixed splits [t, target] into equal steps no longer than cfg.Dt so
// that the last step lands exactly on target.
func advanceFixed(ctx context.Context, dyn System, integ Integrator, ctrl Controller, x State, t, target float64, cfg Config, result *Result) (State, error) {
	n := int(math.Ceil((target-t)/cfg.Dt - 1e-9))
	if n < 1 {
		n = 1
	}
	h := (target - t) / float64(n)

	for k := 0; k < n; k++ {
		if err := ctx.Err(); err != nil {
			return x, err
		}

		u := computeControl(ctrl, dyn, x, t)
		x = integ.Step(dyn, x, u, t, h)
		t += h
		result.StepsTaken++

		if cfg.ValidateState && !x.IsValid() {
			return x, &SimulationError{Step: result.StepsTaken, Time: t, State: x.Clone(), Wrapped: ErrInvalidState}
		}
	}
	return x, nil
}

// advanceAdaptive takes error-controlled steps from t to exactly target and
// returns the step size to try next.
func advanceAdaptive(ctx context.Context, dyn System, integ Integrator, ctrl Controller, x State, t, target, dt float64, cfg Config, result *Result) (State, float64, error) {
	for t < target {
		if err := ctx.Err(); err != nil {
			return x, dt, err
		}

		h := math.Min(dt, cfg.MaxDt)
		last := false
		if t+h >= target {
			h = target - t
			last = true
		}

		u := computeControl(ctrl, dyn, x, t)
		newX, next, err := stepAdaptive(dyn, integ, x, u, t, h, cfg)
		if math.IsNaN(next) || next <= 0 {
			next = cfg.MinDt
		}

		if err != nil {
			if h <= cfg.MinDt {
				return x, dt, &SimulationError{Step: result.StepsTaken, Time: t, State: x.Clone(), Wrapped: ErrStepTooSmall}
			}
			dt = math.Max(math.Min(next, h), cfg.MinDt)
			continue
		}

		x = newX
		if last {
			t = target
		} else {
			t += h
		}
		result.StepsTaken++

		if cfg.ValidateState && !x.IsValid() {
			return x, dt, &SimulationError{Step: result.StepsTaken, Time: t, State: x.Clone(), Wrapped: ErrInvalidState}
		}

		// a clipped final step says little about the natural step size
		if !last || next > dt {
			dt = next
		}
		dt = math.Min(math.Max(dt, cfg.MinDt), cfg.MaxDt)
	}
	return x, dt, nil
}

// stepAdaptive uses the integrator's own error control when it has one and
// falls back to step doubling otherwise.
func stepAdaptive(dyn System, integ Integrator, x State, u Control, t, dt float64, cfg Config) (State, float64, error) {
	if adaptive, ok := integ.(AdaptiveIntegrator); ok {
		return adaptive.StepAdaptive(dyn, x, u, t, dt, cfg.Tolerance)
	}

	x1 := integ.Step(dyn, x, u, t, dt)
	xHalf := integ.Step(dyn, x, u, t, dt/2)
	x2 := integ.Step(dyn, xHalf, u, t+dt/2, dt/2)

	scale := x2.Norm() + 1.0
	err := x1.Sub(x2).Norm() / scale

	if math.IsNaN(err) || err > cfg.Tolerance {
		return x, dt / 2, ErrStepRejected
	}

	next := dt
	if err < cfg.Tolerance/10 {
		next = dt * 2
	}
	return x2, next, nil
}
