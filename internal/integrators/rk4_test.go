package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/physics"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int   { return 2 }
func (s *simpleDynamics) ControlDim() int { return 0 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x0 := dynamo.State{1.0, 0.0}
	u := dynamo.Control{}
	dt := 0.01
	steps := 100

	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, u, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4StepReturnsFreshState(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x0 := dynamo.State{1, 0}
	first := integ.Step(dyn, x0, nil, 0, 0.1)
	saved := first.Clone()
	integ.Step(dyn, first, nil, 0.1, 0.1)

	if x0[0] != 1 || x0[1] != 0 {
		t.Errorf("input state modified: %v", x0)
	}
	if first[0] != saved[0] || first[1] != saved[1] {
		t.Errorf("earlier result aliased by a later step: %v, want %v", first, saved)
	}
	if math.Abs(first[0]-math.Cos(0.1)) > 1e-6 {
		t.Errorf("expected cos(0.1), got %f", first[0])
	}
}

func TestEulerStep(t *testing.T) {
	lv := physics.NewLotkaVolterra(physics.DefaultParams())
	x := NewEuler().Step(lv, dynamo.State{50, 10}, nil, 0, 0.001)

	if math.Abs(x[0]-(50-0.45)) > 1e-12 {
		t.Errorf("expected prey 49.55, got %f", x[0])
	}
	if math.Abs(x[1]-(10+0.49)) > 1e-12 {
		t.Errorf("expected predator 10.49, got %f", x[1])
	}
}

func invariantDrift(integ dynamo.Integrator, dt float64, steps int) float64 {
	lv := physics.NewLotkaVolterra(physics.DefaultParams())
	x := dynamo.State{1.5, 1.0}
	v0 := lv.Energy(x)
	for i := 0; i < steps; i++ {
		x = integ.Step(lv, x, nil, float64(i)*dt, dt)
	}
	return math.Abs(lv.Energy(x)-v0) / v0
}

func TestInvariantDriftOrdering(t *testing.T) {
	euler := invariantDrift(NewEuler(), 0.01, 1000)
	rk4 := invariantDrift(NewRK4(), 0.01, 1000)
	rk45 := invariantDrift(NewRK45(), 0.01, 1000)

	if rk4 >= euler {
		t.Errorf("expected RK4 drift (%e) below Euler drift (%e)", rk4, euler)
	}
	if rk4 > 1e-6 {
		t.Errorf("RK4 invariant drift too high: %e", rk4)
	}
	if rk45 > 1e-6 {
		t.Errorf("RK45 invariant drift too high: %e", rk45)
	}
}
