package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

// Default rate constants, matching the lowest slider setting.
const (
	DefaultAlpha = 1.0
	DefaultBeta  = 1.0
	DefaultDelta = 1.0
	DefaultGamma = 1.0
)

// Params holds the four Lotka-Volterra rate constants.
type Params struct {
	Alpha float64 // prey birth rate
	Beta  float64 // predation rate
	Delta float64 // predator birth rate from predation
	Gamma float64 // predator death rate
}

func DefaultParams() Params {
	return Params{Alpha: DefaultAlpha, Beta: DefaultBeta, Delta: DefaultDelta, Gamma: DefaultGamma}
}

// Derivative evaluates the predator-prey equations
//
//	dx/dt = αx − βxy
//	dy/dt = δxy − γy
//
// for prey x and predator y. The system is autonomous; t is accepted only to
// match the solver calling convention.
func Derivative(x, y, t float64, p Params) (dxdt, dydt float64) {
	dxdt = p.Alpha*x - p.Beta*x*y
	dydt = p.Delta*x*y - p.Gamma*y
	return dxdt, dydt
}

// LotkaVolterra is the two-species model as a dynamo.System. State is
// [prey, predator]. The optional control is an additive population flux,
// used for harvesting.
type LotkaVolterra struct {
	Params
}

func NewLotkaVolterra(p Params) *LotkaVolterra {
	return &LotkaVolterra{Params: p}
}

func (lv *LotkaVolterra) StateDim() int   { return 2 }
func (lv *LotkaVolterra) ControlDim() int { return 2 }

func (lv *LotkaVolterra) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	dx, dy := Derivative(x[0], x[1], t, lv.Params)
	if len(u) > 0 {
		dx += u[0]
	}
	if len(u) > 1 {
		dy += u[1]
	}
	return dynamo.State{dx, dy}
}

// Equilibrium returns the coexistence fixed point (γ/δ, α/β).
func (lv *LotkaVolterra) Equilibrium() dynamo.State {
	return dynamo.State{lv.Gamma / lv.Delta, lv.Alpha / lv.Beta}
}

// Energy returns the first integral V = δx − γ ln x + βy − α ln y, constant
// along exact trajectories. It is NaN outside the positive quadrant.
func (lv *LotkaVolterra) Energy(x dynamo.State) float64 {
	prey, predator := x[0], x[1]
	if prey <= 0 || predator <= 0 {
		return math.NaN()
	}
	return lv.Delta*prey - lv.Gamma*math.Log(prey) + lv.Beta*predator - lv.Alpha*math.Log(predator)
}

// Period returns the small-amplitude oscillation period 2π/√(αγ) around
// the equilibrium.
func (lv *LotkaVolterra) Period() float64 {
	return 2 * math.Pi / math.Sqrt(lv.Alpha*lv.Gamma)
}

func (lv *LotkaVolterra) GetParams() map[string]float64 {
	return map[string]float64{
		"alpha": lv.Alpha,
		"beta":  lv.Beta,
		"delta": lv.Delta,
		"gamma": lv.Gamma,
	}
}

func (lv *LotkaVolterra) SetParam(name string, value float64) error {
	switch name {
	case "alpha":
		lv.Alpha = value
	case "beta":
		lv.Beta = value
	case "delta":
		lv.Delta = value
	case "gamma":
		lv.Gamma = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
