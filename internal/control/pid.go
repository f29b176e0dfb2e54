package control

import (
	"fmt"

	"github.com/san-kum/predprey/internal/dynamo"
)

// PID steers one population toward Target by stocking (positive flux) or
// culling (negative flux). Species selects the controlled component.
//
// The solver may ask for the control more than once at the same time, at a
// sample boundary or when it retries a rejected step. Such calls return the
// last output and leave the integral untouched.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	Species  int
	integral float64
	prevErr  float64
	prevT    float64
	last     float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		first:  true,
	}
}

func (p *PID) Compute(x dynamo.State, t float64) dynamo.Control {
	u := dynamo.Control{0, 0}
	if p.Species < 0 || p.Species >= len(x) || p.Species >= len(u) {
		return u
	}

	err := p.Target - x[p.Species]

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		p.last = p.Kp * err
		u[p.Species] = p.last
		return u
	}

	dt := t - p.prevT
	if dt <= 0 {
		u[p.Species] = p.last
		return u
	}

	p.integral += err * dt
	derivative := (err - p.prevErr) / dt
	p.last = p.Kp*err + p.Ki*p.integral + p.Kd*derivative

	p.prevErr = err
	p.prevT = t

	u[p.Species] = p.last
	return u
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.prevT = 0
	p.last = 0
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"kp":     p.Kp,
		"ki":     p.Ki,
		"kd":     p.Kd,
		"target": p.Target,
	}
}

// SetParam adjusts a PID parameter
func (p *PID) SetParam(name string, value float64) error {
	switch name {
	case "kp":
		p.Kp = value
	case "ki":
		p.Ki = value
	case "kd":
		p.Kd = value
	case "target":
		p.Target = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
