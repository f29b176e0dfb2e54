package integrators

import "github.com/san-kum/predprey/internal/dynamo"

// RK4 is the classical fixed-step fourth-order Runge-Kutta method. The
// control is held constant over the step. Stage buffers are reused between
// calls, so an RK4 must not be shared by concurrent runs.
type RK4 struct {
	k     [4]dynamo.State
	trial dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) resize(n int) {
	if len(r.trial) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.trial = make(dynamo.State, n)
}

// stage evaluates the derivative at x + h*k into dst.
func (r *RK4) stage(dst dynamo.State, dyn dynamo.System, x, k dynamo.State, u dynamo.Control, t, h float64) {
	for i := range x {
		r.trial[i] = x[i] + h*k[i]
	}
	copy(dst, dyn.Derive(r.trial, u, t))
}

// Step advances x by dt and returns a new state.
func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	r.resize(len(x))
	half := dt / 2

	copy(r.k[0], dyn.Derive(x, u, t))
	r.stage(r.k[1], dyn, x, r.k[0], u, t+half, half)
	r.stage(r.k[2], dyn, x, r.k[1], u, t+half, half)
	r.stage(r.k[3], dyn, x, r.k[2], u, t+dt, dt)

	next := make(dynamo.State, len(x))
	for i := range x {
		next[i] = x[i] + dt/6*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
	return next
}
