package control

import "github.com/san-kum/predprey/internal/dynamo"

// None leaves both populations alone: every component of the control is
// zero, so the model runs as the plain Lotka-Volterra system.
type None struct {
	dim int
}

// NewNone returns a zero controller for a system with dim control inputs.
func NewNone(dim int) *None {
	return &None{dim: dim}
}

func (n *None) Compute(_ dynamo.State, _ float64) dynamo.Control {
	return make(dynamo.Control, n.dim)
}
