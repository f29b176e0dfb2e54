package metrics

import (
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

// InvariantDrift is the largest relative deviation of the system's
// conserved quantity from its value at the first sample. Samples where the
// quantity is undefined are skipped.
type InvariantDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
	dyn      dynamo.System
}

func NewInvariantDrift(dyn dynamo.System) *InvariantDrift {
	return &InvariantDrift{
		name: "invariant_drift",
		dyn:  dyn,
	}
}

func (d *InvariantDrift) Name() string { return d.name }

func (d *InvariantDrift) Observe(x dynamo.State, u dynamo.Control, t float64) {
	h, ok := d.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	v := h.Energy(x)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}

	if d.samples == 0 {
		d.initial = v
	}
	d.samples++

	if d.initial != 0 {
		drift := math.Abs(v-d.initial) / math.Abs(d.initial)
		d.maxDrift = math.Max(d.maxDrift, drift)
	}
}

func (d *InvariantDrift) Value() float64 {
	return d.maxDrift
}

func (d *InvariantDrift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}

// DefaultSet returns the metrics reported for every run.
func DefaultSet(dyn dynamo.System) []dynamo.Metric {
	return []dynamo.Metric{
		NewPeak(Prey),
		NewPeak(Predator),
		NewTrough(Prey),
		NewTrough(Predator),
		NewMean(Prey),
		NewMean(Predator),
		NewInvariantDrift(dyn),
		NewExtinction(1.0),
		NewYield(),
	}
}
