package metrics

import (
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

// Species indices in the [prey, predator] state.
const (
	Prey     = 0
	Predator = 1
)

func speciesName(idx int) string {
	if idx == Predator {
		return "predator"
	}
	return "prey"
}

// Peak tracks the largest value of one population.
type Peak struct {
	name    string
	idx     int
	max     float64
	samples int
}

func NewPeak(idx int) *Peak {
	return &Peak{name: speciesName(idx) + "_peak", idx: idx}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if p.idx >= len(x) {
		return
	}
	if p.samples == 0 || x[p.idx] > p.max {
		p.max = x[p.idx]
	}
	p.samples++
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() {
	p.max = 0
	p.samples = 0
}

// Trough tracks the smallest value of one population.
type Trough struct {
	name    string
	idx     int
	min     float64
	samples int
}

func NewTrough(idx int) *Trough {
	return &Trough{name: speciesName(idx) + "_trough", idx: idx}
}

func (tr *Trough) Name() string { return tr.name }

func (tr *Trough) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if tr.idx >= len(x) {
		return
	}
	if tr.samples == 0 || x[tr.idx] < tr.min {
		tr.min = x[tr.idx]
	}
	tr.samples++
}

func (tr *Trough) Value() float64 { return tr.min }

func (tr *Trough) Reset() {
	tr.min = 0
	tr.samples = 0
}

// Mean is the time average of one population over the samples.
type Mean struct {
	name    string
	idx     int
	sum     float64
	samples int
}

func NewMean(idx int) *Mean {
	return &Mean{name: speciesName(idx) + "_mean", idx: idx}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if m.idx >= len(x) {
		return
	}
	m.sum += x[m.idx]
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

// Extinction is the fraction of samples where any population is below
// threshold.
type Extinction struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewExtinction(threshold float64) *Extinction {
	return &Extinction{
		name:      "extinction",
		threshold: threshold,
	}
}

func (e *Extinction) Name() string {
	return e.name
}

func (e *Extinction) Observe(x dynamo.State, u dynamo.Control, t float64) {
	e.samples++
	for _, val := range x {
		if val < e.threshold {
			e.violations++
			break
		}
	}
}

func (e *Extinction) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return float64(e.violations) / float64(e.samples)
}

func (e *Extinction) Reset() {
	e.violations = 0
	e.samples = 0
}

// Yield is the mean rate at which control removes individuals.
type Yield struct {
	name    string
	sum     float64
	samples int
}

func NewYield() *Yield {
	return &Yield{
		name: "yield",
	}
}

func (y *Yield) Name() string {
	return y.name
}

func (y *Yield) Observe(x dynamo.State, u dynamo.Control, t float64) {
	for _, val := range u {
		if val < 0 {
			y.sum += math.Abs(val)
		}
	}
	y.samples++
}

func (y *Yield) Value() float64 {
	if y.samples == 0 {
		return 0
	}
	return y.sum / float64(y.samples)
}

func (y *Yield) Reset() {
	y.sum = 0
	y.samples = 0
}
