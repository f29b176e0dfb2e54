package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/physics"
)

func feed(m dynamo.Metric, states ...dynamo.State) {
	for i, s := range states {
		m.Observe(s, nil, float64(i))
	}
}

func TestPeakTrough(t *testing.T) {
	peak := NewPeak(Predator)
	trough := NewTrough(Predator)

	states := []dynamo.State{{10, 3}, {12, 7}, {9, 0.5}, {11, 2}}
	feed(peak, states...)
	feed(trough, states...)

	if peak.Name() != "predator_peak" {
		t.Errorf("expected predator_peak, got %s", peak.Name())
	}
	if peak.Value() != 7 {
		t.Errorf("expected peak 7, got %f", peak.Value())
	}
	if trough.Value() != 0.5 {
		t.Errorf("expected trough 0.5, got %f", trough.Value())
	}

	peak.Reset()
	feed(peak, dynamo.State{1, -4})
	if peak.Value() != -4 {
		t.Errorf("expected peak to restart after reset, got %f", peak.Value())
	}
}

func TestMean(t *testing.T) {
	m := NewMean(Prey)
	if m.Value() != 0 {
		t.Errorf("expected 0 with no samples, got %f", m.Value())
	}

	feed(m, dynamo.State{2, 0}, dynamo.State{4, 0}, dynamo.State{6, 0})
	if m.Value() != 4 {
		t.Errorf("expected mean 4, got %f", m.Value())
	}
}

func TestExtinction(t *testing.T) {
	e := NewExtinction(1.0)
	feed(e, dynamo.State{5, 5}, dynamo.State{0.5, 5}, dynamo.State{5, 0.1}, dynamo.State{5, 5})

	if math.Abs(e.Value()-0.5) > 1e-12 {
		t.Errorf("expected extinction fraction 0.5, got %f", e.Value())
	}
}

func TestYield(t *testing.T) {
	y := NewYield()
	y.Observe(dynamo.State{1, 1}, dynamo.Control{-2, -1}, 0)
	y.Observe(dynamo.State{1, 1}, dynamo.Control{1, 0}, 1)

	if y.Value() != 1.5 {
		t.Errorf("expected mean yield 1.5, got %f", y.Value())
	}
}

func TestInvariantDrift(t *testing.T) {
	lv := physics.NewLotkaVolterra(physics.DefaultParams())
	d := NewInvariantDrift(lv)

	feed(d, dynamo.State{2, 2}, dynamo.State{2, 2})
	if d.Value() != 0 {
		t.Errorf("expected zero drift on a repeated state, got %g", d.Value())
	}

	d.Observe(dynamo.State{-1, 2}, nil, 2)
	if d.Value() != 0 {
		t.Errorf("expected undefined invariant to be skipped, got %g", d.Value())
	}

	d.Observe(dynamo.State{3, 2}, nil, 3)
	if d.Value() <= 0 {
		t.Error("expected positive drift after leaving the orbit")
	}
}

func TestDefaultSet(t *testing.T) {
	lv := physics.NewLotkaVolterra(physics.DefaultParams())
	set := DefaultSet(lv)

	seen := make(map[string]bool)
	for _, m := range set {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}

	for _, name := range []string{"prey_peak", "predator_trough", "prey_mean", "invariant_drift", "extinction", "yield"} {
		if !seen[name] {
			t.Errorf("expected metric %s in default set", name)
		}
	}
}
