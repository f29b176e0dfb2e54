package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/physics"
)

// smallOrbit integrates a cycle close to the (1, 1) equilibrium of the
// unit-rate model, where the period is close to 2π.
func smallOrbit(t *testing.T) *dynamo.Result {
	t.Helper()
	lv := physics.NewLotkaVolterra(physics.DefaultParams())
	cfg := dynamo.Config{Dt: 0.01, ValidateState: true}

	result, err := dynamo.Solve(context.Background(), lv, integrators.NewRK4(), nil, dynamo.State{1.1, 1.0}, dynamo.Linspace(0, 50, 1000), cfg)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	return result
}

func TestFFTImpulse(t *testing.T) {
	spectrum := FFT([]float64{1, 0, 0, 0, 0, 0, 0, 0})
	for k, c := range spectrum {
		if math.Abs(real(c)-1) > 1e-12 || math.Abs(imag(c)) > 1e-12 {
			t.Errorf("bin %d: expected 1, got %v", k, c)
		}
	}
}

func TestPowerSpectrumPadsInput(t *testing.T) {
	ps := PowerSpectrum([]float64{1, 2, 3, 4, 5})
	if len(ps) != 4 {
		t.Errorf("expected 4 bins after padding to 8, got %d", len(ps))
	}
	if ps[0] != 15 {
		t.Errorf("expected DC magnitude 15, got %f", ps[0])
	}
}

func TestDominantPeriodSine(t *testing.T) {
	times := dynamo.Linspace(0, 50, 1000)
	series := make([]float64, len(times))
	for i, tt := range times {
		series[i] = 3 + math.Sin(2*math.Pi*tt/5)
	}

	got := DominantPeriod(series, times[1]-times[0])
	if math.Abs(got-5) > 0.15 {
		t.Errorf("expected period ~5, got %f", got)
	}
}

func TestDominantPeriodDegenerate(t *testing.T) {
	flat := make([]float64, 100)
	for i := range flat {
		flat[i] = 7
	}

	tests := []struct {
		name   string
		series []float64
		dt     float64
	}{
		{"constant", flat, 0.1},
		{"too short", []float64{1, 2, 1}, 0.1},
		{"zero spacing", []float64{1, 2, 1, 2, 1}, 0},
		{"nan", []float64{1, math.NaN(), 1, 2, 1}, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DominantPeriod(tt.series, tt.dt); got != 0 {
				t.Errorf("expected 0, got %f", got)
			}
		})
	}
}

func TestDominantPeriodNearEquilibrium(t *testing.T) {
	result := smallOrbit(t)
	want := 2 * math.Pi

	got := DominantPeriod(result.Prey(), result.Times[1]-result.Times[0])
	if math.Abs(got-want)/want > 0.05 {
		t.Errorf("expected period ~%.3f, got %.3f", want, got)
	}
}

func TestPoincareSection(t *testing.T) {
	result := smallOrbit(t)

	section := PoincareSection(result, 0, 1.0, 1)
	if len(section) < 6 {
		t.Fatalf("expected at least 6 crossings in 50 time units, got %d", len(section))
	}

	for _, c := range section[1:] {
		if math.Abs(c.Value-section[0].Value) > 1e-3 {
			t.Errorf("expected a closed orbit, crossing values %f and %f", section[0].Value, c.Value)
		}
	}

	period := CrossingPeriod(section)
	if math.Abs(period-2*math.Pi)/(2*math.Pi) > 0.02 {
		t.Errorf("expected crossing period ~2π, got %f", period)
	}

	plot := PoincareSectionToASCII(section, 60, 10)
	if plot == "" || plot == "No crossings detected" {
		t.Errorf("expected a plot of %d crossings, got %q", len(section), plot)
	}

	if out := PoincareSectionToASCII(nil, 10, 5); out != "No crossings detected" {
		t.Errorf("unexpected output for empty section: %q", out)
	}
}

func TestPoincareSectionBadIndex(t *testing.T) {
	result := smallOrbit(t)
	if PoincareSection(result, 2, 1, 0) != nil {
		t.Error("expected nil for out of range index")
	}
	if CrossingPeriod(nil) != 0 {
		t.Error("expected 0 period without crossings")
	}
}

func TestPhasePortrait(t *testing.T) {
	result := smallOrbit(t)

	portrait := PreyPredatorPortrait(result)
	if portrait == nil {
		t.Fatal("expected portrait")
	}
	if len(portrait.Points) != len(result.States) {
		t.Errorf("expected %d points, got %d", len(result.States), len(portrait.Points))
	}
	if portrait.Points[0] != (Point{X: 1.1, Y: 1.0}) {
		t.Errorf("expected first point (1.1, 1), got %+v", portrait.Points[0])
	}

	minX, maxX, _, _ := portrait.Bounds()
	if minX >= 1 || maxX < 1.1-1e-9 {
		t.Errorf("unexpected prey bounds [%f, %f]", minX, maxX)
	}

	if NewPhasePortrait(result, 0, 5) != nil {
		t.Error("expected nil for out of range index")
	}
}

func TestPhasePortraitToASCII(t *testing.T) {
	result := smallOrbit(t)
	out := PhasePortraitToASCII(PreyPredatorPortrait(result), 40, 12)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 40 {
			t.Errorf("row %d: expected 40 columns, got %d", i, n)
		}
	}
	if !strings.Contains(out, "•") {
		t.Error("expected plotted points")
	}

	if PhasePortraitToASCII(nil, 40, 12) != "" {
		t.Error("expected empty output for nil portrait")
	}
}

func TestLocalMaxima(t *testing.T) {
	got := LocalMaxima([]float64{0, 1, 0, 2, 0, 1.0001, 0})
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected [1 2], got %v", got)
	}

	// 0.9996 and 1.0004 fall in different thousandths but are within 1e-3
	got = LocalMaxima([]float64{0, 0.9996, 0, 1.0004, 0, 1.002, 0})
	if len(got) != 2 || got[0] != 0.9996 || got[1] != 1.002 {
		t.Errorf("expected [0.9996 1.002], got %v", got)
	}

	if len(LocalMaxima([]float64{1, 2, 3})) != 0 {
		t.Error("expected no maxima in a monotone series")
	}
}

func TestPeakDiagramToASCII(t *testing.T) {
	data := []PeakPoint{
		{Param: 1, Values: []float64{2}},
		{Param: 2, Values: []float64{3, 4}},
	}

	out := PeakDiagramToASCII(data, 20, 5)
	if strings.Count(out, "\n") != 5 {
		t.Errorf("expected 5 rows, got %q", out)
	}
	if strings.Count(out, "•") != 3 {
		t.Errorf("expected 3 points, got %q", out)
	}

	if PeakDiagramToASCII([]PeakPoint{{Param: 1}}, 20, 5) != "" {
		t.Error("expected empty output without values")
	}
}
