package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/experiment"
)

var ErrNoCandidate = errors.New("optim: no configuration could be scored")

// Axis is one slider and the values tried for it.
type Axis struct {
	Key    string
	Values []float64
}

// ParseAxis reads "key=min:max:step" or "key=v1,v2,...".
func ParseAxis(s string) (Axis, error) {
	key, spec, ok := strings.Cut(s, "=")
	if !ok || key == "" || spec == "" {
		return Axis{}, fmt.Errorf("axis %q: want key=min:max:step or key=v1,v2", s)
	}
	slider, ok := config.SliderByKey(key)
	if !ok {
		return Axis{}, fmt.Errorf("axis %q: unknown slider %s", s, key)
	}

	if parts := strings.Split(spec, ":"); len(parts) == 3 {
		var bounds [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return Axis{}, fmt.Errorf("axis %q: %w", s, err)
			}
			bounds[i] = v
		}
		lo, hi, step := bounds[0], bounds[1], bounds[2]
		if step <= 0 || hi < lo {
			return Axis{}, fmt.Errorf("axis %q: empty range", s)
		}
		n := int(math.Floor((hi-lo)/step+1e-9)) + 1
		values := make([]float64, n)
		for i := range values {
			values[i] = lo + float64(i)*step
		}
		return checkAxis(s, slider, Axis{Key: key, Values: values})
	}

	fields := strings.Split(spec, ",")
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("axis %q: %w", s, err)
		}
		values = append(values, v)
	}
	return checkAxis(s, slider, Axis{Key: key, Values: values})
}

func checkAxis(s string, slider config.Slider, a Axis) (Axis, error) {
	for _, v := range a.Values {
		if !slider.OnStep(v) {
			return Axis{}, fmt.Errorf("axis %q: %g is off the %s step %g", s, v, slider.Key, slider.Step)
		}
	}
	return a, nil
}

// Objective scores a trajectory; lower is better.
type Objective func(result *dynamo.Result) float64

// MetricObjective minimises a recorded metric.
func MetricObjective(name string) Objective {
	return func(r *dynamo.Result) float64 {
		v, ok := r.Metrics[name]
		if !ok {
			return math.NaN()
		}
		return v
	}
}

// TargetObjective minimises the distance of a metric to target.
func TargetObjective(name string, target float64) Objective {
	metric := MetricObjective(name)
	return func(r *dynamo.Result) float64 {
		return math.Abs(metric(r) - target)
	}
}

// PeriodObjective minimises the distance of the prey period to target.
func PeriodObjective(target float64) Objective {
	return func(r *dynamo.Result) float64 {
		if len(r.Times) < 2 {
			return math.NaN()
		}
		p := analysis.DominantPeriod(r.Prey(), r.Times[1]-r.Times[0])
		if p == 0 {
			return math.NaN()
		}
		return math.Abs(p - target)
	}
}

// Candidate is one grid point and its score.
type Candidate struct {
	Values map[string]float64
	Score  float64
}

type GridSearch struct {
	axes []Axis
}

func NewGridSearch(axes []Axis) *GridSearch {
	return &GridSearch{axes: axes}
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, a := range g.axes {
		n *= len(a.Values)
	}
	return n
}

// Search runs base at every grid point and returns the lowest scoring one.
// Points that fail validation or integration, or score NaN, are skipped.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, objective Objective) (Candidate, error) {
	best := Candidate{Score: math.Inf(1)}

	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, objective, &best)
	if err != nil {
		return Candidate{}, err
	}
	if best.Values == nil {
		return Candidate{}, ErrNoCandidate
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	objective Objective,
	best *Candidate,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.axes) {
		cfg := *base
		for key, v := range current {
			slider, _ := config.SliderByKey(key)
			slider.Set(&cfg, v)
		}

		result, err := experiment.Simulate(ctx, &cfg)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		}

		score := objective(result)
		if !math.IsNaN(score) && score < best.Score {
			best.Score = score
			best.Values = make(map[string]float64, len(current))
			for k, v := range current {
				best.Values[k] = v
			}
		}
		return nil
	}

	axis := g.axes[depth]
	for _, val := range axis.Values {
		current[axis.Key] = val
		if err := g.searchRecursive(ctx, depth+1, current, base, objective, best); err != nil {
			return err
		}
	}
	delete(current, axis.Key)
	return nil
}
