package config

import "math"

// Slider is one adjustable value of the interactive view.
type Slider struct {
	Key   string
	Label string
	Min   float64
	Max   float64
	Step  float64
	Get   func(*Config) float64
	Set   func(*Config, float64)
}

// Sliders returns the six sliders in display order: the first row is
// prey, alpha, beta and the second predator, delta, gamma.
func Sliders() []Slider {
	return []Slider{
		{
			Key: "prey", Label: "Initial prey population", Min: 10, Max: 100, Step: 10,
			Get: func(c *Config) float64 { return c.InitState.Prey },
			Set: func(c *Config, v float64) { c.InitState.Prey = v },
		},
		{
			Key: "alpha", Label: "Birth rate of prey (α)", Min: 1, Max: 10, Step: 1,
			Get: func(c *Config) float64 { return c.Params.Alpha },
			Set: func(c *Config, v float64) { c.Params.Alpha = v },
		},
		{
			Key: "beta", Label: "Rate of predators eating prey (β)", Min: 1, Max: 10, Step: 1,
			Get: func(c *Config) float64 { return c.Params.Beta },
			Set: func(c *Config, v float64) { c.Params.Beta = v },
		},
		{
			Key: "predator", Label: "Initial predator population", Min: 10, Max: 100, Step: 10,
			Get: func(c *Config) float64 { return c.InitState.Predator },
			Set: func(c *Config, v float64) { c.InitState.Predator = v },
		},
		{
			Key: "delta", Label: "Birth rate of predators (δ)", Min: 1, Max: 10, Step: 1,
			Get: func(c *Config) float64 { return c.Params.Delta },
			Set: func(c *Config, v float64) { c.Params.Delta = v },
		},
		{
			Key: "gamma", Label: "Death rate of predators (γ)", Min: 1, Max: 10, Step: 1,
			Get: func(c *Config) float64 { return c.Params.Gamma },
			Set: func(c *Config, v float64) { c.Params.Gamma = v },
		},
	}
}

// Clamp snaps v to the slider's step grid inside [Min, Max].
func (s Slider) Clamp(v float64) float64 {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// OnStep reports whether v lies on the slider's step grid.
func (s Slider) OnStep(v float64) bool {
	if s.Step <= 0 {
		return true
	}
	n := (v - s.Min) / s.Step
	return math.Abs(n-math.Round(n)) < 1e-9
}

// Inc moves the slider one step up and reports whether the value changed.
func (s Slider) Inc(c *Config) bool {
	return s.move(c, s.Step)
}

// Dec moves the slider one step down and reports whether the value changed.
func (s Slider) Dec(c *Config) bool {
	return s.move(c, -s.Step)
}

func (s Slider) move(c *Config, delta float64) bool {
	old := s.Get(c)
	v := s.Clamp(old + delta)
	if v == old {
		return false
	}
	s.Set(c, v)
	return true
}

// SliderByKey returns the slider with the given key.
func SliderByKey(key string) (Slider, bool) {
	for _, s := range Sliders() {
		if s.Key == key {
			return s, true
		}
	}
	return Slider{}, false
}
