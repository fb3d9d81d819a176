package main

import (
	"math"

	"github.com/pthm-cable/petri/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before it is applied
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Trait weights
			{Name: "aging_weight", Path: "genome.weights.aging_rate_divisor", Min: 0.25, Max: 4.0, Default: 1.0},
			{Name: "eating_weight", Path: "genome.weights.eating_efficiency", Min: 1.0, Max: 15.0, Default: 5.0},
			// Food density
			{Name: "food_plants", Path: "food.plants", Min: 10, Max: 600, Default: 100, Integer: true},
			// Reproduction
			{Name: "life_threshold", Path: "reproduction.life_threshold", Min: 50, Max: 250, Default: 100},
			{Name: "birth_chance", Path: "reproduction.chance", Min: 0.001, Max: 0.05, Default: 0.01},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		v[i] = ps.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		normalized[i] = (raw[i] - ps.Min) / (ps.Max - ps.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		raw[i] = ps.Min + normalized[i]*(ps.Max-ps.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and integer parameters are whole.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, ps := range pv.Specs {
		val := math.Min(math.Max(v[i], ps.Min), ps.Max)
		if ps.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct and refreshes
// its derived values. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Genome.Weights.AgingRateDivisor = clamped[0]
	cfg.Genome.Weights.EatingEfficiency = clamped[1]
	cfg.Food.Plants = int(clamped[2])
	cfg.Reproduction.LifeThreshold = clamped[3]
	cfg.Reproduction.Chance = clamped[4]

	cfg.Recompute()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Genome.Weights.AgingRateDivisor,
		cfg.Genome.Weights.EatingEfficiency,
		float64(cfg.Food.Plants),
		cfg.Reproduction.LifeThreshold,
		cfg.Reproduction.Chance,
	}
}
