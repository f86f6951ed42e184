// Package main tunes difficulty parameters with CMA-ES.
package main

import (
	"github.com/pthm-cable/barrage/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of difficulty parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Target motion
			{Name: "base_speed", Path: "targets.base_speed", Min: 0.5, Max: 5.0, Default: 2.0},
			{Name: "speed_per_level", Path: "targets.speed_per_level", Min: 0.0, Max: 2.0, Default: 0.5},
			{Name: "speed_band", Path: "targets.speed_band", Min: 0.0, Max: 2.0, Default: 1.0},
			// Batch size
			{Name: "count_per_level", Path: "targets.count_per_level", Min: 0, Max: 8, Default: 2},
			// Time budget
			{Name: "initial_time", Path: "levels.initial_time", Min: 20, Max: 120, Default: 60},
			{Name: "time_per_level", Path: "levels.time_per_level", Min: 0, Max: 15, Default: 5},
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
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Targets.BaseSpeed = clamped[0]
	cfg.Targets.SpeedPerLevel = clamped[1]
	cfg.Targets.SpeedBand = clamped[2]
	cfg.Targets.CountPerLevel = int(clamped[3] + 0.5)
	cfg.Levels.InitialTime = int(clamped[4] + 0.5)
	cfg.Levels.TimePerLevel = int(clamped[5] + 0.5)
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Targets.BaseSpeed,
		cfg.Targets.SpeedPerLevel,
		cfg.Targets.SpeedBand,
		float64(cfg.Targets.CountPerLevel),
		float64(cfg.Levels.InitialTime),
		float64(cfg.Levels.TimePerLevel),
	}
}
