// Package main provides CMA-ES search for pendulum seeds with the
// longest flip times.
package main

import (
	"math"

	"github.com/pthm-cable/flipfield/config"
	"github.com/pthm-cable/flipfield/pendulum"
)

// ParamSpec defines one searchable dimension.
type ParamSpec struct {
	Name string
	Min  float64
	Max  float64
}

// SearchSpace maps an optimizer vector to a pendulum seed. The two
// modes match the canvas seeding modes: angles sweeps the release
// angles, armlengths sweeps the arm lengths at a fixed release.
type SearchSpace struct {
	Mode  string
	Specs []ParamSpec
	cfg   *config.Config
}

func NewSearchSpace(mode string, cfg *config.Config) *SearchSpace {
	s := &SearchSpace{Mode: mode, cfg: cfg}
	switch mode {
	case config.SeedArmLengths:
		s.Specs = []ParamSpec{
			{Name: "l1", Min: cfg.Seeding.MinArm, Max: cfg.Seeding.MaxArm},
			{Name: "l2", Min: cfg.Seeding.MinArm, Max: cfg.Seeding.MaxArm},
		}
	default:
		s.Specs = []ParamSpec{
			{Name: "theta1", Min: 0, Max: 2 * math.Pi},
			{Name: "theta2", Min: 0, Max: math.Pi},
		}
	}
	return s
}

// Dim returns the number of search dimensions.
func (s *SearchSpace) Dim() int {
	return len(s.Specs)
}

// Normalize converts raw values to [0,1].
func (s *SearchSpace) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(s.Specs))
	for i, spec := range s.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw values.
func (s *SearchSpace) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(s.Specs))
	for i, spec := range s.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp forces values into their bounds.
func (s *SearchSpace) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(s.Specs))
	for i, spec := range s.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// Seed builds the pendulum state and parameters for a raw vector.
func (s *SearchSpace) Seed(raw []float64) (pendulum.State, pendulum.Params) {
	prm := pendulum.Params{
		M1: s.cfg.Physics.M1,
		M2: s.cfg.Physics.M2,
		L1: s.cfg.Physics.L1,
		L2: s.cfg.Physics.L2,
		G:  s.cfg.Physics.Gravity,
	}
	var st pendulum.State
	switch s.Mode {
	case config.SeedArmLengths:
		st = pendulum.State{Theta1: math.Pi, Theta2: math.Pi / 2}
		prm.L1 = raw[0]
		prm.L2 = raw[1]
	default:
		st = pendulum.State{Theta1: raw[0], Theta2: raw[1]}
	}
	return st, prm
}

// CanvasPoint maps a raw vector to the canvas pixel that would carry
// this seed, so results line up with rendered images.
func (s *SearchSpace) CanvasPoint(raw []float64) (int, int) {
	w := s.cfg.Canvas.Width
	h := s.cfg.Canvas.Height

	fx := (raw[0] - s.Specs[0].Min) / (s.Specs[0].Max - s.Specs[0].Min)
	fy := (raw[1] - s.Specs[1].Min) / (s.Specs[1].Max - s.Specs[1].Min)

	px := int(fx * float64(w))
	py := int(fy * float64(h))
	if px >= w {
		px = w - 1
	}
	if py >= h {
		py = h - 1
	}
	if px < 0 {
		px = 0
	}
	if py < 0 {
		py = 0
	}
	return px, py
}

// FromCanvasPoint is the inverse of CanvasPoint, used to warm-start
// from hall-of-fame entries recorded by a render run.
func (s *SearchSpace) FromCanvasPoint(px, py int) []float64 {
	fx := float64(px) / float64(s.cfg.Canvas.Width)
	fy := float64(py) / float64(s.cfg.Canvas.Height)
	return []float64{
		s.Specs[0].Min + fx*(s.Specs[0].Max-s.Specs[0].Min),
		s.Specs[1].Min + fy*(s.Specs[1].Max-s.Specs[1].Min),
	}
}
