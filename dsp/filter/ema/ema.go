// Package ema provides a single-parameter exponential moving average
// smoother for landmark points.
package ema

import (
	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/pose"
)

// DefaultAlpha is the smoothing factor used by New when none is given.
const DefaultAlpha = 0.3

// Smoother blends each new point with the previous output.
//
// The zero value is not usable; construct with New.
type Smoother struct {
	alpha float64
	last  pose.Point
	has   bool
}

// New returns a Smoother with alpha clamped to [0,1]. NaN selects
// DefaultAlpha.
func New(alpha float64) *Smoother {
	if alpha != alpha {
		alpha = DefaultAlpha
	}

	return &Smoother{alpha: core.Clamp(alpha, 0, 1)}
}

// Alpha returns the effective smoothing factor.
func (s *Smoother) Alpha() float64 {
	return s.alpha
}

// Smooth returns the smoothed point. The first call returns p unchanged.
// Z is blended only when both p and the previous output carry one;
// otherwise the result is 2D.
func (s *Smoother) Smooth(p pose.Point) pose.Point {
	if !s.has {
		s.last = p.Clone()
		s.has = true
		return p.Clone()
	}

	a := s.alpha
	out := pose.Point{
		X: a*p.X + (1-a)*s.last.X,
		Y: a*p.Y + (1-a)*s.last.Y,
	}

	if p.HasZ() && s.last.HasZ() {
		out = out.WithZ(a*(*p.Z) + (1-a)*(*s.last.Z))
	}

	s.last = out.Clone()

	return out
}

// Reset forgets the previous output.
func (s *Smoother) Reset() {
	s.last = pose.Point{}
	s.has = false
}
