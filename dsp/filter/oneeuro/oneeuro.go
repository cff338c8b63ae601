package oneeuro

import (
	"math"

	"github.com/cwbudde/algo-motion/dsp/filter/lowpass"
	"github.com/cwbudde/algo-motion/pose"
)

const (
	defaultMinCutoff = 1.0
	defaultBeta      = 0.0
	defaultDCutoff   = 1.0

	axisX = 0
	axisY = 1
	axisZ = 2
)

// Config holds the One-Euro parameters.
type Config struct {
	// MinCutoff is the cutoff used when the signal is still.
	MinCutoff float64
	// Beta scales how strongly speed raises the cutoff.
	Beta float64
	// DCutoff is the cutoff of the velocity smoother.
	DCutoff float64
	// SecondsTimebase divides millisecond deltas by 1000 before use.
	SecondsTimebase bool
}

// Option configures a Filter.
type Option func(*Config)

// DefaultConfig returns MinCutoff=1, Beta=0, DCutoff=1.
func DefaultConfig() Config {
	return Config{
		MinCutoff: defaultMinCutoff,
		Beta:      defaultBeta,
		DCutoff:   defaultDCutoff,
	}
}

// WithMinCutoff sets the baseline cutoff. Non-positive values are ignored.
func WithMinCutoff(v float64) Option {
	return func(c *Config) {
		if v > 0 && !math.IsInf(v, 0) {
			c.MinCutoff = v
		}
	}
}

// WithBeta sets the speed coefficient. Negative values are ignored.
func WithBeta(v float64) Option {
	return func(c *Config) {
		if v >= 0 && !math.IsInf(v, 0) {
			c.Beta = v
		}
	}
}

// WithDCutoff sets the velocity cutoff. Non-positive values are ignored.
func WithDCutoff(v float64) Option {
	return func(c *Config) {
		if v > 0 && !math.IsInf(v, 0) {
			c.DCutoff = v
		}
	}
}

// WithSecondsTimebase makes the filter convert millisecond deltas to seconds.
func WithSecondsTimebase() Option {
	return func(c *Config) {
		c.SecondsTimebase = true
	}
}

// Filter smooths one tracked point.
//
// This implementation is not thread-safe; owners that share a Filter across
// goroutines must serialize Filter and Reset.
type Filter struct {
	cfg Config

	pos [3]lowpass.Filter
	vel [3]lowpass.Filter

	lastTimestamp float64
	hasTimestamp  bool
}

// New creates a One-Euro filter.
func New(opts ...Option) *Filter {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Filter{cfg: cfg}
}

// Config returns the filter parameters.
func (f *Filter) Config() Config {
	return f.cfg
}

// Filter smooths p observed at timestampMs and returns the result.
//
// The first call only records the timestamp and returns p. A call whose
// timestamp does not advance past the previous one returns p without
// touching the filter memory; the timestamp is still recorded. The z axis is
// filtered only when p carries one.
func (f *Filter) Filter(p pose.Point, timestampMs float64) pose.Point {
	if !f.hasTimestamp {
		f.lastTimestamp = timestampMs
		f.hasTimestamp = true
		return p.Clone()
	}

	dt := timestampMs - f.lastTimestamp
	f.lastTimestamp = timestampMs

	if !(dt > 0) {
		return p.Clone()
	}

	if f.cfg.SecondsTimebase {
		dt /= 1000
	}

	values := [3]float64{p.X, p.Y, p.ZOr(0)}
	axes := 2
	if p.HasZ() {
		axes = 3
	}

	dAlpha := lowpass.Alpha(f.cfg.DCutoff, dt)

	var speedSq float64
	for i := 0; i < axes; i++ {
		v := (values[i] - f.pos[i].Last()) / dt
		sv := f.vel[i].Process(v, dAlpha)
		speedSq += sv * sv
	}

	cutoff := f.cfg.MinCutoff + f.cfg.Beta*math.Sqrt(speedSq)
	alpha := lowpass.Alpha(cutoff, dt)

	out := pose.Point{
		X: f.pos[axisX].Process(values[axisX], alpha),
		Y: f.pos[axisY].Process(values[axisY], alpha),
	}
	if p.HasZ() {
		out = out.WithZ(f.pos[axisZ].Process(values[axisZ], alpha))
	}

	return out
}

// Reset clears all per-axis state and the stored timestamp.
func (f *Filter) Reset() {
	for i := range f.pos {
		f.pos[i].Reset()
		f.vel[i].Reset()
	}

	f.lastTimestamp = 0
	f.hasTimestamp = false
}
