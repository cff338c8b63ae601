package lowpass

import "math"

// Filter is a one-pole exponential smoother with seed semantics: the first
// sample is returned unchanged and becomes the filter memory.
//
// The zero value is ready to use.
type Filter struct {
	last        float64
	initialized bool
}

// Process filters value with smoothing factor alpha in [0,1]. Larger alpha
// follows the input more closely.
func (f *Filter) Process(value, alpha float64) float64 {
	if !f.initialized {
		f.last = value
		f.initialized = true
		return value
	}

	out := alpha*value + (1-alpha)*f.last
	f.last = out

	return out
}

// Last returns the most recent output, or 0 before the first sample.
func (f *Filter) Last() float64 {
	return f.last
}

// Initialized reports whether the filter has been seeded.
func (f *Filter) Initialized() bool {
	return f.initialized
}

// Reset returns the filter to its unseeded state.
func (f *Filter) Reset() {
	f.last = 0
	f.initialized = false
}

// Alpha returns the smoothing factor of a first-order low-pass with the
// given cutoff frequency for a sampling interval dt:
//
//	tau   = 1 / (2π·cutoff)
//	alpha = 1 / (1 + tau/dt)
//
// dt is expressed in the caller's time unit; cutoff is its reciprocal.
func Alpha(cutoff, dt float64) float64 {
	tau := 1 / (2 * math.Pi * cutoff)
	return 1 / (1 + tau/dt)
}
