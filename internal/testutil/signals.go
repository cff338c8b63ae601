// Package testutil holds deterministic signal and trajectory generators and
// tolerance assertions shared by package tests.
package testutil

import "math"

// SplitMix64 is a tiny deterministic generator. Its output is identical on
// every platform and Go release, unlike math/rand streams.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 seeds a generator.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

// Uint64 returns the next 64-bit value.
func (s *SplitMix64) Uint64() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Float64 returns a value in [0, 1) with 53 bits of precision.
func (s *SplitMix64) Float64() float64 {
	return float64(s.Uint64()>>11) * (1.0 / (1 << 53))
}

// Uniform returns n values in [0, 1).
func Uniform(seed uint64, n int) []float64 {
	rng := NewSplitMix64(seed)
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()
	}
	return out
}

// DeterministicNoise returns n values uniformly spread over
// [-amplitude, amplitude).
func DeterministicNoise(seed uint64, n int, amplitude float64) []float64 {
	out := Uniform(seed, n)
	for i := range out {
		out[i] = (out[i]*2 - 1) * amplitude
	}
	return out
}

// Sine returns amplitude·sin(2π·freqHz·i/sampleRate + phase) for i in [0, n).
func Sine(freqHz, sampleRate float64, n int, amplitude, phase float64) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}
	return out
}

// Timestamps returns n millisecond stamps spaced 1000/rateHz apart from
// startMs.
func Timestamps(n int, rateHz, startMs float64) []float64 {
	out := make([]float64, n)
	step := 1000 / rateHz
	for i := range out {
		out[i] = startMs + float64(i)*step
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
