package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sync"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-motion/dsp/core"
)

// Errors returned by Compute.
var (
	ErrEmptyInput        = errors.New("spectrum: empty input")
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be positive and finite")
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	buf.data = core.EnsureLen(buf.data, need)
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Power is a one-sided power spectrum.
type Power struct {
	// Bins holds |X[k]|² for k in [0, FFTSize/2].
	Bins       []float64
	FFTSize    int
	SampleRate float64
}

// Compute returns the one-sided power spectrum of x sampled at sampleRate.
func Compute(x []float64, sampleRate float64) (Power, error) {
	if len(x) == 0 {
		return Power{}, ErrEmptyInput
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Power{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	fftSize := nextPowerOf2(max(len(x), 2))

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Power{}, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Power{}, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	return Power{
		Bins:       PowerOf(out[:fftSize/2+1]),
		FFTSize:    fftSize,
		SampleRate: sampleRate,
	}, nil
}

// PowerOf returns |X[k]|² for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func PowerOf(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Frequency returns the centre frequency of bin k in Hz.
func (p Power) Frequency(k int) float64 {
	if p.FFTSize == 0 {
		return 0
	}

	return float64(k) * p.SampleRate / float64(p.FFTSize)
}

// Band returns the inclusive bin range whose centre frequencies fall in
// [loHz, hiHz]. ok is false when no bin does.
func (p Power) Band(loHz, hiHz float64) (lo, hi int, ok bool) {
	if len(p.Bins) == 0 || p.SampleRate <= 0 || hiHz < loHz {
		return 0, 0, false
	}

	res := p.SampleRate / float64(p.FFTSize)
	lo = max(0, int(math.Ceil(loHz/res)))
	hi = min(len(p.Bins)-1, int(math.Floor(hiHz/res)))

	if lo > hi {
		return 0, 0, false
	}

	return lo, hi, true
}

// Peak returns the index and value of the largest bin in [lo, hi].
// It returns -1 for an empty range.
func (p Power) Peak(lo, hi int) (int, float64) {
	lo = max(lo, 0)
	hi = min(hi, len(p.Bins)-1)
	if lo > hi {
		return -1, 0
	}

	idx, val := lo, p.Bins[lo]
	for k := lo + 1; k <= hi; k++ {
		if p.Bins[k] > val {
			idx, val = k, p.Bins[k]
		}
	}

	return idx, val
}

// Mean returns the mean bin value over [lo, hi], or 0 for an empty range.
func (p Power) Mean(lo, hi int) float64 {
	lo = max(lo, 0)
	hi = min(hi, len(p.Bins)-1)
	if lo > hi {
		return 0
	}

	return vecmath.Sum(p.Bins[lo:hi+1]) / float64(hi-lo+1)
}

// Prominence returns how far bin k rises above its surroundings: the bin
// value minus the larger of the minima over up to width bins on each side.
// A side with no bins is ignored; with neither side present it returns 0.
func (p Power) Prominence(k, width int) float64 {
	if k < 0 || k >= len(p.Bins) || width <= 0 {
		return 0
	}

	floor := math.Inf(-1)

	if left := p.Bins[max(0, k-width):k]; len(left) > 0 {
		floor = math.Max(floor, minOf(left))
	}

	if right := p.Bins[k+1 : min(len(p.Bins), k+1+width)]; len(right) > 0 {
		floor = math.Max(floor, minOf(right))
	}

	if math.IsInf(floor, -1) {
		return 0
	}

	return p.Bins[k] - floor
}

func minOf(x []float64) float64 {
	m := x[0]
	for _, v := range x[1:] {
		m = math.Min(m, v)
	}

	return m
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
