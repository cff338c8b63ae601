package webdemo

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/dsp/signal"
	"github.com/cwbudde/algo-motion/dsp/spectrum"
	"github.com/cwbudde/algo-motion/dsp/window"
	"github.com/cwbudde/algo-motion/measure/tremor"
	timestats "github.com/cwbudde/algo-motion/stats/time"
)

const (
	minSpectrumDB      = -130.0
	minSpectrumSamples = 8
)

// SpectrumParams configures the trajectory spectrum shown next to the
// capture.
type SpectrumParams struct {
	Window string `json:"window"`
	// Axis is "x", "y" or "auto" (the axis with the larger variance).
	Axis string `json:"axis"`
}

// SetSpectrum updates the analyzer settings of the trajectory spectrum.
func (e *Engine) SetSpectrum(p SpectrumParams) error {
	cfg := sanitizeSpectrumParams(p)

	if _, err := window.ParseType(cfg.Window); err != nil {
		return fmt.Errorf("unsupported spectrum window: %s", cfg.Window)
	}

	switch cfg.Axis {
	case axisAuto, axisX, axisY:
	default:
		return fmt.Errorf("unsupported spectrum axis: %s", cfg.Axis)
	}

	e.spectrum = cfg

	return nil
}

// SpectrumCurveDB returns the amplitude spectrum of the captured trajectory
// in dB at each of freqs. Until enough samples exist every value is the
// floor.
func (e *Engine) SpectrumCurveDB(freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	for i := range out {
		out[i] = minSpectrumDB
	}

	db, binHz := e.trajectorySpectrumDB()
	if len(db) < 2 {
		return out
	}

	lastBin := len(db) - 1
	nyquist := binHz * float64(lastBin)

	for i, f := range freqs {
		f = core.Clamp(f, 0, nyquist)

		bin := f / binHz
		if bin >= float64(lastBin) {
			out[i] = db[lastBin]
			continue
		}

		base := int(bin)
		frac := bin - float64(base)
		out[i] = db[base] + frac*(db[base+1]-db[base])
	}

	return out
}

func (e *Engine) trajectorySpectrumDB() ([]float64, float64) {
	samples := e.ctrl.Trajectory()
	if len(samples) < minSpectrumSamples {
		return nil, 0
	}

	rate := tremor.SamplingRate(samples)
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, 0
	}

	series := pickAxis(samples, e.spectrum.Axis)

	detrended, err := signal.Detrend(series)
	if err != nil {
		return nil, 0
	}

	winType, _ := window.ParseType(e.spectrum.Window)
	coeffs := window.Generate(winType, len(detrended))
	windowed, err := window.ApplyCoefficients(detrended, coeffs)
	if err != nil {
		return nil, 0
	}

	gain, err := window.CoherentGain(coeffs)
	if err != nil || gain <= 0 {
		return nil, 0
	}

	p, err := spectrum.Compute(windowed, rate)
	if err != nil {
		return nil, 0
	}

	const eps = 1e-12

	norm := float64(len(windowed)) * gain
	last := len(p.Bins) - 1
	db := make([]float64, len(p.Bins))
	for k, pw := range p.Bins {
		mag := math.Sqrt(pw) / norm
		if k > 0 && k < last {
			mag *= 2
		}

		db[k] = math.Max(minSpectrumDB, 20*math.Log10(math.Max(eps, mag)))
	}

	return db, p.Frequency(1)
}

func pickAxis(samples []tremor.Sample, axis string) []float64 {
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.X
		ys[i] = s.Y
	}

	switch axis {
	case axisX:
		return xs
	case axisY:
		return ys
	default:
		if timestats.Variance(xs) > timestats.Variance(ys) {
			return xs
		}

		return ys
	}
}

func sanitizeSpectrumParams(p SpectrumParams) SpectrumParams {
	cfg := p

	cfg.Window = strings.ToLower(strings.TrimSpace(cfg.Window))
	if cfg.Window == "" {
		cfg.Window = window.TypeHann.String()
	}

	cfg.Axis = strings.ToLower(strings.TrimSpace(cfg.Axis))
	if cfg.Axis == "" {
		cfg.Axis = axisAuto
	}

	return cfg
}
