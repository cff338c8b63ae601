package tremor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-motion/dsp/conv"
	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/dsp/signal"
	"github.com/cwbudde/algo-motion/dsp/spectrum"
	"github.com/cwbudde/algo-motion/dsp/window"
	timestats "github.com/cwbudde/algo-motion/stats/time"
)

const (
	// MinSamples is the default minimum trajectory length.
	MinSamples = 100

	defaultBandLowHz         = 3.0
	defaultBandHighHz        = 8.0
	defaultPeakThreshold     = 0.1
	defaultVarianceThreshold = 0.001

	baseConfidence      = 0.5
	bandBonus           = 0.3
	varianceBonus       = 0.2
	spectralFloor       = 0.1
	spectralScale       = 10
	prominenceWidthBins = 5
)

// ErrInsufficientSamples is returned when a trajectory is shorter than the
// configured minimum.
var ErrInsufficientSamples = errors.New("tremor: insufficient data points for analysis")

// Sample is one wrist position in normalized image coordinates.
type Sample struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	TimestampMs float64 `json:"timestamp"`
}

// Axis names the analysed coordinate.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}

	return "y"
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(b []byte) error {
	switch string(b) {
	case "x":
		*a = AxisX
	case "y":
		*a = AxisY
	default:
		return fmt.Errorf("tremor: unknown axis %q", b)
	}

	return nil
}

// ConfidenceMethod selects the confidence estimator.
type ConfidenceMethod int

const (
	ConfidenceHeuristic ConfidenceMethod = iota
	ConfidenceSpectral
)

func (m ConfidenceMethod) String() string {
	if m == ConfidenceSpectral {
		return "spectral"
	}

	return "heuristic"
}

// Config holds tremor analysis parameters. Zero fields take defaults.
type Config struct {
	MinSamples int
	BandLowHz  float64
	BandHighHz float64
	// PeakThreshold is the fraction of the zero-lag autocorrelation a peak
	// must exceed.
	PeakThreshold float64
	// VarianceThreshold is the windowed variance above which the heuristic
	// confidence earns its variance bonus.
	VarianceThreshold float64
	// Window is used only when WindowSet is true; otherwise the analysis
	// uses Hamming. The flag keeps an explicit rectangular window apart from
	// the zero value.
	Window          window.Type
	WindowSet       bool
	Confidence      ConfidenceMethod
	Autocorrelation conv.Method
}

// DefaultConfig returns the standard analysis parameters.
func DefaultConfig() Config {
	return normalizeConfig(Config{})
}

// Result holds the analysis outcome.
type Result struct {
	// FrequencyHz is the dominant frequency clamped to the band.
	FrequencyHz float64 `json:"frequencyHz"`
	Amplitude   float64 `json:"amplitude"`
	Confidence  float64 `json:"confidence"`

	// RawFrequencyHz is the frequency before clamping.
	RawFrequencyHz float64 `json:"rawFrequencyHz"`
	// Lag is the autocorrelation lag used, in samples.
	Lag int `json:"lag"`
	// PeakFound is false when no credible peak existed and Lag fell back to 1.
	PeakFound      bool    `json:"peakFound"`
	Axis           Axis    `json:"axis"`
	SamplingRateHz float64 `json:"samplingRateHz"`
	Samples        int     `json:"samples"`
}

// MarshalJSON encodes non-finite diagnostics, such as the sampling rate of
// a zero time span, as null.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result

	return json.Marshal(struct {
		plain
		RawFrequencyHz *float64 `json:"rawFrequencyHz"`
		SamplingRateHz *float64 `json:"samplingRateHz"`
	}{
		plain:          plain(r),
		RawFrequencyHz: finiteOrNil(r.RawFrequencyHz),
		SamplingRateHz: finiteOrNil(r.SamplingRateHz),
	})
}

func finiteOrNil(v float64) *float64 {
	if !core.IsFinite(v) {
		return nil
	}

	return &v
}

// Trace exposes the intermediate series of one analysis.
type Trace struct {
	Series          []float64
	Detrended       []float64
	Windowed        []float64
	Autocorrelation []float64
}

// Analyzer runs tremor analysis with a fixed configuration. It holds no
// mutable state and is safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: normalizeConfig(cfg)}
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze runs the default analysis.
func Analyze(samples []Sample) (Result, error) {
	return NewAnalyzer(Config{}).Analyze(samples)
}

// Analyze estimates frequency, amplitude and confidence of the dominant
// oscillation in samples.
func (a *Analyzer) Analyze(samples []Sample) (Result, error) {
	res, _, err := a.AnalyzeTrace(samples)
	return res, err
}

// AnalyzeTrace is Analyze that also returns the intermediate series.
func (a *Analyzer) AnalyzeTrace(samples []Sample) (Result, Trace, error) {
	cfg := a.cfg
	n := len(samples)

	if n < cfg.MinSamples {
		return Result{}, Trace{}, fmt.Errorf("%w: got %d (minimum %d required)",
			ErrInsufficientSamples, n, cfg.MinSamples)
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, s := range samples {
		xs[i] = s.X
		ys[i] = s.Y
	}

	axis, series := AxisY, ys
	if timestats.Variance(xs) > timestats.Variance(ys) {
		axis, series = AxisX, xs
	}

	rate := SamplingRate(samples)

	detrended, err := signal.Detrend(series)
	if err != nil {
		return Result{}, Trace{}, fmt.Errorf("tremor: detrend: %w", err)
	}

	windowed := append([]float64(nil), detrended...)
	window.Apply(cfg.Window, windowed)

	acf, err := conv.AutoCorrelate(windowed, n/2, cfg.Autocorrelation)
	if err != nil {
		return Result{}, Trace{}, fmt.Errorf("tremor: autocorrelation: %w", err)
	}

	lag, found := firstPeak(acf, cfg.PeakThreshold)
	raw := rate / float64(lag)
	variance := timestats.Variance(windowed)

	res := Result{
		FrequencyHz:    core.Clamp(raw, cfg.BandLowHz, cfg.BandHighHz),
		Amplitude:      math.Sqrt(variance),
		RawFrequencyHz: raw,
		Lag:            lag,
		PeakFound:      found,
		Axis:           axis,
		SamplingRateHz: rate,
		Samples:        n,
	}

	switch cfg.Confidence {
	case ConfidenceSpectral:
		res.Confidence = spectralConfidence(windowed, rate, cfg.BandLowHz, cfg.BandHighHz)
	default:
		res.Confidence = heuristicConfidence(raw, variance, cfg)
	}

	trace := Trace{
		Series:          series,
		Detrended:       detrended,
		Windowed:        windowed,
		Autocorrelation: acf,
	}

	return res, trace, nil
}

// SamplingRate returns (n-1) divided by the covered time span in seconds.
// A zero span yields +Inf; timestamps running backwards give a negative
// rate.
func SamplingRate(samples []Sample) float64 {
	if len(samples) < 2 {
		return 0
	}

	spanMs := samples[len(samples)-1].TimestampMs - samples[0].TimestampMs
	if spanMs == 0 {
		return math.Inf(1)
	}

	return float64(len(samples)-1) / (spanMs / 1000)
}

// firstPeak returns the first lag whose autocorrelation is a strict local
// maximum above threshold·r[0]. It falls back to lag 1.
func firstPeak(r []float64, threshold float64) (int, bool) {
	for lag := 1; lag < len(r)-1; lag++ {
		if r[lag] > r[lag-1] && r[lag] > r[lag+1] && r[lag] > threshold*r[0] {
			return lag, true
		}
	}

	return 1, false
}

func heuristicConfidence(rawHz, variance float64, cfg Config) float64 {
	c := baseConfidence

	if core.InRange(rawHz, cfg.BandLowHz, cfg.BandHighHz) {
		c += bandBonus
	}

	if variance > cfg.VarianceThreshold {
		c += varianceBonus
	}

	return min(1, c)
}

func spectralConfidence(windowed []float64, rate, loHz, hiHz float64) float64 {
	p, err := spectrum.Compute(windowed, rate)
	if err != nil {
		return spectralFloor
	}

	lo, hi, ok := p.Band(loHz, hiHz)
	if !ok {
		return spectralFloor
	}

	k, peak := p.Peak(lo, hi)
	mean := p.Mean(lo, hi)
	if !(peak > 0) || !(mean > 0) {
		return spectralFloor
	}

	snr := peak / mean
	prominence := p.Prominence(k, prominenceWidthBins)
	c := min(1, snr*prominence/(peak*spectralScale))

	return max(spectralFloor, c)
}

func normalizeConfig(cfg Config) Config {
	if cfg.MinSamples <= 0 {
		cfg.MinSamples = MinSamples
	}

	if cfg.BandLowHz <= 0 {
		cfg.BandLowHz = defaultBandLowHz
	}

	if cfg.BandHighHz <= 0 {
		cfg.BandHighHz = defaultBandHighHz
	}

	if cfg.BandHighHz < cfg.BandLowHz {
		cfg.BandHighHz = cfg.BandLowHz
	}

	if cfg.PeakThreshold <= 0 {
		cfg.PeakThreshold = defaultPeakThreshold
	}

	if cfg.VarianceThreshold <= 0 {
		cfg.VarianceThreshold = defaultVarianceThreshold
	}

	if !cfg.WindowSet {
		cfg.Window = window.TypeHamming
		cfg.WindowSet = true
	}

	return cfg
}
