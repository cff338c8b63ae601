// Package config loads tracking and analysis settings from YAML and maps
// them onto the option types of the smoothing, quality, tremor and session
// packages.
//
// Example config.yaml:
//
//	smoothing:
//	  method: oneeuro
//	  min_cutoff: 1.0
//	  beta: 0.0
//	quality:
//	  green_threshold: 0.7
//	tremor:
//	  window: hamming
//	  confidence: spectral
//	session:
//	  capture_duration: 20s
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-motion/dsp/conv"
	"github.com/cwbudde/algo-motion/dsp/filter/ema"
	"github.com/cwbudde/algo-motion/dsp/filter/oneeuro"
	"github.com/cwbudde/algo-motion/dsp/window"
	"github.com/cwbudde/algo-motion/measure/tremor"
	"github.com/cwbudde/algo-motion/pose/quality"
	"github.com/cwbudde/algo-motion/pose/smooth"
	"github.com/cwbudde/algo-motion/session"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the root of the YAML document.
type Config struct {
	Smoothing Smoothing `yaml:"smoothing"`
	Quality   Quality   `yaml:"quality"`
	Tremor    Tremor    `yaml:"tremor"`
	Session   Session   `yaml:"session"`
}

// Smoothing configures the per-landmark smoothing bank.
type Smoothing struct {
	Method          string  `yaml:"method"`
	MinCutoff       float64 `yaml:"min_cutoff"`
	Beta            float64 `yaml:"beta"`
	DCutoff         float64 `yaml:"d_cutoff"`
	SecondsTimebase bool    `yaml:"seconds_timebase"`
	EMAAlpha        float64 `yaml:"ema_alpha"`
}

// Quality configures the pose quality assessor.
type Quality struct {
	VisibilityThreshold float64 `yaml:"visibility_threshold"`
	GreenThreshold      float64 `yaml:"green_threshold"`
	AmberThreshold      float64 `yaml:"amber_threshold"`
	KeyBonus            float64 `yaml:"key_bonus"`
	KeyLandmarks        []int   `yaml:"key_landmarks,flow"`
}

// Tremor configures the tremor analyzer.
type Tremor struct {
	MinSamples        int     `yaml:"min_samples"`
	BandLowHz         float64 `yaml:"band_low_hz"`
	BandHighHz        float64 `yaml:"band_high_hz"`
	PeakThreshold     float64 `yaml:"peak_threshold"`
	VarianceThreshold float64 `yaml:"variance_threshold"`
	Window            string  `yaml:"window"`
	Confidence        string  `yaml:"confidence"`
	Autocorrelation   string  `yaml:"autocorrelation"`
}

// Session configures the capture controller.
type Session struct {
	CaptureDuration time.Duration `yaml:"capture_duration"`
	WristVisibility float64       `yaml:"wrist_visibility"`
}

// LoadDefaults returns the built-in settings.
func LoadDefaults() *Config {
	oe := oneeuro.DefaultConfig()
	tr := tremor.DefaultConfig()

	return &Config{
		Smoothing: Smoothing{
			Method:    smooth.MethodOneEuro.String(),
			MinCutoff: oe.MinCutoff,
			Beta:      oe.Beta,
			DCutoff:   oe.DCutoff,
			EMAAlpha:  ema.DefaultAlpha,
		},
		Quality: Quality{
			VisibilityThreshold: 0.3,
			GreenThreshold:      0.7,
			AmberThreshold:      0.4,
			KeyBonus:            0.2,
			KeyLandmarks:        append([]int(nil), quality.DefaultKeyLandmarks...),
		},
		Tremor: Tremor{
			MinSamples:        tr.MinSamples,
			BandLowHz:         tr.BandLowHz,
			BandHighHz:        tr.BandHighHz,
			PeakThreshold:     tr.PeakThreshold,
			VarianceThreshold: tr.VarianceThreshold,
			Window:            tr.Window.String(),
			Confidence:        tr.Confidence.String(),
			Autocorrelation:   tr.Autocorrelation.String(),
		},
		Session: Session{
			CaptureDuration: session.DefaultCaptureDuration,
			WristVisibility: 0.5,
		},
	}
}

// LoadFromFile reads path over the defaults. Keys absent from the file keep
// their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML document over the defaults and validates it. Empty
// input yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := LoadDefaults()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	if _, err := parseSmoothMethod(c.Smoothing.Method); err != nil {
		return err
	}

	if c.Smoothing.EMAAlpha < 0 || c.Smoothing.EMAAlpha > 1 {
		return fmt.Errorf("%w: ema_alpha %v outside [0,1]", ErrInvalid, c.Smoothing.EMAAlpha)
	}

	if c.Quality.AmberThreshold > c.Quality.GreenThreshold {
		return fmt.Errorf("%w: amber_threshold %v above green_threshold %v",
			ErrInvalid, c.Quality.AmberThreshold, c.Quality.GreenThreshold)
	}

	if c.Tremor.BandHighHz < c.Tremor.BandLowHz {
		return fmt.Errorf("%w: band %v..%v Hz is inverted", ErrInvalid, c.Tremor.BandLowHz, c.Tremor.BandHighHz)
	}

	if _, err := c.TremorConfig(); err != nil {
		return err
	}

	if c.Session.CaptureDuration < 0 {
		return fmt.Errorf("%w: negative capture_duration %v", ErrInvalid, c.Session.CaptureDuration)
	}

	return nil
}

// SmoothingOptions returns the smoothing bank options.
func (c *Config) SmoothingOptions() ([]smooth.Option, error) {
	method, err := parseSmoothMethod(c.Smoothing.Method)
	if err != nil {
		return nil, err
	}

	oe := []oneeuro.Option{
		oneeuro.WithMinCutoff(c.Smoothing.MinCutoff),
		oneeuro.WithBeta(c.Smoothing.Beta),
		oneeuro.WithDCutoff(c.Smoothing.DCutoff),
	}
	if c.Smoothing.SecondsTimebase {
		oe = append(oe, oneeuro.WithSecondsTimebase())
	}

	return []smooth.Option{
		smooth.WithMethod(method),
		smooth.WithOneEuroOptions(oe...),
		smooth.WithEMAAlpha(c.Smoothing.EMAAlpha),
	}, nil
}

// Assessor builds the quality assessor.
func (c *Config) Assessor() *quality.Assessor {
	return quality.NewAssessor(
		quality.WithVisibilityThreshold(c.Quality.VisibilityThreshold),
		quality.WithThresholds(c.Quality.GreenThreshold, c.Quality.AmberThreshold),
		quality.WithKeyBonus(c.Quality.KeyBonus),
		quality.WithKeyLandmarks(c.Quality.KeyLandmarks...),
	)
}

// TremorConfig converts the tremor section.
func (c *Config) TremorConfig() (tremor.Config, error) {
	t := c.Tremor

	win := window.TypeHamming
	if t.Window != "" {
		var err error
		if win, err = window.ParseType(t.Window); err != nil {
			return tremor.Config{}, fmt.Errorf("%w: window: %w", ErrInvalid, err)
		}
	}

	var confidence tremor.ConfidenceMethod
	switch t.Confidence {
	case "", tremor.ConfidenceHeuristic.String():
		confidence = tremor.ConfidenceHeuristic
	case tremor.ConfidenceSpectral.String():
		confidence = tremor.ConfidenceSpectral
	default:
		return tremor.Config{}, fmt.Errorf("%w: confidence %q", ErrInvalid, t.Confidence)
	}

	var method conv.Method
	switch t.Autocorrelation {
	case "", conv.MethodDirect.String():
		method = conv.MethodDirect
	case conv.MethodFFT.String():
		method = conv.MethodFFT
	default:
		return tremor.Config{}, fmt.Errorf("%w: autocorrelation %q", ErrInvalid, t.Autocorrelation)
	}

	return tremor.Config{
		MinSamples:        t.MinSamples,
		BandLowHz:         t.BandLowHz,
		BandHighHz:        t.BandHighHz,
		PeakThreshold:     t.PeakThreshold,
		VarianceThreshold: t.VarianceThreshold,
		Window:            win,
		WindowSet:         true,
		Confidence:        confidence,
		Autocorrelation:   method,
	}, nil
}

// Analyzer builds the tremor analyzer.
func (c *Config) Analyzer() (*tremor.Analyzer, error) {
	cfg, err := c.TremorConfig()
	if err != nil {
		return nil, err
	}

	return tremor.NewAnalyzer(cfg), nil
}

// SessionOptions returns controller options covering every section.
func (c *Config) SessionOptions() ([]session.Option, error) {
	smoothing, err := c.SmoothingOptions()
	if err != nil {
		return nil, err
	}

	analyzer, err := c.Analyzer()
	if err != nil {
		return nil, err
	}

	return []session.Option{
		session.WithSmoothing(smoothing...),
		session.WithAssessor(c.Assessor()),
		session.WithAnalyzer(analyzer),
		session.WithCaptureDuration(c.Session.CaptureDuration),
		session.WithWristVisibility(c.Session.WristVisibility),
	}, nil
}

func parseSmoothMethod(name string) (smooth.Method, error) {
	switch name {
	case "", smooth.MethodOneEuro.String():
		return smooth.MethodOneEuro, nil
	case smooth.MethodEMA.String():
		return smooth.MethodEMA, nil
	default:
		return 0, fmt.Errorf("%w: smoothing method %q", ErrInvalid, name)
	}
}
