package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/cwbudde/algo-motion/dsp/conv"
	"github.com/cwbudde/algo-motion/dsp/window"
	"github.com/cwbudde/algo-motion/measure/tremor"
	"github.com/cwbudde/algo-motion/pose/smooth"
	"github.com/cwbudde/algo-motion/session"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadDefaultsValid(t *testing.T) {
	cfg := LoadDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	got, err := cfg.TremorConfig()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(tremor.DefaultConfig(), got); diff != "" {
		t.Fatalf("tremor defaults drifted (-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	want := LoadDefaults()
	want.Smoothing.Method = "ema"
	want.Smoothing.EMAAlpha = 0.45
	want.Smoothing.SecondsTimebase = true
	want.Quality.KeyLandmarks = []int{0, 15, 16}
	want.Tremor.Confidence = "spectral"
	want.Tremor.Autocorrelation = "fft"
	want.Session.CaptureDuration = 12500 * time.Millisecond

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRectangularWindowIsKept(t *testing.T) {
	cfg, err := Parse([]byte("tremor:\n  window: rectangular\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	a, err := cfg.Analyzer()
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Config().Window; got != window.TypeRectangular {
		t.Fatalf("effective window = %v, want rectangular", got)
	}
}

func TestLoadFromFileOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
smoothing:
  beta: 0.05
tremor:
  window: hann
  band_high_hz: 10
session:
  capture_duration: 5s
`)

	got, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	want := LoadDefaults()
	want.Smoothing.Beta = 0.05
	want.Tremor.Window = "hann"
	want.Tremor.BandHighHz = 10
	want.Session.CaptureDuration = 5 * time.Second
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("overlay mismatch (-want +got):\n%s", diff)
	}

	tc, err := got.TremorConfig()
	if err != nil {
		t.Fatal(err)
	}
	if tc.Window != window.TypeHann || tc.BandHighHz != 10 || tc.Autocorrelation != conv.MethodDirect {
		t.Fatalf("TremorConfig() = %+v", tc)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{name: "malformed yaml", content: "smoothing: [", invalid: false},
		{name: "unknown method", content: "smoothing:\n  method: kalman\n", invalid: true},
		{name: "alpha out of range", content: "smoothing:\n  ema_alpha: 1.5\n", invalid: true},
		{name: "inverted thresholds", content: "quality:\n  green_threshold: 0.3\n  amber_threshold: 0.6\n", invalid: true},
		{name: "inverted band", content: "tremor:\n  band_low_hz: 9\n  band_high_hz: 4\n", invalid: true},
		{name: "unknown window", content: "tremor:\n  window: kaiser\n", invalid: true},
		{name: "unknown confidence", content: "tremor:\n  confidence: vibes\n", invalid: true},
		{name: "unknown autocorrelation", content: "tremor:\n  autocorrelation: wavelet\n", invalid: true},
		{name: "negative duration", content: "session:\n  capture_duration: -1s\n", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeFile(t, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Fatalf("errors.Is(err, ErrInvalid) = %v, want %v (err = %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestSmoothingOptions(t *testing.T) {
	cfg := LoadDefaults()
	cfg.Smoothing.Method = "ema"

	opts, err := cfg.SmoothingOptions()
	if err != nil {
		t.Fatal(err)
	}
	if got := smooth.NewBank(opts...).Method(); got != smooth.MethodEMA {
		t.Fatalf("Method() = %v, want ema", got)
	}
}

func TestSessionOptions(t *testing.T) {
	cfg := LoadDefaults()
	cfg.Tremor.MinSamples = 2
	cfg.Session.CaptureDuration = 0

	opts, err := cfg.SessionOptions()
	if err != nil {
		t.Fatal(err)
	}

	c := session.NewController(opts...)
	c.StartCapture(0)
	if _, ready := c.Progress(); ready {
		t.Fatal("empty trajectory reported ready")
	}
}

func TestParseEmpty(t *testing.T) {
	got, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if diff := cmp.Diff(LoadDefaults(), got); diff != "" {
		t.Fatalf("Parse(nil) != defaults (-want +got):\n%s", diff)
	}
}
