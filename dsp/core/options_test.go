package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(60), WithStartMs(1000))
	if cfg.SampleRate != 60 {
		t.Fatalf("sample rate = %v, want 60", cfg.SampleRate)
	}
	if cfg.StartMs != 1000 {
		t.Fatalf("start = %v, want 1000", cfg.StartMs)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithStartMs(-1), nil)
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestTimestampMs(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(30), WithStartMs(500))
	if got := cfg.TimestampMs(0); got != 500 {
		t.Fatalf("TimestampMs(0) = %v, want 500", got)
	}
	if got := cfg.TimestampMs(30); !NearlyEqual(got, 1500, 1e-12) {
		t.Fatalf("TimestampMs(30) = %v, want 1500", got)
	}
}
