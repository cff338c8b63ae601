package core

// ProcessorConfig defines the sampling settings shared by signal generators
// and trajectory synthesis.
type ProcessorConfig struct {
	// SampleRate is the frame rate in Hz.
	SampleRate float64
	// StartMs is the timestamp of the first generated sample in milliseconds.
	StartMs float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns defaults matching a typical webcam feed.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 30,
	}
}

// WithSampleRate sets the frame rate in Hz.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithStartMs sets the timestamp origin in milliseconds.
func WithStartMs(startMs float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if startMs >= 0 {
			cfg.StartMs = startMs
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// TimestampMs returns the timestamp of sample i under cfg.
func (cfg ProcessorConfig) TimestampMs(i int) float64 {
	return cfg.StartMs + float64(i)*1000/cfg.SampleRate
}
