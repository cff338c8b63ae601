// Package smooth applies a per-landmark smoother to whole pose frames.
package smooth

import (
	"sync"

	"github.com/cwbudde/algo-motion/dsp/filter/ema"
	"github.com/cwbudde/algo-motion/dsp/filter/oneeuro"
	"github.com/cwbudde/algo-motion/pose"
)

// Method selects the per-landmark smoother.
type Method int

const (
	// MethodOneEuro uses an adaptive One-Euro filter per landmark.
	MethodOneEuro Method = iota
	// MethodEMA uses a fixed-weight exponential moving average per landmark.
	MethodEMA
)

func (m Method) String() string {
	switch m {
	case MethodOneEuro:
		return "oneeuro"
	case MethodEMA:
		return "ema"
	default:
		return "unknown"
	}
}

// Option configures a Bank.
type Option func(*config)

type config struct {
	method   Method
	oneEuro  []oneeuro.Option
	emaAlpha float64
}

// WithMethod selects the smoother. Unknown methods are ignored.
func WithMethod(m Method) Option {
	return func(c *config) {
		if m == MethodOneEuro || m == MethodEMA {
			c.method = m
		}
	}
}

// WithOneEuroOptions passes options to every One-Euro filter the bank creates.
func WithOneEuroOptions(opts ...oneeuro.Option) Option {
	return func(c *config) {
		c.oneEuro = append(c.oneEuro, opts...)
	}
}

// WithEMAAlpha sets the EMA smoothing factor. It is clamped by ema.New.
func WithEMAAlpha(alpha float64) Option {
	return func(c *config) {
		c.emaAlpha = alpha
	}
}

// smoother is the per-landmark state.
type smoother interface {
	smooth(p pose.Point, timestampMs float64) pose.Point
}

type oneEuroSmoother struct{ f *oneeuro.Filter }

func (s oneEuroSmoother) smooth(p pose.Point, ts float64) pose.Point { return s.f.Filter(p, ts) }

type emaSmoother struct{ s *ema.Smoother }

func (s emaSmoother) smooth(p pose.Point, _ float64) pose.Point { return s.s.Smooth(p) }

// Bank owns one smoother per landmark index, created on first use.
// Smooth and Reset are mutually exclusive.
type Bank struct {
	mu      sync.Mutex
	cfg     config
	filters map[int]smoother
}

// NewBank creates an empty bank.
func NewBank(opts ...Option) *Bank {
	cfg := config{method: MethodOneEuro, emaAlpha: ema.DefaultAlpha}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Bank{cfg: cfg, filters: make(map[int]smoother)}
}

// Method returns the configured smoother kind.
func (b *Bank) Method() Method {
	return b.cfg.method
}

// Smooth returns a new frame of the same length with every landmark position
// smoothed by its index's filter. Visibility is copied unchanged.
func (b *Bank) Smooth(frame []pose.Landmark, timestampMs float64) []pose.Landmark {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]pose.Landmark, len(frame))
	for i, lm := range frame {
		out[i] = pose.Landmark{
			Point:      b.filterFor(i).smooth(lm.Point, timestampMs),
			Visibility: lm.Visibility,
		}
	}

	return out
}

// Reset discards every per-index filter.
func (b *Bank) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	clear(b.filters)
}

// Len returns the number of landmark indices currently tracked.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.filters)
}

func (b *Bank) filterFor(i int) smoother {
	if s, ok := b.filters[i]; ok {
		return s
	}

	var s smoother
	switch b.cfg.method {
	case MethodEMA:
		s = emaSmoother{ema.New(b.cfg.emaAlpha)}
	default:
		s = oneEuroSmoother{oneeuro.New(b.cfg.oneEuro...)}
	}

	b.filters[i] = s

	return s
}
