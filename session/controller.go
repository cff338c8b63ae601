package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-motion/measure/tremor"
	"github.com/cwbudde/algo-motion/pose"
	"github.com/cwbudde/algo-motion/pose/quality"
	"github.com/cwbudde/algo-motion/pose/smooth"
	timestats "github.com/cwbudde/algo-motion/stats/time"
)

const (
	// DefaultCaptureDuration is the length of one wrist capture.
	DefaultCaptureDuration = 20 * time.Second

	defaultWristVisibility = 0.5
)

// ErrNoCapture is returned by Finish when no capture was ever started.
var ErrNoCapture = errors.New("session: no capture started")

// Frame is the per-frame output of a Controller.
type Frame struct {
	Landmarks []pose.Landmark    `json:"landmarks"`
	Quality   quality.Descriptor `json:"quality"`
	// Captured is true when the frame contributed a wrist sample.
	Captured bool `json:"captured"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithCaptureDuration sets how long a capture accepts samples after
// StartCapture. Zero disables the limit; negative values are ignored.
func WithCaptureDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.captureMs = float64(d) / float64(time.Millisecond)
		}
	}
}

// WithSmoothing passes options to the landmark smoothing bank.
func WithSmoothing(opts ...smooth.Option) Option {
	return func(c *Controller) {
		c.bank = smooth.NewBank(opts...)
	}
}

// WithAssessor replaces the default quality assessor.
func WithAssessor(a *quality.Assessor) Option {
	return func(c *Controller) {
		if a != nil {
			c.assessor = a
		}
	}
}

// WithAnalyzer replaces the default tremor analyzer. The trajectory
// readiness threshold follows the analyzer's minimum.
func WithAnalyzer(a *tremor.Analyzer) Option {
	return func(c *Controller) {
		if a != nil {
			c.analyzer = a
		}
	}
}

// WithWristVisibility sets the visibility a wrist must exceed to be
// recorded. Values outside [0,1] are ignored.
func WithWristVisibility(v float64) Option {
	return func(c *Controller) {
		if v >= 0 && v <= 1 {
			c.wristVisibility = v
		}
	}
}

// Controller owns the smoothing bank, quality assessor and wrist trajectory
// of one tracking session. All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	id              uuid.UUID
	bank            *smooth.Bank
	assessor        *quality.Assessor
	analyzer        *tremor.Analyzer
	traj            *Trajectory
	captureMs       float64
	captureStartMs  float64
	captureStarted  bool
	wristVisibility float64
}

// NewController creates a controller with a fresh session ID.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		id:              uuid.New(),
		bank:            smooth.NewBank(),
		assessor:        quality.NewAssessor(),
		analyzer:        tremor.NewAnalyzer(tremor.Config{}),
		captureMs:       float64(DefaultCaptureDuration / time.Millisecond),
		wristVisibility: defaultWristVisibility,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.traj = NewTrajectory(c.analyzer.Config().MinSamples)

	return c
}

// ID returns the session identifier. It changes on Reset.
func (c *Controller) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.id.String()
}

// ProcessFrame smooths raw, grades the smoothed frame and, while capturing,
// records the more visible wrist at timestampMs.
func (c *Controller) ProcessFrame(raw []pose.Landmark, timestampMs float64) Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	smoothed := c.bank.Smooth(raw, timestampMs)
	out := Frame{
		Landmarks: smoothed,
		Quality:   c.assessor.Assess(smoothed),
	}

	if !c.traj.Recording() {
		return out
	}

	if c.captureMs > 0 && timestampMs-c.captureStartMs >= c.captureMs {
		c.traj.Stop()
		return out
	}

	if wrist, ok := c.pickWrist(smoothed); ok {
		out.Captured = c.traj.Append(tremor.Sample{X: wrist.X, Y: wrist.Y, TimestampMs: timestampMs})
	}

	return out
}

// pickWrist returns the more visible of the two wrists when it clears the
// visibility threshold. Equal visibility picks the right wrist.
func (c *Controller) pickWrist(frame []pose.Landmark) (pose.Landmark, bool) {
	left, hasLeft := pose.At(frame, pose.LeftWrist)
	right, hasRight := pose.At(frame, pose.RightWrist)

	wrist, ok := right, hasRight
	if hasLeft && (!hasRight || left.Visibility > right.Visibility) {
		wrist, ok = left, true
	}

	if !ok || !(wrist.Visibility > c.wristVisibility) {
		return pose.Landmark{}, false
	}

	return wrist, true
}

// StartCapture clears the trajectory and starts recording at timestampMs.
func (c *Controller) StartCapture(timestampMs float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.traj.Reset()
	c.traj.Start()
	c.captureStartMs = timestampMs
	c.captureStarted = true
}

// StopCapture stops recording. Collected samples are kept for Finish.
func (c *Controller) StopCapture() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.traj.Stop()
}

// Capturing reports whether wrist samples are currently recorded.
func (c *Controller) Capturing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.traj.Recording()
}

// Progress returns the number of captured samples and whether they suffice
// for analysis.
func (c *Controller) Progress() (samples int, ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.traj.Len(), c.traj.IsReady()
}

// Spread returns the running statistics of the captured x and y
// coordinates.
func (c *Controller) Spread() (x, y timestats.Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.traj.Spread()
}

// Trajectory returns a copy of the captured samples.
func (c *Controller) Trajectory() []tremor.Sample {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.traj.Samples()
}

// Finish stops the capture and analyses the recorded trajectory.
func (c *Controller) Finish() (tremor.Result, error) {
	c.mu.Lock()
	c.traj.Stop()
	started := c.captureStarted
	samples := c.traj.Samples()
	analyzer := c.analyzer
	c.mu.Unlock()

	if !started {
		return tremor.Result{}, ErrNoCapture
	}

	return analyzer.Analyze(samples)
}

// Reset discards smoothing state and the trajectory and starts a new
// session ID.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bank.Reset()
	c.traj.Reset()
	c.captureStarted = false
	c.captureStartMs = 0
	c.id = uuid.New()
}
