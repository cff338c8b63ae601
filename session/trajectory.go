package session

import (
	"github.com/cwbudde/algo-motion/measure/tremor"
	timestats "github.com/cwbudde/algo-motion/stats/time"
)

// Trajectory is an append-only buffer of wrist samples for one capture.
// It accepts samples only between Start and Stop.
//
// Trajectory is not safe for concurrent use; Controller serializes access.
type Trajectory struct {
	samples    []tremor.Sample
	recording  bool
	minSamples int
	x, y       timestats.Running
}

// NewTrajectory returns an empty trajectory that is ready once it holds
// minSamples samples. Non-positive values select tremor.MinSamples.
func NewTrajectory(minSamples int) *Trajectory {
	if minSamples <= 0 {
		minSamples = tremor.MinSamples
	}

	return &Trajectory{minSamples: minSamples}
}

// Start begins accepting samples.
func (t *Trajectory) Start() { t.recording = true }

// Stop ends accepting samples. Collected samples are kept.
func (t *Trajectory) Stop() { t.recording = false }

// Recording reports whether Append currently accepts samples.
func (t *Trajectory) Recording() bool { return t.recording }

// Append adds s and reports whether it was stored.
func (t *Trajectory) Append(s tremor.Sample) bool {
	if !t.recording {
		return false
	}

	t.samples = append(t.samples, s)
	t.x.Add(s.X)
	t.y.Add(s.Y)

	return true
}

// IsReady reports whether enough samples exist for analysis.
func (t *Trajectory) IsReady() bool {
	return len(t.samples) >= t.minSamples
}

// Len returns the number of stored samples.
func (t *Trajectory) Len() int { return len(t.samples) }

// Samples returns a copy of the stored samples in insertion order.
func (t *Trajectory) Samples() []tremor.Sample {
	return append([]tremor.Sample(nil), t.samples...)
}

// Spread returns the running statistics of the x and y coordinates.
func (t *Trajectory) Spread() (x, y timestats.Stats) {
	return t.x.Result(), t.y.Result()
}

// Reset discards all samples and stops recording.
func (t *Trajectory) Reset() {
	t.samples = nil
	t.recording = false
	t.x.Reset()
	t.y.Reset()
}
