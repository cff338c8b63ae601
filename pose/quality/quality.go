package quality

import (
	"fmt"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/pose"
)

const (
	defaultVisibilityThreshold = 0.3
	defaultGreenThreshold      = 0.7
	defaultAmberThreshold      = 0.4
	defaultKeyBonus            = 0.2

	// minKeyVisible is the number of key landmarks that must be visible
	// before the average visibility is considered at all.
	minKeyVisible = 3

	scoreEmpty        = 0
	scoreIncomplete   = 0.1
	scoreInsufficient = 0.2
)

// Reasons attached to descriptors.
const (
	ReasonNoLandmarks = "No landmarks detected"
	ReasonHigh        = "High confidence pose detected"
	ReasonModerate    = "Moderate confidence pose"
	ReasonLow         = "Low confidence pose"
)

// DefaultKeyLandmarks are the nose, shoulders and hips.
var DefaultKeyLandmarks = []int{
	pose.Nose,
	pose.LeftShoulder,
	pose.RightShoulder,
	pose.LeftHip,
	pose.RightHip,
}

// Descriptor is the graded quality of one frame.
type Descriptor struct {
	Tier   Tier    `json:"quality"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Option configures an Assessor.
type Option func(*Assessor)

// WithVisibilityThreshold sets the visibility a key landmark must exceed to
// count as visible. Values outside [0,1] are ignored.
func WithVisibilityThreshold(v float64) Option {
	return func(a *Assessor) {
		if core.InRange(v, 0, 1) {
			a.visibility = v
		}
	}
}

// WithKeyLandmarks replaces the key landmark set. Negative indices are
// dropped; an empty result is ignored.
func WithKeyLandmarks(indices ...int) Option {
	return func(a *Assessor) {
		keys := make([]int, 0, len(indices))
		for _, i := range indices {
			if i >= 0 {
				keys = append(keys, i)
			}
		}

		if len(keys) > 0 {
			a.keys = keys
		}
	}
}

// WithThresholds sets the score a frame must exceed for green and amber.
// Ignored unless 0 <= amber <= green.
func WithThresholds(green, amber float64) Option {
	return func(a *Assessor) {
		if amber >= 0 && amber <= green && core.IsFinite(green) {
			a.green = green
			a.amber = amber
		}
	}
}

// WithKeyBonus sets the score bonus for a frame whose key landmarks are all
// visible. Negative values are ignored.
func WithKeyBonus(b float64) Option {
	return func(a *Assessor) {
		if b >= 0 && core.IsFinite(b) {
			a.bonus = b
		}
	}
}

// Assessor grades frames. It holds only configuration and is safe for
// concurrent use.
type Assessor struct {
	visibility float64
	green      float64
	amber      float64
	bonus      float64
	keys       []int
}

// NewAssessor returns an Assessor with the given options applied over the
// defaults.
func NewAssessor(opts ...Option) *Assessor {
	a := &Assessor{
		visibility: defaultVisibilityThreshold,
		green:      defaultGreenThreshold,
		amber:      defaultAmberThreshold,
		bonus:      defaultKeyBonus,
		keys:       append([]int(nil), DefaultKeyLandmarks...),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

var defaultAssessor = NewAssessor()

// Assess grades frame with the default rules.
func Assess(frame []pose.Landmark) Descriptor {
	return defaultAssessor.Assess(frame)
}

// Assess grades frame. Rules apply in order:
//
//  1. no landmarks: red, 0
//  2. fewer than pose.NumLandmarks: red, 0.1
//  3. fewer than 3 key landmarks visible: red, 0.2
//  4. mean visibility over the frame plus a bonus when every key landmark
//     is visible, graded against the green and amber thresholds.
func (a *Assessor) Assess(frame []pose.Landmark) Descriptor {
	if len(frame) == 0 {
		return Descriptor{Tier: Red, Score: scoreEmpty, Reason: ReasonNoLandmarks}
	}

	if len(frame) < pose.NumLandmarks {
		return Descriptor{
			Tier:   Red,
			Score:  scoreIncomplete,
			Reason: fmt.Sprintf("Incomplete pose: %d/%d landmarks", len(frame), pose.NumLandmarks),
		}
	}

	visible := a.visibleKeys(frame)
	if visible < minKeyVisible {
		return Descriptor{
			Tier:   Red,
			Score:  scoreInsufficient,
			Reason: fmt.Sprintf("Insufficient key landmarks visible: %d/%d", visible, len(a.keys)),
		}
	}

	var total float64
	for _, lm := range frame {
		total += lm.Visibility
	}

	score := total / float64(len(frame))
	if visible == len(a.keys) {
		score += a.bonus
	}

	switch {
	case score > a.green:
		return Descriptor{Tier: Green, Score: min(1, score), Reason: ReasonHigh}
	case score > a.amber:
		return Descriptor{Tier: Amber, Score: score, Reason: ReasonModerate}
	default:
		return Descriptor{Tier: Red, Score: score, Reason: ReasonLow}
	}
}

func (a *Assessor) visibleKeys(frame []pose.Landmark) int {
	n := 0
	for _, i := range a.keys {
		if lm, ok := pose.At(frame, i); ok && lm.Visibility > a.visibility {
			n++
		}
	}

	return n
}
