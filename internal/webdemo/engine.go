package webdemo

import (
	"fmt"

	"github.com/cwbudde/algo-motion/internal/config"
	"github.com/cwbudde/algo-motion/measure/tremor"
	"github.com/cwbudde/algo-motion/pose"
	"github.com/cwbudde/algo-motion/pose/quality"
	"github.com/cwbudde/algo-motion/session"
)

// FrameView is what the browser receives for each processed frame.
type FrameView struct {
	Landmarks []pose.Landmark    `json:"landmarks"`
	Quality   quality.Descriptor `json:"quality"`
	Captured  bool               `json:"captured"`
	Samples   int                `json:"samples"`
	Ready     bool               `json:"ready"`
	State     string             `json:"state"`
	// XStdDev and YStdDev are the running spread of the captured wrist.
	XStdDev float64 `json:"xStdDev"`
	YStdDev float64 `json:"yStdDev"`
}

// Engine runs the browser demo pipeline in Go: landmark smoothing, quality
// grading and the timed wrist capture.
type Engine struct {
	cfg      *config.Config
	ctrl     *session.Controller
	assessor *quality.Assessor
	analyzer *tremor.Analyzer

	finished bool
	spectrum SpectrumParams
}

// NewEngine creates an engine from a YAML configuration. Empty input uses
// the defaults.
func NewEngine(configYAML []byte) (*Engine, error) {
	cfg, err := config.Parse(configYAML)
	if err != nil {
		return nil, fmt.Errorf("webdemo: %w", err)
	}

	opts, err := cfg.SessionOptions()
	if err != nil {
		return nil, fmt.Errorf("webdemo: %w", err)
	}

	analyzer, err := cfg.Analyzer()
	if err != nil {
		return nil, fmt.Errorf("webdemo: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		ctrl:     session.NewController(opts...),
		assessor: cfg.Assessor(),
		analyzer: analyzer,
	}
	if err := e.SetSpectrum(SpectrumParams{}); err != nil {
		return nil, err
	}

	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() *config.Config { return e.cfg }

// SessionID returns the identifier of the current session.
func (e *Engine) SessionID() string { return e.ctrl.ID() }

// ProcessFrame smooths and grades one camera frame.
func (e *Engine) ProcessFrame(landmarks []pose.Landmark, timestampMs float64) FrameView {
	f := e.ctrl.ProcessFrame(landmarks, timestampMs)
	n, ready := e.ctrl.Progress()
	sx, sy := e.ctrl.Spread()

	return FrameView{
		Landmarks: f.Landmarks,
		Quality:   f.Quality,
		Captured:  f.Captured,
		Samples:   n,
		Ready:     ready,
		State:     e.State(),
		XStdDev:   sx.StdDev,
		YStdDev:   sy.StdDev,
	}
}

// StartCapture begins a wrist capture at timestampMs.
func (e *Engine) StartCapture(timestampMs float64) {
	e.finished = false
	e.ctrl.StartCapture(timestampMs)
}

// StopCapture pauses the capture without analysing it.
func (e *Engine) StopCapture() {
	e.ctrl.StopCapture()
}

// Finish stops the capture and analyses the trajectory.
func (e *Engine) Finish() (tremor.Result, error) {
	res, err := e.ctrl.Finish()
	if err == nil {
		e.finished = true
	}

	return res, err
}

// Reset clears all smoothing and capture state and starts a new session.
func (e *Engine) Reset() {
	e.finished = false
	e.ctrl.Reset()
}

// State names the capture phase for the UI.
func (e *Engine) State() string {
	switch {
	case e.ctrl.Capturing():
		return stateCapturing
	case e.finished:
		return stateFinished
	default:
		if n, _ := e.ctrl.Progress(); n > 0 {
			return stateStopped
		}

		return stateIdle
	}
}

// AssessPose grades a frame without touching the session.
func (e *Engine) AssessPose(landmarks []pose.Landmark) quality.Descriptor {
	return e.assessor.Assess(landmarks)
}

// AnalyzeTremor analyses an externally supplied trajectory.
func (e *Engine) AnalyzeTremor(samples []tremor.Sample) (tremor.Result, error) {
	return e.analyzer.Analyze(samples)
}
