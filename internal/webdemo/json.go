package webdemo

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/algo-motion/measure/tremor"
	"github.com/cwbudde/algo-motion/pose"
)

// The browser bridge exchanges JSON strings so that syscall/js only has to
// move strings and numbers.

// ProcessFrameJSON decodes a landmark array, processes it and encodes the
// resulting FrameView.
func (e *Engine) ProcessFrameJSON(landmarksJSON string, timestampMs float64) (string, error) {
	var lms []pose.Landmark
	if err := json.Unmarshal([]byte(landmarksJSON), &lms); err != nil {
		return "", fmt.Errorf("decode landmarks: %w", err)
	}

	return encode(e.ProcessFrame(lms, timestampMs))
}

// AssessPoseJSON grades a landmark array.
func (e *Engine) AssessPoseJSON(landmarksJSON string) (string, error) {
	var lms []pose.Landmark
	if err := json.Unmarshal([]byte(landmarksJSON), &lms); err != nil {
		return "", fmt.Errorf("decode landmarks: %w", err)
	}

	return encode(e.AssessPose(lms))
}

// AnalyzeTremorJSON analyses an array of {x, y, timestamp} samples.
func (e *Engine) AnalyzeTremorJSON(samplesJSON string) (string, error) {
	var samples []tremor.Sample
	if err := json.Unmarshal([]byte(samplesJSON), &samples); err != nil {
		return "", fmt.Errorf("decode samples: %w", err)
	}

	res, err := e.AnalyzeTremor(samples)
	if err != nil {
		return "", err
	}

	return encode(res)
}

// FinishJSON finishes the capture and encodes the result.
func (e *Engine) FinishJSON() (string, error) {
	res, err := e.Finish()
	if err != nil {
		return "", err
	}

	return encode(res)
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}

	return string(b), nil
}
