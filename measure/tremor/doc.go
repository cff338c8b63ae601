// Package tremor estimates the dominant oscillation of a recorded wrist
// trajectory.
//
// The analysis picks the axis with the larger variance, removes a linear
// trend, applies a taper window and searches the autocorrelation for its
// first credible peak. The peak lag gives the frequency, which is clamped to
// the tremor band (3-8 Hz by default). Amplitude is the standard deviation of
// the windowed series.
//
// Two confidence estimators are available:
//
//   - [ConfidenceHeuristic] (default): 0.5, plus 0.3 when the unclamped
//     frequency lies inside the band, plus 0.2 when the windowed variance
//     exceeds a threshold, capped at 1.
//   - [ConfidenceSpectral]: peak-to-mean ratio and prominence of the
//     strongest in-band bin of the power spectrum, floored at 0.1.
//
// Typical use:
//
//	res, err := tremor.Analyze(samples)
//	if errors.Is(err, tremor.ErrInsufficientSamples) {
//		// collect more frames
//	}
package tremor
