// Package oneeuro implements the One-Euro filter, an adaptive low-pass
// smoother whose cutoff rises with the estimated speed of the signal.
//
// Slow motion is smoothed heavily to suppress jitter; fast motion raises the
// cutoff so the output lags less. Each axis owns an independent position and
// velocity [lowpass.Filter], so x, y and z never share memory.
//
// Timestamps are in milliseconds. By default the raw millisecond delta is
// used as the sampling interval when computing alpha and velocity; use
// [WithSecondsTimebase] to work in seconds instead.
package oneeuro
