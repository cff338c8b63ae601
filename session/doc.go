// Package session ties per-frame smoothing and quality grading to a timed
// wrist capture that ends in a tremor analysis.
//
// A Controller is driven by the caller: each camera frame is pushed through
// ProcessFrame, and the controller never schedules work on its own.
package session
