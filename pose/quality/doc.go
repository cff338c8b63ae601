// Package quality classifies how trustworthy a tracked pose frame is.
//
// A frame is graded into a red/amber/green tier together with a score and a
// human-readable reason. Grading looks only at landmark count and
// visibility; it never inspects positions and never fails.
package quality
