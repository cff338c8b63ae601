// Package lowpass provides the single-axis exponential low-pass primitive
// used by the adaptive smoothers.
//
// A Filter holds exactly one scalar of memory. Multi-axis smoothers must
// own one Filter per axis; sharing a Filter between axes mixes their
// histories.
package lowpass
