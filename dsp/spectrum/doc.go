// Package spectrum computes one-sided power spectra of real sample blocks
// and locates peaks inside a frequency band.
//
// Blocks are zero-padded to the next power of two before the forward FFT.
// Bin k of the result covers k·SampleRate/FFTSize Hz, for k in
// [0, FFTSize/2].
package spectrum
