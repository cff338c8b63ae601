// Package conv computes positive-lag autocorrelation of real sample blocks.
//
// Two strategies produce the same unnormalized result
//
//	R[lag] = Σ_{i=0}^{n-1-lag} x[i]·x[i+lag]
//
// for lag = 0..maxLag:
//
//   - Direct: one dot product per lag, O(n·maxLag). Best for the short
//     blocks and small lag ranges typical of tremor analysis.
//   - FFT: |FFT(x)|² followed by an inverse transform, O(n log n). Best when
//     maxLag approaches n.
//
// [AutoCorrelate] picks a strategy from a [Method].
//
//	r, err := conv.AutoCorrelate(x, len(x)/2, conv.MethodDirect)
package conv
