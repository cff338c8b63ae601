package conv

import (
	"errors"
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by autocorrelation functions.
var (
	ErrEmptyInput    = errors.New("conv: empty input")
	ErrInvalidLag    = errors.New("conv: invalid max lag")
	ErrUnknownMethod = errors.New("conv: unknown method")
)

// Method selects the autocorrelation strategy.
type Method int

const (
	// MethodDirect evaluates one dot product per lag.
	MethodDirect Method = iota
	// MethodFFT uses the Wiener-Khinchin relation over a zero-padded FFT.
	MethodFFT
)

func (m Method) String() string {
	switch m {
	case MethodDirect:
		return "direct"
	case MethodFFT:
		return "fft"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// AutoCorrelate returns R[0..maxLag] using the given method. maxLag values
// beyond len(x)-1 are clamped.
func AutoCorrelate(x []float64, maxLag int, method Method) ([]float64, error) {
	switch method {
	case MethodDirect:
		return AutoCorrelateDirect(x, maxLag)
	case MethodFFT:
		return AutoCorrelateFFT(x, maxLag)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(method))
	}
}

// AutoCorrelateDirect returns R[0..maxLag] computed with one dot product per
// lag.
func AutoCorrelateDirect(x []float64, maxLag int) ([]float64, error) {
	maxLag, err := checkLag(len(x), maxLag)
	if err != nil {
		return nil, err
	}

	n := len(x)
	out := make([]float64, maxLag+1)
	for lag := range out {
		out[lag] = vecmath.DotProduct(x[:n-lag], x[lag:])
	}

	return out, nil
}

// AutoCorrelateFFT returns R[0..maxLag] via a forward FFT, the power
// spectrum and an inverse FFT. Inputs are zero-padded to at least 2n-1 so the
// circular result equals the linear one.
func AutoCorrelateFFT(x []float64, maxLag int) ([]float64, error) {
	maxLag, err := checkLag(len(x), maxLag)
	if err != nil {
		return nil, err
	}

	if len(x) < 2 {
		return AutoCorrelateDirect(x, maxLag)
	}

	fftSize := nextPowerOf2(2*len(x) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, in); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	for i, c := range freq {
		re, im := real(c), imag(c)
		freq[i] = complex(re*re+im*im, 0)
	}

	if err := plan.Inverse(in, freq); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	out := make([]float64, maxLag+1)
	for lag := range out {
		out[lag] = real(in[lag])
	}

	return out, nil
}

func checkLag(n, maxLag int) (int, error) {
	if n == 0 {
		return 0, ErrEmptyInput
	}

	if maxLag < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLag, maxLag)
	}

	return min(maxLag, n-1), nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
