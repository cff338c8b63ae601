package signal

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptyInput is returned when a series has no samples.
var ErrEmptyInput = errors.New("signal: empty input")

// LinearFit returns the least-squares line value ≈ intercept + slope·i
// fitted against the sample index i.
func LinearFit(x []float64) (intercept, slope float64, err error) {
	switch len(x) {
	case 0:
		return 0, 0, ErrEmptyInput
	case 1:
		return x[0], 0, nil
	}

	idx := make([]float64, len(x))
	for i := range idx {
		idx[i] = float64(i)
	}

	intercept, slope = stat.LinearRegression(idx, x, nil, false)

	return intercept, slope, nil
}

// Detrend returns x minus its least-squares line against the sample index.
func Detrend(x []float64) ([]float64, error) {
	intercept, slope, err := LinearFit(x)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - (slope*float64(i) + intercept)
	}

	return out, nil
}
