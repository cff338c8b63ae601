// Package time computes descriptive statistics of sampled motion series.
package time

import "math"

// Stats summarizes one series.
type Stats struct {
	Length        int
	Mean          float64
	Variance      float64 // population
	StdDev        float64
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Range         float64 // max - min
	ZeroCrossings int
	Skewness      float64
	Kurtosis      float64 // excess
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm.
func Calculate(signal []float64) Stats {
	var r Running
	r.AddBlock(signal)

	return r.Result()
}

// Mean returns the arithmetic mean, or 0 for an empty series.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sum float64
	for _, x := range signal {
		sum += x
	}

	return sum / float64(len(signal))
}

// Variance returns the population variance Σ(x-mean)²/n, or 0 for an empty
// series. It makes two passes over the data.
func Variance(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	mean := Mean(signal)

	var sum float64
	for _, x := range signal {
		d := x - mean
		sum += d * d
	}

	return sum / float64(len(signal))
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// ZeroCrossings returns the number of sign changes between consecutive
// samples.
func ZeroCrossings(signal []float64) int {
	var count int

	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}

// Moments returns the mean, population variance, skewness, and excess kurtosis
// of the signal.
func Moments(signal []float64) (mean, variance, skewness, kurtosis float64) {
	s := Calculate(signal)

	return s.Mean, s.Variance, s.Skewness, s.Kurtosis
}
