package time

import "math"

// Running accumulates statistics sample by sample. The zero value is an
// empty accumulator.
type Running struct {
	n             int
	mean          float64
	m2            float64
	m3            float64
	m4            float64
	sumSq         float64
	maxVal        float64
	maxPos        int
	minVal        float64
	minPos        int
	zeroCrossings int
	last          float64
}

// Add folds one sample into the statistics.
func (r *Running) Add(x float64) {
	r.n++
	ni := float64(r.n)

	delta := x - r.mean
	deltaN := delta / ni
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * float64(r.n-1)

	// M4 must be updated before M3, and M3 before M2.
	r.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*r.m2 - 4*deltaN*r.m3
	r.m3 += term1*deltaN*(float64(r.n-1)-1) - 3*deltaN*r.m2
	r.m2 += term1
	r.mean += deltaN

	r.sumSq += x * x

	if r.n == 1 || x > r.maxVal {
		r.maxVal = x
		r.maxPos = r.n - 1
	}

	if r.n == 1 || x < r.minVal {
		r.minVal = x
		r.minPos = r.n - 1
	}

	if r.n > 1 && r.last*x < 0 {
		r.zeroCrossings++
	}

	r.last = x
}

// AddBlock folds every sample of block into the statistics.
func (r *Running) AddBlock(block []float64) {
	for _, x := range block {
		r.Add(x)
	}
}

// Count returns the number of samples seen.
func (r *Running) Count() int { return r.n }

// Mean returns the running mean.
func (r *Running) Mean() float64 { return r.mean }

// Variance returns the running population variance.
func (r *Running) Variance() float64 {
	if r.n == 0 {
		return 0
	}

	return r.m2 / float64(r.n)
}

// StdDev returns the running population standard deviation.
func (r *Running) StdDev() float64 { return math.Sqrt(r.Variance()) }

// Range returns max - min, or 0 before the first sample.
func (r *Running) Range() float64 { return r.maxVal - r.minVal }

// Result returns the accumulated statistics.
func (r *Running) Result() Stats {
	if r.n == 0 {
		return Stats{}
	}

	nf := float64(r.n)
	variance := r.m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (r.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (r.m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:        r.n,
		Mean:          r.mean,
		Variance:      variance,
		StdDev:        math.Sqrt(variance),
		RMS:           math.Sqrt(r.sumSq / nf),
		Max:           r.maxVal,
		MaxPos:        r.maxPos,
		Min:           r.minVal,
		MinPos:        r.minPos,
		Range:         r.maxVal - r.minVal,
		ZeroCrossings: r.zeroCrossings,
		Skewness:      skewness,
		Kurtosis:      kurtosis,
	}
}

// Reset clears all accumulated data.
func (r *Running) Reset() {
	*r = Running{}
}
