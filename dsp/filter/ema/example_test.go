package ema_test

import (
	"fmt"

	"github.com/cwbudde/algo-motion/dsp/filter/ema"
	"github.com/cwbudde/algo-motion/pose"
)

func ExampleSmoother() {
	s := ema.New(ema.DefaultAlpha)
	for _, x := range []float64{0, 1, 1, 1} {
		p := s.Smooth(pose.Pt(x, 0))
		fmt.Printf("%.3f ", p.X)
	}
	fmt.Println()

	// Output:
	// 0.000 0.300 0.510 0.657
}
