package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/dsp/signal"
)

func ExampleGenerator_Sine() {
	g := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(20)})
	x, err := g.Sine(5, 1, 0, 5)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3])

	// Output:
	// 0 1 0 -1
}

func ExampleDetrend() {
	d, err := signal.Detrend([]float64{1, 3, 2, 4})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.1f %.1f %.1f %.1f\n", d[0], d[1], d[2], d[3])

	// Output:
	// -0.3 0.9 -0.9 0.3
}
