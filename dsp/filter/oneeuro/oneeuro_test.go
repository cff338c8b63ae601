package oneeuro

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-motion/pose"
)

const frameMs = 1000.0 / 30

func TestFilterSeedReturnsInput(t *testing.T) {
	f := New()
	in := pose.Pt3(0.3, 0.4, -0.1)

	got := f.Filter(in, 1000)
	if got.X != in.X || got.Y != in.Y || got.ZOr(0) != in.ZOr(0) {
		t.Fatalf("seed output = %+v, want %+v", got, in)
	}
	if got.Z == in.Z {
		t.Fatal("seed output shares the caller's z pointer")
	}
}

func TestFilterFirstAdvancingFrameSeedsPosition(t *testing.T) {
	f := New()
	f.Filter(pose.Pt(0.1, 0.1), 0)

	got := f.Filter(pose.Pt(0.5, 0.6), frameMs)
	if got.X != 0.5 || got.Y != 0.6 {
		t.Fatalf("output = %+v, want (0.5, 0.6)", got)
	}
}

func TestFilterConvergesToConstant(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts []Option
	}{
		{name: "millisecond timebase"},
		{name: "seconds timebase", opts: []Option{WithSecondsTimebase()}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := New(tc.opts...)
			ts := 0.0
			f.Filter(pose.Pt(0, 0), ts)
			ts += frameMs
			f.Filter(pose.Pt(0, 0), ts)

			prev := 0.0
			var got pose.Point
			for i := 0; i < 200; i++ {
				ts += frameMs
				got = f.Filter(pose.Pt(1, 1), ts)
				if got.X < prev {
					t.Fatalf("step %d: output decreased from %v to %v", i, prev, got.X)
				}
				prev = got.X
			}

			if math.Abs(got.X-1) > 1e-3 || math.Abs(got.Y-1) > 1e-3 {
				t.Fatalf("final output = %+v, want ~(1, 1)", got)
			}
		})
	}
}

func TestFilterSmoothsStep(t *testing.T) {
	f := New(WithSecondsTimebase())
	f.Filter(pose.Pt(0, 0), 0)
	f.Filter(pose.Pt(0, 0), frameMs)

	got := f.Filter(pose.Pt(1, 0), 2*frameMs)
	if !(got.X > 0 && got.X < 1) {
		t.Fatalf("step response = %v, want strictly between 0 and 1", got.X)
	}
}

// A single shared scalar reused for x, y and z would leak one axis into the
// next. Each axis must keep its own history.
func TestFilterAxesAreIndependent(t *testing.T) {
	t.Run("constant axes stay put", func(t *testing.T) {
		f := New(WithSecondsTimebase())
		for i := 0; i < 10; i++ {
			got := f.Filter(pose.Pt3(0, 1, 0.5), float64(i)*frameMs)
			if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1) > 1e-12 || math.Abs(got.ZOr(0)-0.5) > 1e-12 {
				t.Fatalf("frame %d: output = (%v, %v, %v), want (0, 1, 0.5)", i, got.X, got.Y, got.ZOr(0))
			}
		}
	})

	t.Run("x ignores y with beta zero", func(t *testing.T) {
		a := New(WithSecondsTimebase())
		b := New(WithSecondsTimebase())
		for i := 0; i < 60; i++ {
			ts := float64(i) * frameMs
			x := math.Sin(float64(i) / 5)
			ga := a.Filter(pose.Pt(x, 0.2), ts)
			gb := b.Filter(pose.Pt(x, 5*math.Cos(float64(i))), ts)
			if ga.X != gb.X {
				t.Fatalf("frame %d: x depends on y: %v vs %v", i, ga.X, gb.X)
			}
		}
	})
}

func TestFilterDuplicateTimestampPassthrough(t *testing.T) {
	a := New(WithSecondsTimebase())
	b := New(WithSecondsTimebase())

	inputs := []float64{0.1, 0.2, 0.15, 0.3}
	for i, x := range inputs {
		ts := float64(i) * frameMs
		a.Filter(pose.Pt(x, x), ts)
		b.Filter(pose.Pt(x, x), ts)
	}

	last := float64(len(inputs)-1) * frameMs
	wild := pose.Pt(9, -9)
	if got := a.Filter(wild, last); got.X != 9 || got.Y != -9 {
		t.Fatalf("duplicate frame output = %+v, want passthrough", got)
	}

	next := last + frameMs
	ga := a.Filter(pose.Pt(0.25, 0.25), next)
	gb := b.Filter(pose.Pt(0.25, 0.25), next)
	if ga.X != gb.X || ga.Y != gb.Y {
		t.Fatalf("duplicate frame advanced memory: %+v vs %+v", ga, gb)
	}
}

func TestFilterOutOfOrderTimestampRecorded(t *testing.T) {
	a := New(WithSecondsTimebase())
	b := New(WithSecondsTimebase())

	for i, x := range []float64{0.1, 0.2, 0.3} {
		ts := float64(i) * frameMs
		a.Filter(pose.Pt(x, 0), ts)
		b.Filter(pose.Pt(x, 0), ts)
	}

	// a goes back in time; its next delta is measured from the earlier stamp.
	if got := a.Filter(pose.Pt(7, 7), 50); got.X != 7 {
		t.Fatalf("out-of-order output = %+v, want passthrough", got)
	}
	ga := a.Filter(pose.Pt(0.4, 0), 50+frameMs)
	gb := b.Filter(pose.Pt(0.4, 0), 3*frameMs)
	if math.Abs(ga.X-gb.X) > 1e-12 {
		t.Fatalf("outputs differ: %v vs %v", ga.X, gb.X)
	}
}

func TestFilterZOnlyWhenPresent(t *testing.T) {
	f := New()
	for i := 0; i < 5; i++ {
		if got := f.Filter(pose.Pt(0.5, 0.5), float64(i)*frameMs); got.HasZ() {
			t.Fatalf("frame %d: 2D input produced z", i)
		}
	}

	g := New()
	for i := 0; i < 5; i++ {
		if got := g.Filter(pose.Pt3(0.5, 0.5, 0.1), float64(i)*frameMs); !got.HasZ() {
			t.Fatalf("frame %d: 3D input lost z", i)
		}
	}
}

func TestBetaReducesLag(t *testing.T) {
	run := func(opts ...Option) float64 {
		f := New(append(opts, WithSecondsTimebase())...)
		f.Filter(pose.Pt(0, 0), 0)
		f.Filter(pose.Pt(0, 0), frameMs)
		return f.Filter(pose.Pt(1, 0), 2*frameMs).X
	}

	still := run()
	adaptive := run(WithBeta(1))
	if !(adaptive > still) {
		t.Fatalf("beta=1 output %v should exceed beta=0 output %v", adaptive, still)
	}
}

func TestReset(t *testing.T) {
	f := New()
	for i := 0; i < 5; i++ {
		f.Filter(pose.Pt(float64(i), 0), float64(i)*frameMs)
	}
	f.Reset()

	in := pose.Pt(42, 42)
	if got := f.Filter(in, 0); got.X != 42 || got.Y != 42 {
		t.Fatalf("post-reset output = %+v, want seed passthrough", got)
	}
}

func TestOptions(t *testing.T) {
	f := New(WithMinCutoff(0), WithBeta(-1), WithDCutoff(math.Inf(1)), nil)
	if f.Config() != DefaultConfig() {
		t.Fatalf("invalid options changed config: %+v", f.Config())
	}

	g := New(WithMinCutoff(2), WithBeta(0.5), WithDCutoff(3), WithSecondsTimebase())
	want := Config{MinCutoff: 2, Beta: 0.5, DCutoff: 3, SecondsTimebase: true}
	if g.Config() != want {
		t.Fatalf("config = %+v, want %+v", g.Config(), want)
	}
}
