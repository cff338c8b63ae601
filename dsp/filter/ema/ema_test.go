package ema

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-motion/pose"
)

func TestNewClampsAlpha(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 0.3, want: 0.3},
		{in: -1, want: 0},
		{in: 2, want: 1},
		{in: math.NaN(), want: DefaultAlpha},
	}

	for _, tt := range tests {
		if got := New(tt.in).Alpha(); got != tt.want {
			t.Fatalf("New(%v).Alpha() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSmoothFirstOutputIsInput(t *testing.T) {
	s := New(0.3)
	in := pose.Pt3(0.2, 0.7, 0.1)

	got := s.Smooth(in)
	if got.X != 0.2 || got.Y != 0.7 || got.ZOr(-1) != 0.1 {
		t.Fatalf("first output = %+v, want input", got)
	}
}

func TestSmoothRecurrence(t *testing.T) {
	s := New(0.3)
	s.Smooth(pose.Pt(0, 0))

	got := s.Smooth(pose.Pt(1, 2))
	if math.Abs(got.X-0.3) > 1e-12 || math.Abs(got.Y-0.6) > 1e-12 {
		t.Fatalf("second output = %+v, want (0.3, 0.6)", got)
	}

	got = s.Smooth(pose.Pt(1, 2))
	if math.Abs(got.X-0.51) > 1e-12 || math.Abs(got.Y-1.02) > 1e-12 {
		t.Fatalf("third output = %+v, want (0.51, 1.02)", got)
	}
}

func TestSmoothZRequiresBoth(t *testing.T) {
	s := New(0.5)
	s.Smooth(pose.Pt(0, 0))

	if got := s.Smooth(pose.Pt3(1, 1, 1)); got.HasZ() {
		t.Fatalf("z present without previous z: %v", got.ZOr(0))
	}

	u := New(0.5)
	u.Smooth(pose.Pt3(0, 0, 0))
	got := u.Smooth(pose.Pt3(0, 0, 1))
	if math.Abs(got.ZOr(-1)-0.5) > 1e-12 {
		t.Fatalf("z = %v, want 0.5", got.ZOr(-1))
	}
}

func TestAlphaExtremes(t *testing.T) {
	hold := New(0)
	hold.Smooth(pose.Pt(1, 1))
	if got := hold.Smooth(pose.Pt(5, 5)); got.X != 1 {
		t.Fatalf("alpha=0 output = %v, want 1", got.X)
	}

	follow := New(1)
	follow.Smooth(pose.Pt(1, 1))
	if got := follow.Smooth(pose.Pt(5, 5)); got.X != 5 {
		t.Fatalf("alpha=1 output = %v, want 5", got.X)
	}
}

func TestReset(t *testing.T) {
	s := New(0.3)
	s.Smooth(pose.Pt(0, 0))
	s.Smooth(pose.Pt(1, 1))
	s.Reset()

	if got := s.Smooth(pose.Pt(9, 9)); got.X != 9 || got.Y != 9 {
		t.Fatalf("post-reset output = %+v, want (9, 9)", got)
	}
}
