package session

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-motion/internal/testutil"
	"github.com/cwbudde/algo-motion/measure/tremor"
	"github.com/cwbudde/algo-motion/pose"
	"github.com/cwbudde/algo-motion/pose/quality"
	"github.com/cwbudde/algo-motion/pose/smooth"
)

const (
	rateHz  = 30.0
	samples = 600
)

func frameTs(i int) float64 { return float64(i) * 1000 / rateHz }

// bodyFrame returns a full frame with both wrists placed explicitly.
func bodyFrame(left, right pose.Landmark) []pose.Landmark {
	out := make([]pose.Landmark, pose.NumLandmarks)
	for i := range out {
		out[i] = pose.Landmark{Point: pose.Pt(0.5, 0.5), Visibility: 0.9}
	}
	out[pose.LeftWrist] = left
	out[pose.RightWrist] = right

	return out
}

func wrist(x, y, vis float64) pose.Landmark {
	return pose.Landmark{Point: pose.Pt(x, y), Visibility: vis}
}

// passthrough disables smoothing so recorded samples equal the input.
func passthrough() Option {
	return WithSmoothing(smooth.WithMethod(smooth.MethodEMA), smooth.WithEMAAlpha(1))
}

func TestControllerProcessFrameGradesQuality(t *testing.T) {
	c := NewController()

	f := c.ProcessFrame(bodyFrame(wrist(0.4, 0.5, 0.9), wrist(0.6, 0.5, 0.9)), 0)
	if f.Quality.Tier != quality.Green {
		t.Fatalf("tier = %v, want green", f.Quality.Tier)
	}
	if len(f.Landmarks) != pose.NumLandmarks {
		t.Fatalf("len = %d", len(f.Landmarks))
	}
	if f.Captured {
		t.Fatal("frame captured without an active capture")
	}

	f = c.ProcessFrame(nil, frameTs(1))
	if f.Quality.Tier != quality.Red || f.Quality.Score != 0 {
		t.Fatalf("empty frame quality = %+v", f.Quality)
	}
}

func TestControllerWristSelection(t *testing.T) {
	tests := []struct {
		name   string
		frame  []pose.Landmark
		wantX  float64
		wantOK bool
	}{
		{name: "left more visible", frame: bodyFrame(wrist(0.1, 0, 0.9), wrist(0.2, 0, 0.7)), wantX: 0.1, wantOK: true},
		{name: "right more visible", frame: bodyFrame(wrist(0.1, 0, 0.6), wrist(0.2, 0, 0.8)), wantX: 0.2, wantOK: true},
		{name: "tie picks right", frame: bodyFrame(wrist(0.1, 0, 0.8), wrist(0.2, 0, 0.8)), wantX: 0.2, wantOK: true},
		{name: "below threshold", frame: bodyFrame(wrist(0.1, 0, 0.4), wrist(0.2, 0, 0.5)), wantOK: false},
		{name: "short frame", frame: make([]pose.Landmark, 10), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(passthrough())
			c.StartCapture(0)

			f := c.ProcessFrame(tt.frame, 0)
			if f.Captured != tt.wantOK {
				t.Fatalf("Captured = %v, want %v", f.Captured, tt.wantOK)
			}

			got := c.Trajectory()
			if !tt.wantOK {
				if len(got) != 0 {
					t.Fatalf("trajectory = %+v, want empty", got)
				}
				return
			}
			if len(got) != 1 || got[0].X != tt.wantX {
				t.Fatalf("trajectory = %+v, want x=%v", got, tt.wantX)
			}
		})
	}
}

func TestControllerCaptureLifecycle(t *testing.T) {
	c := NewController(passthrough())
	frame := bodyFrame(wrist(0.1, 0.2, 0.9), wrist(0.3, 0.4, 0.1))

	c.ProcessFrame(frame, 0)
	if n, _ := c.Progress(); n != 0 {
		t.Fatalf("samples before StartCapture = %d", n)
	}

	c.StartCapture(frameTs(1))
	if !c.Capturing() {
		t.Fatal("Capturing() = false after StartCapture")
	}
	c.ProcessFrame(frame, frameTs(1))
	c.ProcessFrame(frame, frameTs(2))

	c.StopCapture()
	if c.Capturing() {
		t.Fatal("Capturing() = true after StopCapture")
	}
	c.ProcessFrame(frame, frameTs(3))

	n, ready := c.Progress()
	if n != 2 || ready {
		t.Fatalf("Progress() = %d, %v; want 2, false", n, ready)
	}

	got := c.Trajectory()
	if got[1].TimestampMs != frameTs(2) || got[1].X != 0.1 || got[1].Y != 0.2 {
		t.Fatalf("sample = %+v", got[1])
	}

	sx, sy := c.Spread()
	if sx.Length != 2 || sx.Mean != 0.1 || sx.Range != 0 || sy.Mean != 0.2 {
		t.Fatalf("spread x=%+v y=%+v", sx, sy)
	}

	c.StartCapture(frameTs(4))
	if n, _ := c.Progress(); n != 0 {
		t.Fatalf("StartCapture kept %d old samples", n)
	}
}

func TestControllerCaptureDuration(t *testing.T) {
	frame := bodyFrame(wrist(0.1, 0.2, 0.9), wrist(0.3, 0.4, 0.1))

	tests := []struct {
		name string
		opt  Option
		want int
	}{
		{name: "default 20s", opt: nil, want: samples},
		{name: "one second", opt: WithCaptureDuration(time.Second), want: 30},
		{name: "unlimited", opt: WithCaptureDuration(0), want: samples + 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(passthrough(), tt.opt)
			c.StartCapture(0)
			for i := 0; i < samples+60; i++ {
				c.ProcessFrame(frame, frameTs(i))
			}

			if n, _ := c.Progress(); n != tt.want {
				t.Fatalf("samples = %d, want %d", n, tt.want)
			}
			if tt.want < samples+60 && c.Capturing() {
				t.Fatal("capture should stop once the duration elapsed")
			}
		})
	}
}

func TestControllerFinishAnalysesWrist(t *testing.T) {
	c := NewController(passthrough())
	jitter := testutil.Uniform(1005, samples)

	c.StartCapture(0)
	for i := 0; i < samples; i++ {
		x := 0.5 + 0.1*math.Sin(2*math.Pi*5*float64(i)/rateHz)
		y := 0.5 + 0.002*(jitter[i]-0.5)
		c.ProcessFrame(bodyFrame(wrist(0.2, 0.2, 0.3), wrist(x, y, 0.95)), frameTs(i))
	}

	if _, ready := c.Progress(); !ready {
		t.Fatal("trajectory should be ready")
	}

	res, err := c.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if c.Capturing() {
		t.Fatal("Finish should stop the capture")
	}
	testutil.RequireInRange(t, "FrequencyHz", res.FrequencyHz, 4.8, 5.2)
	if res.Axis != tremor.AxisX || res.Lag != 6 || res.Samples != samples {
		t.Fatalf("result = %+v", res)
	}
}

func TestControllerFinishErrors(t *testing.T) {
	c := NewController()
	if _, err := c.Finish(); !errors.Is(err, ErrNoCapture) {
		t.Fatalf("Finish() without capture err = %v, want ErrNoCapture", err)
	}

	c.StartCapture(0)
	c.ProcessFrame(bodyFrame(wrist(0.1, 0.1, 0.9), wrist(0.1, 0.1, 0.1)), 0)
	if _, err := c.Finish(); !errors.Is(err, tremor.ErrInsufficientSamples) {
		t.Fatalf("Finish() err = %v, want ErrInsufficientSamples", err)
	}
}

func TestControllerAnalyzerSetsReadiness(t *testing.T) {
	c := NewController(passthrough(), WithAnalyzer(tremor.NewAnalyzer(tremor.Config{MinSamples: 2})))
	frame := bodyFrame(wrist(0.1, 0.1, 0.9), wrist(0.1, 0.1, 0.1))

	c.StartCapture(0)
	c.ProcessFrame(frame, 0)
	c.ProcessFrame(frame, frameTs(1))

	if _, ready := c.Progress(); !ready {
		t.Fatal("two samples should satisfy MinSamples=2")
	}
}

func TestControllerWristVisibilityOption(t *testing.T) {
	c := NewController(passthrough(), WithWristVisibility(0.2), WithWristVisibility(2))
	c.StartCapture(0)

	f := c.ProcessFrame(bodyFrame(wrist(0.1, 0.1, 0.3), wrist(0.1, 0.1, 0.25)), 0)
	if !f.Captured {
		t.Fatal("wrist above the lowered threshold was not captured")
	}
}

func TestControllerReset(t *testing.T) {
	c := NewController(passthrough())
	id := c.ID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("ID() = %q is not a UUID: %v", id, err)
	}

	c.StartCapture(0)
	c.ProcessFrame(bodyFrame(wrist(0.1, 0.1, 0.9), wrist(0.1, 0.1, 0.1)), 0)
	c.Reset()

	if c.ID() == id {
		t.Fatal("Reset should start a new session ID")
	}
	if c.Capturing() {
		t.Fatal("Reset should stop the capture")
	}
	if n, _ := c.Progress(); n != 0 {
		t.Fatalf("samples after Reset = %d", n)
	}
	if _, err := c.Finish(); !errors.Is(err, ErrNoCapture) {
		t.Fatalf("Finish() after Reset err = %v", err)
	}
}

func TestControllerConcurrentUse(t *testing.T) {
	c := NewController()
	c.StartCapture(0)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				c.ProcessFrame(bodyFrame(wrist(0.1, 0.1, 0.9), wrist(0.2, 0.2, 0.1)), frameTs(g*50+i))
				_, _ = c.Progress()
			}
		}(g)
	}
	wg.Wait()

	if n, _ := c.Progress(); n != 200 {
		t.Fatalf("samples = %d, want 200", n)
	}
}
