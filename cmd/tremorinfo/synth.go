package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-motion/dsp/core"
	"github.com/cwbudde/algo-motion/dsp/signal"
	"github.com/cwbudde/algo-motion/measure/tremor"
	"github.com/cwbudde/algo-motion/pose"
)

type synthParams struct {
	freqHz   float64
	amp      float64
	rateHz   float64
	duration time.Duration
	noise    float64
	drift    float64
	seed     int64
	axis     string
	startMs  float64
}

func newSynthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write a synthetic wrist trajectory",
		Args:  cobra.NoArgs,
		RunE:  runSynth,
	}

	f := cmd.Flags()
	f.Float64("freq", 5, "tremor frequency in Hz")
	f.Float64("amp", 0.1, "tremor amplitude in normalized image units")
	f.Float64("rate", 30, "frame rate in Hz")
	f.Duration("duration", 20*time.Second, "capture length")
	f.Float64("noise", 0.002, "uniform noise amplitude on both axes")
	f.Float64("drift", 0, "linear drift per sample on the tremor axis")
	f.Int64("seed", 1, "noise seed")
	f.String("axis", "x", "tremor axis: x or y")
	f.Float64("start-ms", 0, "timestamp of the first sample in milliseconds")
	f.String("format", "csv", "output format: csv, json or jsonl (pose frames for replay)")
	f.StringP("output", "o", "-", "output file, - for stdout")

	return cmd
}

func runSynth(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()

	var p synthParams
	p.freqHz, _ = f.GetFloat64("freq")
	p.amp, _ = f.GetFloat64("amp")
	p.rateHz, _ = f.GetFloat64("rate")
	p.duration, _ = f.GetDuration("duration")
	p.noise, _ = f.GetFloat64("noise")
	p.drift, _ = f.GetFloat64("drift")
	p.seed, _ = f.GetInt64("seed")
	p.axis, _ = f.GetString("axis")
	p.startMs, _ = f.GetFloat64("start-ms")
	format, _ := f.GetString("format")
	output, _ := f.GetString("output")

	samples, err := synthesize(p)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	switch format {
	case "csv":
		return writeCSV(w, samples)
	case "json":
		return json.NewEncoder(w).Encode(samples)
	case "jsonl":
		return writeFrames(w, samples)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func synthesize(p synthParams) ([]tremor.Sample, error) {
	if p.axis != "x" && p.axis != "y" {
		return nil, fmt.Errorf("unknown axis %q", p.axis)
	}
	if !(p.rateHz > 0) {
		return nil, fmt.Errorf("rate must be > 0: %v", p.rateHz)
	}

	n := int(p.duration.Seconds() * p.rateHz)
	sampling := []core.ProcessorOption{core.WithSampleRate(p.rateHz), core.WithStartMs(p.startMs)}
	gen := signal.NewGenerator(sampling, signal.WithSeed(p.seed))

	tone, err := gen.Sine(p.freqHz, p.amp, 0, n)
	if err != nil {
		return nil, err
	}
	ramp, err := gen.Ramp(0.5, p.drift, n)
	if err != nil {
		return nil, err
	}
	noise, err := gen.WhiteNoise(p.noise, n)
	if err != nil {
		return nil, err
	}
	moving, err := signal.Mix(tone, ramp, noise)
	if err != nil {
		return nil, err
	}

	// The still axis gets an independent noise stream.
	still, err := signal.NewGenerator(sampling, signal.WithSeed(p.seed+1)).WhiteNoise(p.noise, n)
	if err != nil {
		return nil, err
	}

	ts := gen.Timestamps(n)
	out := make([]tremor.Sample, n)
	for i := range out {
		x, y := moving[i], 0.5+still[i]
		if p.axis == "y" {
			x, y = y, x
		}
		out[i] = tremor.Sample{X: x, Y: y, TimestampMs: ts[i]}
	}

	return out, nil
}

// frameRecord is one line of a replay file.
type frameRecord struct {
	TimestampMs float64         `json:"timestamp"`
	Landmarks   []pose.Landmark `json:"landmarks"`
}

// writeFrames embeds the trajectory as the right wrist of full pose frames.
func writeFrames(w io.Writer, samples []tremor.Sample) error {
	enc := json.NewEncoder(w)
	for _, s := range samples {
		lms := make([]pose.Landmark, pose.NumLandmarks)
		for i := range lms {
			lms[i] = pose.Landmark{Point: pose.Pt(0.5, 0.5), Visibility: 0.9}
		}
		lms[pose.LeftWrist].Visibility = 0.2
		lms[pose.RightWrist] = pose.Landmark{Point: pose.Pt(s.X, s.Y), Visibility: 0.95}

		if err := enc.Encode(frameRecord{TimestampMs: s.TimestampMs, Landmarks: lms}); err != nil {
			return err
		}
	}

	return nil
}
