package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-motion/pose/quality"
	"github.com/cwbudde/algo-motion/session"
)

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <frames.jsonl>",
		Short: "Replay recorded pose frames through a tracking session",
		Long: `replay feeds JSON-lines frames ({"timestamp": ms, "landmarks": [...]})
through the smoothing, quality and capture pipeline. The capture starts at
the first frame and the final tremor result is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: runReplay,
	}

	cmd.Flags().BoolP("verbose", "v", false, "print the quality of every frame")

	return cmd
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts, err := cfg.SessionOptions()
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	out := cmd.OutOrStdout()

	ctrl := session.NewController(opts...)
	tiers := make(map[quality.Tier]int)
	frames := 0

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}

		var rec frameRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		if frames == 0 {
			ctrl.StartCapture(rec.TimestampMs)
		}
		frames++

		f := ctrl.ProcessFrame(rec.Landmarks, rec.TimestampMs)
		tiers[f.Quality.Tier]++
		if verbose {
			fmt.Fprintf(out, "%10.1f ms  %-5s %.2f  %s\n", rec.TimestampMs, f.Quality.Tier, f.Quality.Score, f.Quality.Reason)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	samples, _ := ctrl.Progress()

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Session\t%s\n", ctrl.ID())
	fmt.Fprintf(tw, "Frames\t%d (green %d, amber %d, red %d)\n",
		frames, tiers[quality.Green], tiers[quality.Amber], tiers[quality.Red])
	fmt.Fprintf(tw, "Wrist samples\t%d\n", samples)
	if err := tw.Flush(); err != nil {
		return err
	}

	res, err := ctrl.Finish()
	if err != nil {
		return err
	}

	sx, sy := ctrl.Spread()

	return printResult(out, res, sx, sy)
}
