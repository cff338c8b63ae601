package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-motion/measure/tremor"
	timestats "github.com/cwbudde/algo-motion/stats/time"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Estimate tremor frequency, amplitude and confidence",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	cmd.Flags().Bool("json", false, "print the result as JSON")
	cmd.Flags().String("confidence", "", "confidence method override: heuristic or spectral")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if method, _ := cmd.Flags().GetString("confidence"); method != "" {
		cfg.Tremor.Confidence = method
	}

	analyzer, err := cfg.Analyzer()
	if err != nil {
		return err
	}

	samples, err := readSamplesFile(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	res, err := analyzer.Analyze(samples)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	var sx, sy timestats.Running
	for _, s := range samples {
		sx.Add(s.X)
		sy.Add(s.Y)
	}

	return printResult(cmd.OutOrStdout(), res, sx.Result(), sy.Result())
}

func printResult(w io.Writer, res tremor.Result, sx, sy timestats.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Frequency\t%.2f Hz\n", res.FrequencyHz)
	fmt.Fprintf(tw, "Raw frequency\t%.2f Hz\n", res.RawFrequencyHz)
	fmt.Fprintf(tw, "Amplitude\t%.5f\n", res.Amplitude)
	fmt.Fprintf(tw, "Confidence\t%.2f\n", res.Confidence)
	fmt.Fprintf(tw, "Axis\t%s\n", res.Axis)
	fmt.Fprintf(tw, "Lag\t%d samples (peak found: %t)\n", res.Lag, res.PeakFound)
	fmt.Fprintf(tw, "Sampling rate\t%.2f Hz\n", res.SamplingRateHz)
	fmt.Fprintf(tw, "Samples\t%d\n", res.Samples)
	fmt.Fprintf(tw, "X spread\tstd %.5f range %.5f\n", sx.StdDev, sx.Range)
	fmt.Fprintf(tw, "Y spread\tstd %.5f range %.5f\n", sy.StdDev, sy.Range)

	return tw.Flush()
}
