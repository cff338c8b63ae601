package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cwbudde/algo-motion/measure/tremor"
)

var (
	detrendedColor = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	windowedColor  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	acfColor       = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <file>",
		Short: "Plot the analysed series and its autocorrelation as PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	cmd.Flags().StringP("output", "o", "tremor.png", "output PNG file")
	cmd.Flags().Float64("width", 10, "image width in inches")
	cmd.Flags().Float64("height", 8, "image height in inches")

	return cmd
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	analyzer, err := cfg.Analyzer()
	if err != nil {
		return err
	}

	samples, err := readSamplesFile(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	res, trace, err := analyzer.AnalyzeTrace(samples)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetFloat64("width")
	height, _ := cmd.Flags().GetFloat64("height")

	if err := savePlot(output, res, trace, vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%.2f Hz on %s)\n", output, res.FrequencyHz, res.Axis)

	return nil
}

func savePlot(path string, res tremor.Result, trace tremor.Trace, width, height vg.Length) error {
	pSeries := plot.New()
	pSeries.Title.Text = fmt.Sprintf("Wrist %s axis (detrended)", res.Axis)
	pSeries.X.Label.Text = "Sample"
	pSeries.Y.Label.Text = "Displacement"

	if err := addLine(pSeries, "detrended", trace.Detrended, detrendedColor); err != nil {
		return err
	}
	if err := addLine(pSeries, "windowed", trace.Windowed, windowedColor); err != nil {
		return err
	}

	pACF := plot.New()
	pACF.Title.Text = fmt.Sprintf("Autocorrelation (lag %d, %.2f Hz, confidence %.2f)",
		res.Lag, res.FrequencyHz, res.Confidence)
	pACF.X.Label.Text = "Lag (samples)"
	pACF.Y.Label.Text = "R"

	if err := addLine(pACF, "autocorrelation", trace.Autocorrelation, acfColor); err != nil {
		return err
	}

	if res.PeakFound && res.Lag < len(trace.Autocorrelation) {
		peak, err := plotter.NewScatter(plotter.XYs{{X: float64(res.Lag), Y: trace.Autocorrelation[res.Lag]}})
		if err != nil {
			return err
		}
		peak.GlyphStyle.Color = acfColor
		peak.GlyphStyle.Radius = vg.Points(4)
		pACF.Add(peak)
		pACF.Legend.Add("peak", peak)
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Millimeter * 4, PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2}
	canvases := plot.Align([][]*plot.Plot{{pSeries}, {pACF}}, tiles, dc)
	pSeries.Draw(canvases[0][0])
	pACF.Draw(canvases[1][0])

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write png: %w", err)
	}

	return f.Close()
}

func addLine(p *plot.Plot, label string, ys []float64, c color.Color) error {
	pts := make(plotter.XYs, len(ys))
	for i, y := range ys {
		pts[i] = plotter.XY{X: float64(i), Y: y}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add(label, line)

	return nil
}
