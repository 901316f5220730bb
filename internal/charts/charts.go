/*
PURPOSE:
  Renders per-run time series (RSS, CPU, page-outs) as PNG line charts.

REQUIREMENTS:
  User-specified:
  - One chart per series per run, x axis is time since the first sample.

  Implementation-discovered:
  - A run without samples still gets its (empty) charts.

ARCHITECTURE INTEGRATION:
  - Called by: internal/report.AnalyzeRun
  - Dependencies: gonum.org/v1/plot

ERROR HANDLING:
  - Returns error on line construction or save failure.

IMPLEMENTATION RULES:
  - Rows must already carry TRel (metrics.ToRelTime).
  - Image size comes from internal/config.

USAGE:
  paths, err := charts.SaveRun(rows, "r1", "reports", opts)

SELF-HEALING INSTRUCTIONS:
  - Add a chart by appending to RunSeries.

RELATED FILES:
  - internal/metrics/metrics.go

MAINTENANCE:
  - None.
*/

package charts

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/daryltucker/qos-llm/internal/model"
)

// Series selects one column of a run's samples against relative time.
type Series struct {
	Suffix string
	YLabel string
	Title  string
	Value  func(model.SampleRow) float64
}

// RunSeries are the charts written for every analyzed run.
var RunSeries = []Series{
	{Suffix: "rss", YLabel: "rss (MB)", Title: "RSS vs time", Value: func(r model.SampleRow) float64 { return r.RSSMB }},
	{Suffix: "cpu", YLabel: "cpu (%)", Title: "CPU% vs time", Value: func(r model.SampleRow) float64 { return r.CPUPct }},
	{Suffix: "pageouts", YLabel: "pageouts (delta)", Title: "Pageouts vs time", Value: func(r model.SampleRow) float64 { return r.PageoutsDelta }},
}

// Options sizes the rendered images.
type Options struct {
	Width  vg.Length
	Height vg.Length
}

// SaveRun writes <run>_<suffix>.png into outDir for each of RunSeries and
// returns the written paths. rows must already carry TRel.
func SaveRun(rows []model.SampleRow, run, outDir string, opts Options) ([]string, error) {
	paths := make([]string, 0, len(RunSeries))
	for _, s := range RunSeries {
		path := filepath.Join(outDir, fmt.Sprintf("%s_%s.png", run, s.Suffix))
		if err := saveSeries(rows, s, run, path, opts); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func saveSeries(rows []model.SampleRow, s Series, run, path string, opts Options) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s)", s.Title, run)
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = s.YLabel

	if len(rows) > 0 {
		pts := make(plotter.XYs, len(rows))
		for i, r := range rows {
			pts[i].X = r.TRel
			pts[i].Y = s.Value(r)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to build %s line: %w", s.Suffix, err)
		}
		line.Color = color.RGBA{31, 119, 180, 255}
		line.Width = vg.Points(1.5)
		p.Add(line)
	}

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}
