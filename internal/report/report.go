/*
PURPOSE:
  Merges each run's persisted summary with the statistics of its resource
  samples and assembles the cross-run comparison.

REQUIREMENTS:
  User-specified:
  - Per run: <run>_summary.json and RSS/CPU/page-out charts.
  - Across runs: comparison.json in request order and a console table.

  Implementation-discovered:
  - comparison.csv is written alongside for spreadsheets.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (analyze)
  - Uses: internal/metrics, internal/summary, internal/charts, internal/output

ERROR HANDLING:
  - Stops at the first failing run; comparison artifacts are not written.
  - Missing summary.json or metrics.csv returns model.ErrMissingInput.

IMPLEMENTATION RULES:
  - Runs are processed sequentially, in the order given.

USAGE:
  set, err := report.Analyze(dirs, cfg, os.Stdout)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/report/merge.go
  - internal/report/table.go

MAINTENANCE:
  - Switch to collect-and-continue only if partial comparisons are wanted.
*/

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"

	"github.com/daryltucker/qos-llm/internal/charts"
	"github.com/daryltucker/qos-llm/internal/config"
	"github.com/daryltucker/qos-llm/internal/metrics"
	"github.com/daryltucker/qos-llm/internal/model"
	"github.com/daryltucker/qos-llm/internal/output"
	"github.com/daryltucker/qos-llm/internal/summary"
)

// ComparisonSet holds one merged record per requested run, in request order.
type ComparisonSet []*model.Record

const (
	comparisonJSON = "comparison.json"
	comparisonCSV  = "comparison.csv"
)

// RunName identifies a run by the last element of its directory path.
func RunName(runDir string) string {
	return filepath.Base(filepath.Clean(runDir))
}

// AnalyzeRun merges the summary and sample statistics of runDir and writes
// <run>_summary.json (and the run's charts when enabled) into cfg.ReportDir.
func AnalyzeRun(runDir string, cfg *config.Config) (*model.Record, error) {
	files := cfg.RunFiles(runDir)
	name := RunName(runDir)

	rows, err := metrics.Load(files.Metrics)
	if err != nil {
		return nil, err
	}
	rows = metrics.ToRelTime(rows)
	st := metrics.Aggregate(rows)

	base, err := summary.Load(files.Summary)
	if err != nil {
		return nil, err
	}
	merged := Merge(base, st.Record())

	if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory %s: %w", cfg.ReportDir, err)
	}
	if err := output.WriteJSON(filepath.Join(cfg.ReportDir, name+"_summary.json"), merged); err != nil {
		return nil, err
	}

	if cfg.Plots {
		opts := charts.Options{
			Width:  vg.Length(cfg.PlotWidthIn) * vg.Inch,
			Height: vg.Length(cfg.PlotHeightIn) * vg.Inch,
		}
		if _, err := charts.SaveRun(rows, name, cfg.ReportDir, opts); err != nil {
			return nil, err
		}
	}

	output.Logger.Info("Analyzed run", "run", name, "rows", len(rows), "rss_peak_mb", st.RSSPeakMB)
	return merged, nil
}

// Analyze processes runDirs in order and stops at the first failing run.
// On success it writes comparison.json (and comparison.csv when enabled)
// and prints the comparison table to w.
func Analyze(runDirs []string, cfg *config.Config, w io.Writer) (ComparisonSet, error) {
	if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory %s: %w", cfg.ReportDir, err)
	}

	set := make(ComparisonSet, 0, len(runDirs))
	for _, dir := range runDirs {
		rec, err := AnalyzeRun(dir, cfg)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", dir, err)
		}
		set = append(set, rec)
	}

	if err := output.WriteJSON(filepath.Join(cfg.ReportDir, comparisonJSON), set); err != nil {
		return nil, err
	}
	if cfg.ComparisonCSV {
		if err := output.WriteRecordsCSV(filepath.Join(cfg.ReportDir, comparisonCSV), set); err != nil {
			return nil, err
		}
	}

	if err := WriteTable(w, set); err != nil {
		return nil, err
	}
	return set, nil
}
