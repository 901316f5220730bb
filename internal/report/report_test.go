package report

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/daryltucker/qos-llm/internal/config"
	"github.com/daryltucker/qos-llm/internal/model"
	"github.com/daryltucker/qos-llm/internal/output"
	"github.com/daryltucker/qos-llm/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	output.SetLogger(output.NewLogger(io.Discard, slog.LevelError))
	os.Exit(m.Run())
}

func TestMergeStatsWin(t *testing.T) {
	base := model.NewRecord()
	base.Set(model.KeyTag, "baseline")
	base.Set(model.KeyRSSPeak, 1.0)

	stats := model.RunStats{RSSPeakMB: 42.5}.Record()
	merged := Merge(base, stats)

	v, ok := merged.Float(model.KeyRSSPeak)
	require.True(t, ok)
	assert.Equal(t, 42.5, v)
	assert.Equal(t, model.KeyTag, merged.Keys()[0])
	assert.Equal(t, model.KeyRSSPeak, merged.Keys()[1])

	// sources untouched
	orig, _ := base.Float(model.KeyRSSPeak)
	assert.Equal(t, 1.0, orig)
}

func TestMergeFillsAbsent(t *testing.T) {
	base := model.RunSummary{Tag: "a"}.Record()
	assert.False(t, base.Has(model.KeyRSSPeak))
	merged := Merge(base, model.RunStats{RSSPeakMB: 42.5}.Record())
	v, _ := merged.Float(model.KeyRSSPeak)
	assert.Equal(t, 42.5, v)
}

func TestFormatLine(t *testing.T) {
	full := Merge(
		model.RunSummary{
			Tag: "baseline",
			Ctx: 4096,
			Facts: model.LogFacts{
				Throughput: &model.Throughput{PromptTPS: 12, GenTPS: 9},
				Memory:     &model.MemoryBreakdown{Model: 4400},
			},
		}.Record(),
		model.RunStats{RSSPeakMB: 150, PageoutsFinal: 7}.Record(),
	)
	assert.Equal(t,
		"- baseline  ctx=4096  gen_tps=9.0  metal_model_mib=4400  rss_peak_mb=150.00  pageouts_final=7.0",
		FormatLine(full))

	assert.Equal(t,
		"-   ctx=?  gen_tps=?  metal_model_mib=?  rss_peak_mb=0.00  pageouts_final=0",
		FormatLine(model.NewRecord()))
}

func writeRun(t *testing.T, root, name, cfgText, logText, csvText string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.txt"), []byte(cfgText), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "llama_output.log"), []byte(logText), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metrics.csv"), []byte(csvText), 0644))
	return dir
}

const csvHeader = "ts,rss_mb,cpu_pct,vm_pressure_flag,avail_mem_level,pageins_delta,pageouts_delta\n"

func TestAnalyzeTwoRuns(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ReportDir = filepath.Join(root, "reports")
	cfg.Plots = false

	r1 := writeRun(t, root, "r1",
		"tag=full\nctx=4096\ngen_tokens=128\n",
		"[ Prompt: 12.0 t/s | Generation: 9.0 t/s ]\n"+
			"llama_memory_breakdown_print: |   - Metal (Apple M2)   | 12288 = 3120 + (9000 = 4400 + 4000 + 600) + 168 |\n",
		csvHeader+"1000,100,10,,,0,0\n1005,150,20,,,1,2\n1010,120,30,,,3,4\n")
	r2 := writeRun(t, root, "r2",
		"tag=nometal\nctx=8192\n",
		"[ Prompt: 10.0 t/s | Generation: 5.5 t/s ]\n",
		csvHeader)

	for _, dir := range []string{r1, r2} {
		_, err := summary.Summarize(dir, cfg.RunFiles(dir))
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	set, err := Analyze([]string{r1, r2}, cfg, &buf)
	require.NoError(t, err)
	require.Len(t, set, 2)

	assert.Equal(t,
		"\nComparison:\n"+
			"- full  ctx=4096  gen_tps=9.0  metal_model_mib=4400  rss_peak_mb=150.00  pageouts_final=4.0\n"+
			"- nometal  ctx=8192  gen_tps=5.5  metal_model_mib=?  rss_peak_mb=0.00  pageouts_final=0.0\n",
		buf.String())

	for _, name := range []string{"r1_summary.json", "r2_summary.json", "comparison.json", "comparison.csv"} {
		_, err := os.Stat(filepath.Join(cfg.ReportDir, name))
		assert.NoError(t, err, name)
	}

	merged, err := output.ReadRecord(filepath.Join(cfg.ReportDir, "r1_summary.json"))
	require.NoError(t, err)
	dur, _ := merged.Float(model.KeyDuration)
	assert.Equal(t, 10.0, dur)
	assert.Equal(t, model.KeyRunDir, merged.Keys()[0])
}

func TestAnalyzeStopsAtMissingArtifact(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ReportDir = filepath.Join(root, "reports")
	cfg.Plots = false

	ok := writeRun(t, root, "ok", "tag=ok\n", "", csvHeader)
	_, err := summary.Summarize(ok, cfg.RunFiles(ok))
	require.NoError(t, err)
	bad := writeRun(t, root, "bad", "tag=bad\n", "", csvHeader)

	var buf bytes.Buffer
	_, err = Analyze([]string{ok, bad}, cfg, &buf)
	assert.ErrorIs(t, err, model.ErrMissingInput)
	assert.Contains(t, err.Error(), "summary.json")
	assert.Empty(t, buf.String())

	_, statErr := os.Stat(filepath.Join(cfg.ReportDir, "comparison.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyzeRunWritesCharts(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ReportDir = filepath.Join(root, "reports")
	cfg.PlotWidthIn, cfg.PlotHeightIn = 2, 2

	dir := writeRun(t, root, "r1", "tag=x\n", "", csvHeader+"1,10,1,,,0,0\n2,20,2,,,0,1\n")
	_, err := summary.Summarize(dir, cfg.RunFiles(dir))
	require.NoError(t, err)

	_, err = AnalyzeRun(dir, cfg)
	require.NoError(t, err)
	for _, s := range []string{"rss", "cpu", "pageouts"} {
		_, err := os.Stat(filepath.Join(cfg.ReportDir, "r1_"+s+".png"))
		assert.NoError(t, err, s)
	}
}

func TestRunName(t *testing.T) {
	assert.Equal(t, "r1", RunName("runs/r1/"))
	assert.Equal(t, "r1", RunName("r1"))
}

func TestAnalyzeNonFiniteSampleNamesLine(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ReportDir = filepath.Join(root, "reports")
	cfg.Plots = false

	dir := writeRun(t, root, "r1", "tag=x\n", "", csvHeader+"1,nan,1,,,0,0\n")
	_, err := summary.Summarize(dir, cfg.RunFiles(dir))
	require.NoError(t, err)

	_, err = Analyze([]string{dir}, cfg, io.Discard)
	require.ErrorIs(t, err, model.ErrMalformedNumber)
	assert.Contains(t, err.Error(), "metrics.csv")
	assert.Contains(t, err.Error(), `line 2: column rss_mb="nan"`)
}
