package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)
	_, err := rootCmd.ExecuteC()
	return b.String(), err
}

func TestRootUnknownCommand(t *testing.T) {
	_, err := execute(t, "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "nonexistent" for "qos-llm"`)
}

func TestSummarizeArgCount(t *testing.T) {
	_, err := execute(t, "summarize")
	assert.Error(t, err)
	_, err = execute(t, "summarize", "a", "b")
	assert.Error(t, err)
}

func TestAnalyzeNeedsRuns(t *testing.T) {
	_, err := execute(t, "analyze")
	assert.Error(t, err)
}

func TestSummarizeMissingLog(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "summarize", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing "+filepath.Join(dir, "llama_output.log"))
}

func TestSummarizeThenAnalyze(t *testing.T) {
	root := t.TempDir()
	run := filepath.Join(root, "run1")
	require.NoError(t, os.MkdirAll(run, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(run, "config.txt"), []byte("tag=baseline\nctx=\ngen_tokens=128\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(run, "llama_output.log"),
		[]byte("[ Prompt: 12.0 t/s | Generation: 7.5 t/s ]\n[ Prompt: 12.0 t/s | Generation: 9.0 t/s ]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(run, "metrics.csv"),
		[]byte("ts,rss_mb,cpu_pct,vm_pressure_flag,avail_mem_level,pageins_delta,pageouts_delta\n1000,100,1,,,0,0\n1005,150,1,,,0,1\n1010,120,1,,,0,2\n"), 0644))

	cfgPath := filepath.Join(root, "qos-llm.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("plots: false\n"), 0644))
	reports := filepath.Join(root, "reports")

	out, err := execute(t, "summarize", "--config", cfgPath, run)
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+filepath.Join(run, "summary.json")+"\n", out)

	out, err = execute(t, "analyze", "--config", cfgPath, "--report-dir", reports, run)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Comparison:", lines[0])
	assert.Equal(t, "- baseline  ctx=0  gen_tps=9.0  metal_model_mib=?  rss_peak_mb=150.00  pageouts_final=2.0", lines[1])

	assert.Equal(t, reports, viper.GetString("report-dir"))
	assert.Equal(t, cfgPath, viper.GetString("config"))

	_, err = os.Stat(filepath.Join(reports, "comparison.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(reports, "run1_rss.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestReportDirFromEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "env-reports")
	t.Setenv("QOSLLM_REPORT_DIR", dir)
	resetFlags(t, "config", "report-dir")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.ReportDir)
}

func resetFlags(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		f := rootCmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
}
