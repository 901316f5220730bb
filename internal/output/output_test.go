package output

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/daryltucker/qos-llm/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONIndentAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	rec := model.NewRecord()
	rec.Set("tag", "baseline")
	rec.Set("gen_tps", 9.0)
	require.NoError(t, WriteJSON(path, rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"tag\": \"baseline\",\n  \"gen_tps\": 9.0\n}\n", string(data))

	back, err := ReadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Keys(), back.Keys())
	v, _ := back.Get("gen_tps")
	assert.Equal(t, model.Float(9), v)
}

func TestReadRecordMissing(t *testing.T) {
	_, err := ReadRecord(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, model.ErrMissingInput)
}

func TestWriteRecordsCSV(t *testing.T) {
	a := model.NewRecord()
	a.Set("tag", "a")
	a.Set("metal_model_mib", int64(4400))
	b := model.NewRecord()
	b.Set("tag", "b")
	b.Set("rss_peak_mb", 150.0)

	path := filepath.Join(t.TempDir(), "comparison.csv")
	require.NoError(t, WriteRecordsCSV(path, []*model.Record{a, b}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"tag", "metal_model_mib", "rss_peak_mb"},
		{"a", "4400", ""},
		{"b", "", "150.0"},
	}, rows)
}

func TestSetLogger(t *testing.T) {
	orig := Logger
	defer SetLogger(orig)

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, slog.LevelDebug))
	Logger.Debug("hello", "run", "r1")
	assert.Contains(t, buf.String(), "run=r1")
}
