package charts

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/daryltucker/qos-llm/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var small = Options{Width: 2 * vg.Inch, Height: 2 * vg.Inch}

func TestSaveRun(t *testing.T) {
	dir := t.TempDir()
	rows := []model.SampleRow{
		{TRel: 0, RSSMB: 100, CPUPct: 50, PageoutsDelta: 0},
		{TRel: 5, RSSMB: 150, CPUPct: 90, PageoutsDelta: 3},
	}
	paths, err := SaveRun(rows, "r1", dir, small)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "r1_rss.png"),
		filepath.Join(dir, "r1_cpu.png"),
		filepath.Join(dir, "r1_pageouts.png"),
	}, paths)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestSaveRunNoRows(t *testing.T) {
	paths, err := SaveRun(nil, "empty", t.TempDir(), small)
	require.NoError(t, err)
	assert.Len(t, paths, 3)
}
