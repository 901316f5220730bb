/*
PURPOSE:
  Loads the resource samples recorded during a run (metrics.csv) and
  reduces them to scalar statistics.

REQUIREMENTS:
  User-specified:
  - Columns: ts, rss_mb, cpu_pct, vm_pressure_flag, avail_mem_level,
    pageins_delta, pageouts_delta.
  - Peak and mean RSS, mean CPU, duration, last page-in/out counters.
  - An empty series yields zeros, not an error.

  Implementation-discovered:
  - The two flag columns are optional and free text.
  - Chart rendering needs t_rel on every row (ToRelTime).

ARCHITECTURE INTEGRATION:
  - Called by: internal/report
  - Produces: []internal/model.SampleRow, internal/model.RunStats
  - Dependencies: github.com/aclements/go-moremath/stats

ERROR HANDLING:
  - Missing file returns model.ErrMissingInput.
  - A non-numeric or non-finite value returns model.ErrMalformedNumber
    naming the line and column.

IMPLEMENTATION RULES:
  - Use encoding/csv; columns are found by header name.

USAGE:
  rows, err := metrics.Load("runs/r1/metrics.csv")
  st := metrics.Aggregate(metrics.ToRelTime(rows))

SELF-HEALING INSTRUCTIONS:
  - New columns need a Col* constant and a SampleRow field.

RELATED FILES:
  - internal/model/types.go
  - internal/charts/charts.go

MAINTENANCE:
  - Page counters are the last row's value, not a sum of deltas.
*/

package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/daryltucker/qos-llm/internal/model"
)

// Column names of metrics.csv.
const (
	ColTS             = "ts"
	ColRSSMB          = "rss_mb"
	ColCPUPct         = "cpu_pct"
	ColVMPressureFlag = "vm_pressure_flag"
	ColAvailMemLevel  = "avail_mem_level"
	ColPageinsDelta   = "pageins_delta"
	ColPageoutsDelta  = "pageouts_delta"
)

// Load reads the sampling file at path. An empty file yields no rows.
func Load(path string) ([]model.SampleRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("missing %s: %w", path, model.ErrMissingInput)
		}
		return nil, err
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Read parses samples from r. The first record is the header; rows follow
// in chronological order.
func Read(r io.Reader) ([]model.SampleRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var rows []model.SampleRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		p := rowParser{rec: rec, col: col, line: line}
		row := model.SampleRow{
			TS:             p.float(ColTS),
			RSSMB:          p.float(ColRSSMB),
			CPUPct:         p.float(ColCPUPct),
			VMPressureFlag: p.text(ColVMPressureFlag),
			AvailMemLevel:  p.text(ColAvailMemLevel),
			PageinsDelta:   p.float(ColPageinsDelta),
			PageoutsDelta:  p.float(ColPageoutsDelta),
		}
		if p.err != nil {
			return nil, p.err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type rowParser struct {
	rec  []string
	col  map[string]int
	line int
	err  error
}

func (p *rowParser) text(name string) string {
	i, ok := p.col[name]
	if !ok || i >= len(p.rec) {
		return ""
	}
	return p.rec[i]
}

func (p *rowParser) float(name string) float64 {
	if p.err != nil {
		return 0
	}
	i, ok := p.col[name]
	if !ok || i >= len(p.rec) {
		p.err = fmt.Errorf("line %d: missing column %s: %w", p.line, name, model.ErrMalformedNumber)
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(p.rec[i]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		p.err = fmt.Errorf("line %d: column %s=%q: %w", p.line, name, p.rec[i], model.ErrMalformedNumber)
		return 0
	}
	return v
}

// ToRelTime sets TRel on every row to its offset from the first row's timestamp.
func ToRelTime(rows []model.SampleRow) []model.SampleRow {
	if len(rows) == 0 {
		return rows
	}
	t0 := rows[0].TS
	for i := range rows {
		rows[i].TRel = rows[i].TS - t0
	}
	return rows
}

// Aggregate reduces rows to RunStats. Every statistic of an empty series is 0.
// Page counters report the last row's value, not a sum.
func Aggregate(rows []model.SampleRow) model.RunStats {
	if len(rows) == 0 {
		return model.RunStats{}
	}
	rss := make([]float64, len(rows))
	cpu := make([]float64, len(rows))
	for i, r := range rows {
		rss[i] = r.RSSMB
		cpu[i] = r.CPUPct
	}
	_, peak := stats.Bounds(rss)
	last := rows[len(rows)-1]
	return model.RunStats{
		RSSPeakMB:     peak,
		RSSMeanMB:     stats.Mean(rss),
		CPUMeanPct:    stats.Mean(cpu),
		PageinsFinal:  last.PageinsDelta,
		PageoutsFinal: last.PageoutsDelta,
		DurationS:     last.TS - rows[0].TS,
	}
}
