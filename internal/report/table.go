/*
PURPOSE:
  Renders the console comparison table, one line per run.

REQUIREMENTS:
  User-specified:
  - Line format:
    - {tag}  ctx={ctx}  gen_tps={gen_tps}  metal_model_mib={metal_model_mib}  rss_peak_mb={rss_peak_mb:.2f}  pageouts_final={pageouts_final}
  - A missing field prints a placeholder and never aborts the report.

  Implementation-discovered:
  - Floats print with a fractional part (9.0) to match the persisted JSON.

ARCHITECTURE INTEGRATION:
  - Called by: internal/report.Analyze

ERROR HANDLING:
  - Returns write errors from the destination writer only.

IMPLEMENTATION RULES:
  - Placeholders live in TableColumns, nowhere else.

USAGE:
  report.WriteTable(os.Stdout, set)

SELF-HEALING INSTRUCTIONS:
  - Add a column by appending to TableColumns.

RELATED FILES:
  - internal/report/report.go

MAINTENANCE:
  - None.
*/

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/daryltucker/qos-llm/internal/model"
)

// Column is one field of the console comparison table. Default is printed
// when the field is absent or cannot be formatted; an empty Label prints
// the value bare.
type Column struct {
	Key     string
	Label   string
	Default string
	Format  func(v any) (string, bool)
}

// TableColumns is the layout of every comparison line:
//
//	- {tag}  ctx={ctx}  gen_tps={gen_tps}  metal_model_mib={metal_model_mib}  rss_peak_mb={rss_peak_mb:.2f}  pageouts_final={pageouts_final}
var TableColumns = []Column{
	{Key: model.KeyTag, Default: "", Format: plain},
	{Key: model.KeyCtx, Label: "ctx", Default: "?", Format: plain},
	{Key: model.KeyGenTPS, Label: "gen_tps", Default: "?", Format: plain},
	{Key: model.KeyMetalModel, Label: "metal_model_mib", Default: "?", Format: plain},
	{Key: model.KeyRSSPeak, Label: "rss_peak_mb", Default: "0.00", Format: fixed2},
	{Key: model.KeyPageoutsFinal, Label: "pageouts_final", Default: "0", Format: plain},
}

// FormatLine renders one comparison line for rec.
func FormatLine(rec *model.Record) string {
	var b strings.Builder
	b.WriteString("-")
	for _, c := range TableColumns {
		s := c.Default
		if v, ok := rec.Get(c.Key); ok && v != nil {
			if f, ok := c.Format(v); ok {
				s = f
			}
		}
		if c.Label == "" {
			b.WriteString(" ")
		} else {
			b.WriteString("  ")
			b.WriteString(c.Label)
			b.WriteString("=")
		}
		b.WriteString(s)
	}
	return b.String()
}

// WriteTable prints the comparison header followed by one line per run.
func WriteTable(w io.Writer, set ComparisonSet) error {
	if _, err := fmt.Fprint(w, "\nComparison:\n"); err != nil {
		return err
	}
	for _, rec := range set {
		if _, err := fmt.Fprintln(w, FormatLine(rec)); err != nil {
			return err
		}
	}
	return nil
}

func plain(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case int64:
		return strconv.FormatInt(x, 10), true
	case model.Float:
		return x.String(), true
	case bool:
		if x {
			return "True", true
		}
		return "False", true
	}
	return fmt.Sprint(v), true
}

func fixed2(v any) (string, bool) {
	switch x := v.(type) {
	case int64:
		return strconv.FormatFloat(float64(x), 'f', 2, 64), true
	case model.Float:
		return strconv.FormatFloat(float64(x), 'f', 2, 64), true
	}
	return "", false
}
