/*
PURPOSE:
  Right-biased merge of records: sample statistics override summary fields.

REQUIREMENTS:
  User-specified:
  - On a key collision the later source wins.

  Implementation-discovered:
  - An overridden key keeps its original position in the output.

ARCHITECTURE INTEGRATION:
  - Called by: internal/report.AnalyzeRun

ERROR HANDLING:
  - None.

IMPLEMENTATION RULES:
  - Precedence is the argument order; never special-case fields here.

USAGE:
  merged := report.Merge(summaryRec, stats.Record())

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/model/record.go

MAINTENANCE:
  - None.
*/

package report

import "github.com/daryltucker/qos-llm/internal/model"

// Merge combines sources left to right: a key set by a later source
// replaces the value of an earlier one but keeps the earlier position.
// Sources are not modified.
func Merge(sources ...*model.Record) *model.Record {
	out := model.NewRecord()
	for _, src := range sources {
		for _, k := range src.Keys() {
			v, _ := src.Get(k)
			out.Set(k, v)
		}
	}
	return out
}
