/*
PURPOSE:
  Defines the core data structures used throughout qos-llm.
  These models represent the facts extracted from one benchmark run and
  the statistics derived from its resource samples.

REQUIREMENTS:
  User-specified:
  - Record context size, generation token count, model path and tag per run.
  - Track prompt/generation throughput and the Metal memory breakdown.
  - Track RSS, CPU and paging behaviour over the run.

  Implementation-discovered:
  - Log facts are optional groups. A pattern that never matched must stay
    absent all the way to the report, never zero-filled.
  - Persisted summaries must keep key order and numeric kind (9.0 stays a
    float), so records are ordered maps rather than structs.

ARCHITECTURE INTEGRATION:
  - Used by: internal/extract, internal/summary, internal/metrics, internal/report
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs). See errors.go for the shared sentinels.

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Field names on disk are snake_case and never change.

USAGE:
  facts := model.LogFacts{Throughput: &model.Throughput{GenTPS: 9}}
  rec := model.RunSummary{Tag: "baseline", Facts: facts}.Record()

SELF-HEALING INSTRUCTIONS:
  - If new metrics are needed, add the field and its key to the Record() method.

RELATED FILES:
  - internal/model/record.go
  - internal/report/table.go

MAINTENANCE:
  - Update when adding new metrics to capture.
*/

package model

// Keys of persisted summary records.
const (
	KeyRunDir    = "run_dir"
	KeyTag       = "tag"
	KeyCtx       = "ctx"
	KeyGenTokens = "gen_tokens"
	KeyModelPath = "model_path"

	KeyPromptTPS = "prompt_tps"
	KeyGenTPS    = "gen_tps"

	KeyMetalFree        = "metal_free_mib"
	KeyMetalUsed        = "metal_used_mib"
	KeyMetalModel       = "metal_model_mib"
	KeyMetalContext     = "metal_context_mib"
	KeyMetalCompute     = "metal_compute_mib"
	KeyMetalUnaccounted = "metal_unaccounted_mib"

	KeyRSSPeak       = "rss_peak_mb"
	KeyRSSMean       = "rss_mean_mb"
	KeyCPUMean       = "cpu_mean_pct"
	KeyPageinsFinal  = "pageins_final"
	KeyPageoutsFinal = "pageouts_final"
	KeyDuration      = "duration_s"
)

// ConfigRecord is the raw key=value configuration of a single run.
type ConfigRecord map[string]string

// Throughput is the last prompt/generation rate line printed by the engine, in tokens per second.
type Throughput struct {
	PromptTPS float64
	GenTPS    float64
}

// MemoryBreakdown is the last Metal device memory accounting line, in MiB.
// UsedTotal = Model + Context + Compute as printed by the engine.
type MemoryBreakdown struct {
	Free        int64
	UsedTotal   int64
	Model       int64
	Context     int64
	Compute     int64
	Unaccounted int64
}

// LogFacts holds what could be extracted from a run log.
// A nil group means its pattern never matched.
type LogFacts struct {
	Throughput *Throughput
	Memory     *MemoryBreakdown
}

// Empty reports whether no group was found.
func (f LogFacts) Empty() bool {
	return f.Throughput == nil && f.Memory == nil
}

// appendTo spreads the present groups into r.
func (f LogFacts) appendTo(r *Record) {
	if t := f.Throughput; t != nil {
		r.Set(KeyPromptTPS, Float(t.PromptTPS))
		r.Set(KeyGenTPS, Float(t.GenTPS))
	}
	if m := f.Memory; m != nil {
		r.Set(KeyMetalFree, m.Free)
		r.Set(KeyMetalUsed, m.UsedTotal)
		r.Set(KeyMetalModel, m.Model)
		r.Set(KeyMetalContext, m.Context)
		r.Set(KeyMetalCompute, m.Compute)
		r.Set(KeyMetalUnaccounted, m.Unaccounted)
	}
}

// Record returns the facts alone as a record.
func (f LogFacts) Record() *Record {
	r := NewRecord()
	f.appendTo(r)
	return r
}

// RunSummary is the canonical per-run record written to summary.json.
type RunSummary struct {
	RunDir    string
	Tag       string
	Ctx       int64
	GenTokens int64
	ModelPath string
	Facts     LogFacts
}

// Record flattens the summary into its persisted key order.
func (s RunSummary) Record() *Record {
	r := NewRecord()
	r.Set(KeyRunDir, s.RunDir)
	r.Set(KeyTag, s.Tag)
	r.Set(KeyCtx, s.Ctx)
	r.Set(KeyGenTokens, s.GenTokens)
	r.Set(KeyModelPath, s.ModelPath)
	s.Facts.appendTo(r)
	return r
}

// SampleRow is one line of a run's metrics.csv.
// TRel is filled in by metrics.ToRelTime.
type SampleRow struct {
	TS             float64
	RSSMB          float64
	CPUPct         float64
	VMPressureFlag string
	AvailMemLevel  string
	PageinsDelta   float64
	PageoutsDelta  float64
	TRel           float64
}

// RunStats is the scalar reduction of a sample series.
type RunStats struct {
	RSSPeakMB     float64
	RSSMeanMB     float64
	CPUMeanPct    float64
	PageinsFinal  float64
	PageoutsFinal float64
	DurationS     float64
}

// Record returns the stats in their persisted key order.
func (s RunStats) Record() *Record {
	r := NewRecord()
	r.Set(KeyRSSPeak, Float(s.RSSPeakMB))
	r.Set(KeyRSSMean, Float(s.RSSMeanMB))
	r.Set(KeyCPUMean, Float(s.CPUMeanPct))
	r.Set(KeyPageinsFinal, Float(s.PageinsFinal))
	r.Set(KeyPageoutsFinal, Float(s.PageoutsFinal))
	r.Set(KeyDuration, Float(s.DurationS))
	return r
}
