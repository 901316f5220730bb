/*
PURPOSE:
  Builds the canonical per-run record from a run's config.txt and console
  log, and persists it as summary.json.

REQUIREMENTS:
  User-specified:
  - ctx and gen_tokens are integers, 0 when absent or empty.
  - tag and model_path are strings, "" when absent.
  - Log facts are carried over exactly as found.

  Implementation-discovered:
  - run_dir is the resolved absolute path of the run directory.
  - A log with no matching line is worth a warning, not a failure.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (summarize), tests of internal/report
  - Uses: internal/extract, internal/runconfig, internal/output

ERROR HANDLING:
  - Missing log or config returns model.ErrMissingInput.
  - Non-numeric ctx/gen_tokens returns model.ErrMalformedNumber.
  - Nothing is written when any step fails.

IMPLEMENTATION RULES:
  - summary.json is a whole-file replace.

USAGE:
  s, err := summary.Summarize(dir, cfg.RunFiles(dir))

SELF-HEALING INSTRUCTIONS:
  - New config-derived fields go in Build() and model.RunSummary.

RELATED FILES:
  - internal/model/types.go
  - internal/output/json.go

MAINTENANCE:
  - None.
*/

package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/daryltucker/qos-llm/internal/config"
	"github.com/daryltucker/qos-llm/internal/extract"
	"github.com/daryltucker/qos-llm/internal/model"
	"github.com/daryltucker/qos-llm/internal/output"
	"github.com/daryltucker/qos-llm/internal/runconfig"
)

// Build merges a run's config with the facts found in its log.
// ctx and gen_tokens default to 0 when absent or empty; tag and model path
// default to "". Log facts are carried over as found.
func Build(runDir string, cfg model.ConfigRecord, facts model.LogFacts) (model.RunSummary, error) {
	ctx, err := intField(cfg, runconfig.KeyCtx)
	if err != nil {
		return model.RunSummary{}, err
	}
	genTokens, err := intField(cfg, runconfig.KeyGenTokens)
	if err != nil {
		return model.RunSummary{}, err
	}
	return model.RunSummary{
		RunDir:    runDir,
		Tag:       cfg[runconfig.KeyTag],
		Ctx:       ctx,
		GenTokens: genTokens,
		ModelPath: cfg[runconfig.KeyModel],
		Facts:     facts,
	}, nil
}

func intField(cfg model.ConfigRecord, key string) (int64, error) {
	raw := cfg[key]
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config key %s=%q: %w", key, raw, model.ErrMalformedNumber)
	}
	return v, nil
}

// Summarize reads the log and config of the run in runDir, builds its
// summary and writes it to files.Summary. Nothing is written when either
// input is missing or malformed.
func Summarize(runDir string, files config.RunFiles) (model.RunSummary, error) {
	for _, p := range []string{files.Log, files.Config} {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				return model.RunSummary{}, fmt.Errorf("missing %s: %w", p, model.ErrMissingInput)
			}
			return model.RunSummary{}, err
		}
	}

	cfg, err := runconfig.ReadFile(files.Config)
	if err != nil {
		return model.RunSummary{}, err
	}

	raw, err := os.ReadFile(files.Log)
	if err != nil {
		return model.RunSummary{}, fmt.Errorf("failed to read log %s: %w", files.Log, err)
	}
	facts, err := extract.ParseLog(extract.Decode(raw))
	if err != nil {
		return model.RunSummary{}, fmt.Errorf("%s: %w", files.Log, err)
	}
	if facts.Empty() {
		output.Logger.Warn("No throughput or memory breakdown line found", "path", files.Log)
	} else {
		output.Logger.Debug("Parsed log", "path", files.Log,
			"throughput", facts.Throughput != nil, "memory", facts.Memory != nil)
	}

	s, err := Build(resolveDir(runDir), cfg, facts)
	if err != nil {
		return model.RunSummary{}, fmt.Errorf("%s: %w", files.Config, err)
	}

	if err := output.WriteJSON(files.Summary, s.Record()); err != nil {
		return model.RunSummary{}, err
	}
	return s, nil
}

// Load reads a persisted summary.json.
func Load(path string) (*model.Record, error) {
	return output.ReadRecord(path)
}

func resolveDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}
