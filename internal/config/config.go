/*
PURPOSE:
  Defines the tool configuration structure and loading logic for qos-llm.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of the report directory and per-run file names.
  - Allow turning plot rendering off.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Must not be confused with a run's config.txt (see internal/runconfig).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/summary, internal/report
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Returns error if an explicitly named file is missing; a missing default
    file falls back to defaults.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults match the layout the benchmark harness writes.

USAGE:
  cfg, err := config.Load("qos-llm.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for qos-llm.
type Config struct {
	ReportDir string `yaml:"report_dir"`

	// Per-run file names, relative to the run directory.
	LogFile     string `yaml:"log_file"`
	ConfigFile  string `yaml:"config_file"`
	SummaryFile string `yaml:"summary_file"`
	MetricsFile string `yaml:"metrics_file"`

	Plots         bool    `yaml:"plots"`
	PlotWidthIn   float64 `yaml:"plot_width_in"`
	PlotHeightIn  float64 `yaml:"plot_height_in"`
	ComparisonCSV bool    `yaml:"comparison_csv"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ReportDir:     "reports",
		LogFile:       "llama_output.log",
		ConfigFile:    "config.txt",
		SummaryFile:   "summary.json",
		MetricsFile:   "metrics.csv",
		Plots:         true,
		PlotWidthIn:   6.4,
		PlotHeightIn:  4.8,
		ComparisonCSV: true,
	}
}

// RunFiles resolves the per-run input and output paths inside runDir.
func (c *Config) RunFiles(runDir string) RunFiles {
	return RunFiles{
		Log:     filepath.Join(runDir, c.LogFile),
		Config:  filepath.Join(runDir, c.ConfigFile),
		Summary: filepath.Join(runDir, c.SummaryFile),
		Metrics: filepath.Join(runDir, c.MetricsFile),
	}
}

// RunFiles are the resolved paths of one run's artifacts.
type RunFiles struct {
	Log     string
	Config  string
	Summary string
	Metrics string
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"qos-llm.yaml", "qos.yaml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
