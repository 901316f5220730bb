/*
PURPOSE:
  Defines the root Cobra command for the qos-llm CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface for summarizing and comparing benchmark runs.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Flags double as QOSLLM_* environment variables (viper).

ARCHITECTURE INTEGRATION:
  - Called by: cmd/qos-llm/main.go
  - Calls: Child commands (summarize, analyze)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.
  - Cobra errors are silenced here so main.go prints them once.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init() and bind them in viper.

RELATED FILES:
  - cmd/qos-llm/main.go
  - internal/config/config.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/daryltucker/qos-llm/internal/config"
	"github.com/daryltucker/qos-llm/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "qos-llm",
	Short: "Summarize and compare local inference benchmark runs",
	Long: `Extracts throughput and Metal memory facts from llama.cpp run logs and
compares runs by their resource usage. Use 'summarize --help' and 'analyze --help'.`,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			output.SetLogger(output.NewLogger(os.Stderr, slog.LevelDebug))
		}
	},
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is ./qos-llm.yaml)")
	rootCmd.PersistentFlags().String("report-dir", "", "directory for analysis outputs (overrides config)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	viper.SetEnvPrefix("QOSLLM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{"config", "report-dir", "verbose"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

// loadConfig loads the tool configuration and applies flag/env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	if dir := viper.GetString("report-dir"); dir != "" {
		cfg.ReportDir = dir
	}
	return cfg, nil
}
