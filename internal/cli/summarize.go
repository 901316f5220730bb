/*
PURPOSE:
  Defines the 'summarize' subcommand.
  Turns one run directory's log and config into summary.json.

REQUIREMENTS:
  User-specified:
  - Exactly one run directory argument.
  - Fail with a clear message if llama_output.log or config.txt is missing.

  Implementation-discovered:
  - Prints "Wrote <path>" on stdout for scripts that chain the stages.

ARCHITECTURE INTEGRATION:
  - Calls: internal/summary.Summarize()
  - Uses: internal/config via loadConfig()

ERROR HANDLING:
  - Wrong argument count is a usage error from cobra.
  - Pipeline errors are returned to main.go.

IMPLEMENTATION RULES:
  - Logic: Load Config -> Override -> Summarize.

USAGE:
  qos-llm summarize runs/<RUN_ID>

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"

	"github.com/daryltucker/qos-llm/internal/output"
	"github.com/daryltucker/qos-llm/internal/summary"
	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <run_dir>",
	Short: "Extract a run's log and config into summary.json",
	Long: `Reads llama_output.log and config.txt from the run directory, extracts the
last throughput line and Metal memory breakdown, and writes summary.json
next to them. Fails if either input file is missing.`,
	Example: `  qos-llm summarize runs/20250101-120000`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		files := cfg.RunFiles(args[0])
		s, err := summary.Summarize(args[0], files)
		if err != nil {
			return err
		}
		output.Logger.Debug("Summarized run", "run_dir", s.RunDir, "tag", s.Tag)

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", files.Summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}
