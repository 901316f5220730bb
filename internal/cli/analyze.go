/*
PURPOSE:
  Defines the 'analyze' subcommand.
  Merges run summaries with their resource samples and compares runs.

REQUIREMENTS:
  User-specified:
  - One or more run directories, processed in the order given.
  - Outputs go to the report directory.

  Implementation-discovered:
  - --report-dir / QOSLLM_REPORT_DIR override the configured directory.

ARCHITECTURE INTEGRATION:
  - Calls: internal/report.Analyze()
  - Uses: internal/config via loadConfig()

ERROR HANDLING:
  - No run directories is a usage error from cobra.
  - The first failing run aborts the batch.

IMPLEMENTATION RULES:
  - Logic: Load Config -> Override -> Analyze.

USAGE:
  qos-llm analyze runs/<RUN_A> runs/<RUN_B>

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"github.com/daryltucker/qos-llm/internal/report"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <run_dir>...",
	Short: "Merge run summaries with resource samples and compare runs",
	Long: `For every run directory, reads summary.json and metrics.csv, writes
<run>_summary.json and RSS/CPU/page-out charts to the report directory,
then writes comparison.json and comparison.csv and prints a comparison
table. Runs are processed in the order given; the first failing run stops
the batch.`,
	Example: `  qos-llm analyze runs/ctx4k runs/ctx8k
  qos-llm analyze --report-dir out runs/*`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, err = report.Analyze(args, cfg, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
