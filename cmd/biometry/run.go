// ABOUTME: CLI command running all pipeline stages in order.
// ABOUTME: Ingest, summarize, and normalize with shared flags.
package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: ingest, summarize, normalize",
	Long: `Run ingest, summarize, and normalize in order.

A failure stops the pipeline at that stage; tables committed by earlier
stages stay in place, so fix the input and re-run from the failed stage
(or run the whole pipeline again, every stage is idempotent).

EXAMPLES:

  biometry run --data-dir ./data
  biometry run --data-dir ./data --strict-range`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runIngest(); err != nil {
			return err
		}
		if err := runSummarize(); err != nil {
			return err
		}
		return runNormalize()
	},
}

func init() {
	runCmd.Flags().StringVar(&ingestDataDir, "data-dir", "", "directory holding questions.csv, test.csv, and train.csv")
	runCmd.Flags().BoolVar(&normalizeStrict, "strict-range", false, "fail on a degenerate statistic range instead of writing 0")
	rootCmd.AddCommand(runCmd)
}
