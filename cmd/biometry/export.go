// ABOUTME: CLI command for exporting summary tables as CSV.
// ABOUTME: Supports raw and normalized tables for either dataset side.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/teambias/biometry-challenge/internal/models"
	"github.com/teambias/biometry-challenge/internal/storage"
)

var (
	exportSet        string
	exportNormalized bool
	exportOutput     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a summary table as CSV",
	Long: `Export a summary table as CSV: a header row, then one row per
group with the statistics first and the group key last.

OPTIONS:

  --set, -s       Which side to export: train or test (default train)
  --normalized    Export the t_-prefixed normalized table
  --output, -o    Write to file instead of stdout

EXAMPLES:

  biometry export --set train                       # train_summary to stdout
  biometry export --set test --normalized           # test_summary_norm
  biometry export -s train -o summary.csv           # save to file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidSet(exportSet) {
			return fmt.Errorf("unknown set: %s (use train or test)", exportSet)
		}

		table := storage.TableTrainSummary
		key := storage.TrainKey
		if models.Set(exportSet) == models.SetTest {
			table = storage.TableTestSummary
			key = storage.TestKey
		}
		if exportNormalized {
			table += storage.NormSuffix
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		n, err := store.ExportSummaryCSV(out, table, key, exportNormalized)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			color.Green("✓ Exported %s", table)
			fmt.Printf("  %s %d rows\n", color.New(color.Faint).Sprint(exportOutput), n)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportSet, "set", "s", "train", "dataset side: train or test")
	exportCmd.Flags().BoolVar(&exportNormalized, "normalized", false, "export the normalized table")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
