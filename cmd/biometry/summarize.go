// ABOUTME: CLI command for the aggregation stage.
// ABOUTME: Builds per-device and per-sequence summary tables.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/teambias/biometry-challenge/internal/storage"
	"github.com/teambias/biometry-challenge/internal/summary"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Build summary tables from the raw readings",
	Long: `Compute one summary row per group from the raw tables.

Training readings group by Device into train_summary; test readings
group by SequenceId into test_summary. Each row holds range, min, max,
avg, and variance of the per-sample magnitude d = X*X + Y*Y + Z*Z.

Both destination tables are dropped and rebuilt. Requires a prior
'biometry ingest'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummarize()
	},
}

func runSummarize() error {
	groups, err := summary.Summarize(store, logger, storage.TableTrain, storage.TableTrainSummary, storage.TrainKey)
	if err != nil {
		return fmt.Errorf("summarize train failed: %w", err)
	}
	color.Green("✓ Summarized %s", storage.TableTrain)
	fmt.Printf("  %s %d devices\n", color.New(color.Faint).Sprint(storage.TableTrainSummary), groups)

	groups, err = summary.Summarize(store, logger, storage.TableTest, storage.TableTestSummary, storage.TestKey)
	if err != nil {
		return fmt.Errorf("summarize test failed: %w", err)
	}
	color.Green("✓ Summarized %s", storage.TableTest)
	fmt.Printf("  %s %d sequences\n", color.New(color.Faint).Sprint(storage.TableTestSummary), groups)

	return nil
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}
