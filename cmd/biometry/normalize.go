// ABOUTME: CLI command for the normalization stage.
// ABOUTME: Rescales both summary tables against training-set bounds.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/teambias/biometry-challenge/internal/models"
	"github.com/teambias/biometry-challenge/internal/storage"
	"github.com/teambias/biometry-challenge/internal/summary"
)

var normalizeStrict bool

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize summary tables against training bounds",
	Long: `Min-max rescale the summary statistics into t_-prefixed columns.

Bounds come from train_summary alone and the identical transform
(value - trainMin) / (trainMax - trainMin) is applied to both
train_summary and test_summary, writing train_summary_norm and
test_summary_norm. Test groups outside the training range land outside
[0, 1]; that is expected.

If a statistic has identical min and max across all training groups,
its normalized column is written as 0. Pass --strict-range to fail
instead, before anything is written. Requires a prior 'biometry
summarize'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNormalize()
	},
}

func runNormalize() error {
	policy := summary.ZeroFill
	if normalizeStrict {
		policy = summary.Strict
	}

	err := summary.Normalize(store, logger, models.StatNames(),
		storage.TableTrainSummary, storage.TableTestSummary,
		storage.TrainKey, storage.TestKey, policy)
	if err != nil {
		return fmt.Errorf("normalize failed: %w", err)
	}

	faint := color.New(color.Faint)
	color.Green("✓ Normalized summaries")
	fmt.Printf("  %s\n", faint.Sprint(storage.TableTrainSummary+storage.NormSuffix))
	fmt.Printf("  %s\n", faint.Sprint(storage.TableTestSummary+storage.NormSuffix))
	return nil
}

func init() {
	normalizeCmd.Flags().BoolVar(&normalizeStrict, "strict-range", false, "fail on a degenerate statistic range instead of writing 0")
	rootCmd.AddCommand(normalizeCmd)
}
