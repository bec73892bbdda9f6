// ABOUTME: CLI command showing pipeline table state.
// ABOUTME: Row counts, training bounds, and recent load runs.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/teambias/biometry-challenge/internal/models"
	"github.com/teambias/biometry-challenge/internal/storage"
	"github.com/teambias/biometry-challenge/internal/summary"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline table state",
	Long: `Show row counts for every pipeline table, the training
normalization bounds (when train_summary exists), and the most recent
CSV load runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)

		fmt.Printf("store: %s\n\n", store.Path())

		tables := []string{
			storage.TableQuestions,
			storage.TableTest,
			storage.TableTrain,
			storage.TableTrainSummary,
			storage.TableTestSummary,
			storage.TableTrainSummary + storage.NormSuffix,
			storage.TableTestSummary + storage.NormSuffix,
		}
		for _, table := range tables {
			exists, err := store.TableExists(table)
			if err != nil {
				return fmt.Errorf("failed to check table %s: %w", table, err)
			}
			if !exists {
				fmt.Printf("  %-22s %s\n", table, faint.Sprint("missing"))
				continue
			}
			n, err := store.RowCount(table)
			if err != nil {
				return fmt.Errorf("failed to count %s: %w", table, err)
			}
			fmt.Printf("  %-22s %d rows\n", table, n)
		}

		if exists, err := store.TableExists(storage.TableTrainSummary); err == nil && exists {
			bounds, hasRows, err := summary.TrainingBounds(store, storage.TableTrainSummary, models.StatNames())
			if err != nil {
				return fmt.Errorf("failed to compute bounds: %w", err)
			}
			if hasRows {
				fmt.Println("\nnormalization bounds (from training set):")
				for _, col := range models.StatNames() {
					b := bounds[col]
					degenerate := ""
					if b.Span() == 0 {
						degenerate = color.YellowString("  degenerate")
					}
					fmt.Printf("  %-10s [%g, %g]%s\n", col, b.Min, b.Max, degenerate)
				}
			}
		}

		runs, err := store.ListLoadRuns(5)
		if err != nil {
			return fmt.Errorf("failed to list load runs: %w", err)
		}
		if len(runs) > 0 {
			fmt.Println("\nrecent loads:")
			for _, r := range runs {
				fmt.Printf("  %s %s %-10s %d rows %s\n",
					faint.Sprint(r.ID.String()[:8]),
					faint.Sprint(r.LoadedAt.Format("2006-01-02 15:04")),
					r.Table,
					r.Rows,
					faint.Sprint(r.Source))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
