// ABOUTME: CLI command for the ingestion stage.
// ABOUTME: Bulk-loads the three raw CSVs and builds their grouping indexes.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/teambias/biometry-challenge/internal/ingest"
)

var (
	ingestDataDir   string
	ingestQuestions string
	ingestTest      string
	ingestTrain     string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load raw CSVs into the store",
	Long: `Load questions.csv, test.csv, and train.csv into the raw tables.

Each table is dropped and rebuilt, every field is parsed as a number
(the header row is discarded), and the grouping indexes are recreated:

  questions   QuestionId, SequenceId, QuizDevice   indexed on SequenceId, QuizDevice
  test        T, X, Y, Z, SequenceId               indexed on SequenceId
  train       T, X, Y, Z, Device                   indexed on Device

A bad row fails its whole file and nothing from that file is committed;
tables loaded before the failure stay in place.

EXAMPLES:

  biometry ingest --data-dir ./data
  biometry ingest --train ./train.csv --test ./test.csv --questions ./q.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIngest()
	},
}

func ingestSources() ingest.Sources {
	dir := ingestDataDir
	if dir == "" {
		dir = cfg.GetCSVDir()
	}
	src := ingest.DefaultSources(dir)
	if ingestQuestions != "" {
		src.Questions = ingestQuestions
	}
	if ingestTest != "" {
		src.Test = ingestTest
	}
	if ingestTrain != "" {
		src.Train = ingestTrain
	}
	return src
}

func runIngest() error {
	loader := ingest.NewLoader(store, logger)
	results, err := loader.Ingest(ingestSources())
	for _, r := range results {
		color.Green("✓ Loaded %s", r.Table)
		fmt.Printf("  %s %d rows\n", color.New(color.Faint).Sprint(r.Source), r.Rows)
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	return nil
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDataDir, "data-dir", "", "directory holding questions.csv, test.csv, and train.csv")
	ingestCmd.Flags().StringVar(&ingestQuestions, "questions", "", "path to questions.csv (overrides --data-dir)")
	ingestCmd.Flags().StringVar(&ingestTest, "test", "", "path to test.csv (overrides --data-dir)")
	ingestCmd.Flags().StringVar(&ingestTrain, "train", "", "path to train.csv (overrides --data-dir)")
	rootCmd.AddCommand(ingestCmd)
}
