// ABOUTME: Root Cobra command for biometry CLI.
// ABOUTME: Handles config, store lifecycle, and logger setup via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/teambias/biometry-challenge/internal/config"
	"github.com/teambias/biometry-challenge/internal/storage"
)

var (
	dbFlag      string
	verboseFlag bool

	cfg    *config.Config
	store  *storage.DB
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "biometry",
	Short: "Accelerometer biometry aggregation pipeline",
	Long: `Biometry ingests raw accelerometer readings into a local SQLite store,
derives per-group summary statistics, and normalizes them against
training-set bounds for a downstream classifier.

PIPELINE STAGES:

  ingest      Load questions.csv, test.csv, and train.csv into raw tables
  summarize   One summary row per device (train) and per sequence (test)
  normalize   Min-max rescale both summaries using training bounds only
  run         All three stages in order

Each stage rebuilds its destination tables and can be re-run on its own;
a failure mid-pipeline leaves earlier stages' tables committed, so re-run
from the failed stage.

QUICK START:

  $ biometry run --data-dir ./data       # Full pipeline over ./data/*.csv
  $ biometry status                      # Table counts and recent loads
  $ biometry export --set train          # Training summaries as CSV

DERIVED STATISTICS:

  Every statistic is computed over the per-sample magnitude
  d = X*X + Y*Y + Z*Z of a group's readings:

    range     max(d) - min(d)
    min       min(d)
    max       max(d)
    avg       mean(d)
    variance  mean(d*d) - mean(d)*mean(d)

  Normalized tables carry the same columns prefixed with t_, rescaled by
  (value - trainMin) / (trainMax - trainMin). Test sequences outside the
  training range normalize outside [0, 1]; that is expected.

MCP INTEGRATION:

  Run 'biometry mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  The SQLite store lives at ~/.local/share/biometry/biometry.db by
  default; override with --db or the data_dir config setting at
  ~/.config/biometry/config.json.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store setup for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		level := slog.LevelInfo
		if verboseFlag {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dbPath := cfg.DBPath()
		if dbFlag != "" {
			dbPath = config.ExpandPath(dbFlag)
		}
		store, err = storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		logger.Debug("opened store", "path", dbPath)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "path to the SQLite store (default ~/.local/share/biometry/biometry.db)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}
