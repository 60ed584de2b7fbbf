// Package cmd is the command-line surface of the scraper and dashboard.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"car-price-scraper/config"
	"car-price-scraper/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger

	flagDataDir  string
	flagComplete string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "car-price-scraper",
	Short:         "Scrapes new-car lineup prices per brand and serves a price dashboard.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}
		if flagComplete != "" {
			cfg.CompletePath = flagComplete
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		logger = utils.NewLogger(cfg.LogLevel)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory of per-brand documents (overrides DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&flagComplete, "complete", "", "consolidated corpus path (overrides COMPLETE_PATH)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
}

// ExecuteContext runs the command tree and exits non-zero on error.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger != nil {
			logger.Error("%v", err)
			logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
