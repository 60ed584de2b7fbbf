package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"car-price-scraper/services"
	"car-price-scraper/storage"
)

var (
	reportFilter filterFlags
	reportLimit  int

	exportFilter filterFlags
	exportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report [filters]",
	Short: "Prints brand price statistics and filtered listings as terminal tables.",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		services.NewReportPrinter(os.Stdout, reportLimit).Print(table.Query(reportFilter.spec(cmd, table)))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [filters] [--out listings.csv]",
	Short: "Writes the filtered, sorted listings to CSV.",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}
		view := table.Query(exportFilter.spec(cmd, table))

		out := exportOut
		if out == "" {
			out = cfg.CSVOutputPath
		}
		w, err := storage.NewCSVWriter(out)
		if err != nil {
			return err
		}
		if err := writeAndClose(w, view.Rows); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		logger.Info("Exported %d listings to %s", len(view.Rows), out)
		return nil
	},
}

func init() {
	reportFilter.register(reportCmd)
	reportCmd.Flags().IntVar(&reportLimit, "limit", 25, "listings to print (0 for all)")

	exportFilter.register(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "CSV path (overrides CSV_OUTPUT_PATH)")

	rootCmd.AddCommand(reportCmd, exportCmd)
}
