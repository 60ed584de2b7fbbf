package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"car-price-scraper/scraper/cars"
	"car-price-scraper/services"
)

var brandsCmd = &cobra.Command{
	Use:   "brands <make-index.html>",
	Short: "Lists the brand names found on a saved make-index page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		html, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("brands: %w", err)
		}
		brands, err := cars.DiscoverBrands(string(html))
		if err != nil {
			return err
		}
		for _, b := range brands {
			fmt.Fprintln(cmd.OutOrStdout(), b)
		}
		logger.Info("%d brands found", len(brands))
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys [file.json]",
	Short: "Prints every distinct key in a JSON document (complete.json by default).",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.CompletePath
		if len(args) == 1 {
			path = args[0]
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("keys: %w", err)
		}
		keys, err := services.CollectKeys(data)
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(brandsCmd, keysCmd)
}
