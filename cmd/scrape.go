package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"car-price-scraper/scraper/cars"
	"car-price-scraper/storage"
)

var flagBrands []string

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--brands Tesla,Kia]",
	Short: "Fetches every brand lineup through the proxy, stores snapshots and rebuilds the corpus.",
	RunE: func(cmd *cobra.Command, args []string) error {
		brands := flagBrands
		if len(brands) == 0 {
			brands = cfg.Brands
		}
		if len(brands) == 0 {
			brands = cars.DefaultBrands
		}

		store, err := storage.NewBrandStore(cfg.DataDir)
		if err != nil {
			return err
		}
		fetcher, err := cars.NewFetcher(cfg, logger, cars.NewExtractor(logger), store)
		if err != nil {
			return err
		}

		logger.Info("=== Scraping %d brands (concurrency %d, rate %dms) ===",
			len(brands), cfg.MaxConcurrency, cfg.RateLimitMs)
		outcomes := fetcher.FetchAll(cmd.Context(), brands)

		var failed []string
		extracted := 0
		for slug, out := range outcomes {
			if !out.OK() {
				failed = append(failed, slug)
				continue
			}
			extracted += len(out.Result.Listings)
		}
		sort.Strings(failed)
		logger.Info("Fetched %d/%d brands, %d models extracted", len(outcomes)-len(failed), len(outcomes), extracted)
		if len(failed) > 0 {
			logger.Warn("Failed brands: %v", failed)
		}

		corpus, err := buildCorpus(store)
		if err != nil {
			return err
		}
		if corpus.Len() == 0 {
			return fmt.Errorf("scrape: no listings available after %d fetches", len(outcomes))
		}
		return nil
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuilds complete.json from the stored per-brand documents without fetching.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.NewBrandStore(cfg.DataDir)
		if err != nil {
			return err
		}
		_, err = buildCorpus(store)
		return err
	},
}

func init() {
	scrapeCmd.Flags().StringSliceVar(&flagBrands, "brands", nil, "brands to fetch (overrides BRANDS)")
	rootCmd.AddCommand(scrapeCmd, buildCmd)
}
