package cmd

import (
	"github.com/spf13/cobra"

	"car-price-scraper/models"
	"car-price-scraper/services"
	"car-price-scraper/storage"
)

// filterFlags mirrors the dashboard query parameters on the command line.
type filterFlags struct {
	brands             []string
	yearMin, yearMax   int
	priceMin, priceMax float64
	sort               string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.brands, "brand", nil, "brands to include (default all)")
	fs.IntVar(&f.yearMin, "year-min", 0, "minimum model year (default data minimum)")
	fs.IntVar(&f.yearMax, "year-max", 0, "maximum model year (default data maximum)")
	fs.Float64Var(&f.priceMin, "price-min", 0, "minimum price (default data minimum)")
	fs.Float64Var(&f.priceMax, "price-max", 0, "maximum price (default data maximum)")
	fs.StringVar(&f.sort, "sort", "asc", "price sort direction: asc or desc")
}

// spec overlays the flags the user actually set on the table defaults.
func (f *filterFlags) spec(cmd *cobra.Command, table *services.Table) models.FilterSpec {
	spec := table.DefaultSpec()
	spec.Brands = f.brands
	changed := cmd.Flags().Changed
	if changed("year-min") {
		spec.Years.Min = f.yearMin
	}
	if changed("year-max") {
		spec.Years.Max = f.yearMax
	}
	if changed("price-min") {
		spec.Prices.Min = f.priceMin
	}
	if changed("price-max") {
		spec.Prices.Max = f.priceMax
	}
	spec.Sort = models.ParseSortDirection(f.sort)
	return spec
}

// loadTable reads complete.json into a query table.
func loadTable() (*services.Table, error) {
	corpus, err := storage.NewCorpusStore(cfg.CompletePath).Load()
	if err != nil {
		return nil, err
	}
	return services.NewTable(corpus), nil
}
