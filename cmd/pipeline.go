package cmd

import (
	"fmt"

	"car-price-scraper/models"
	"car-price-scraper/scraper/cars"
	"car-price-scraper/services"
	"car-price-scraper/storage"
)

// buildCorpus unions every stored brand document, writes complete.json and
// mirrors it to Postgres when a DSN is configured.
func buildCorpus(store *storage.BrandStore) (models.Corpus, error) {
	extractor := cars.NewExtractor(logger)
	builder := services.NewCorpusBuilder(logger, extractor, services.NewNormalizer(logger))

	corpus, report, err := builder.BuildFromStore(store)
	if err != nil {
		return nil, fmt.Errorf("build corpus: %w", err)
	}
	if len(report.Skipped) > 0 {
		logger.Warn("Skipped documents: %v", report.Skipped)
	}

	out := storage.NewCorpusStore(cfg.CompletePath)
	if err := out.Save(corpus); err != nil {
		return nil, err
	}
	logger.Info("Corpus saved to %s (%d brands, %d listings)", out.Path(), report.Brands, report.Listings)

	if cfg.PostgresDSN != "" {
		if err := mirrorPostgres(corpus); err != nil {
			logger.Error("PostgreSQL mirror failed: %v", err)
		}
	}
	return corpus, nil
}

func mirrorPostgres(corpus models.Corpus) error {
	pg, err := storage.NewPostgresWriter(cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.Write(services.NewTable(corpus).Rows()); err != nil {
		return err
	}
	n, err := pg.Count()
	if err != nil {
		return err
	}
	logger.Info("Corpus mirrored to PostgreSQL (table: car_listings, %d rows)", n)
	return nil
}

func writeAndClose(w storage.ListingWriter, rows []models.Listing) error {
	if err := w.Write(rows); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
