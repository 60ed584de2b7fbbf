package services

import (
	"sort"

	"car-price-scraper/models"
	"car-price-scraper/storage"
	"car-price-scraper/utils"
)

// MarkupExtractor pulls raw triples out of a brand page.
type MarkupExtractor interface {
	Extract(brand, html string) (*models.ExtractResult, error)
}

// BuildReport summarizes one corpus build.
type BuildReport struct {
	Brands   int
	Listings int
	Misses   []models.StructuralMiss
	Skipped  []string
}

// CorpusBuilder unions per-brand documents into the consolidated corpus.
type CorpusBuilder struct {
	logger     *utils.Logger
	extractor  MarkupExtractor
	normalizer *Normalizer
}

// NewCorpusBuilder creates a CorpusBuilder.
func NewCorpusBuilder(logger *utils.Logger, extractor MarkupExtractor, normalizer *Normalizer) *CorpusBuilder {
	return &CorpusBuilder{logger: logger, extractor: extractor, normalizer: normalizer}
}

// Build turns documents into a corpus keyed by brand display name.
// Snapshot documents are extracted and normalized here; record documents are
// used as stored. Documents are processed in slug order so identical input
// yields an identical corpus.
func (b *CorpusBuilder) Build(docs []models.BrandDocument) (models.Corpus, *BuildReport) {
	sorted := make([]models.BrandDocument, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Slug < sorted[j].Slug })

	corpus := make(models.Corpus)
	report := &BuildReport{}

	for _, doc := range sorted {
		if models.IsReservedKey(doc.Slug) {
			b.logger.Debug("[corpus] Ignoring reserved key %q", doc.Slug)
			continue
		}
		name := models.DisplayName(doc.Slug)

		var listings []models.Listing
		switch doc.Kind {
		case models.KindRecords:
			listings = make([]models.Listing, 0, len(doc.Records))
			for _, r := range doc.Records {
				r.Brand = name
				listings = append(listings, r)
			}
		default:
			html, ok := doc.Content()
			if !ok {
				b.logger.Warn("[corpus] %s: snapshot has no results, skipping", doc.Slug)
				report.Skipped = append(report.Skipped, doc.Slug)
				continue
			}
			result, err := b.extractor.Extract(doc.Slug, html)
			if err != nil {
				b.logger.Warn("[corpus] %s: %v, skipping", doc.Slug, err)
				report.Skipped = append(report.Skipped, doc.Slug)
				continue
			}
			report.Misses = append(report.Misses, result.Misses...)
			listings = b.normalizer.Normalize(doc.Slug, result.Listings)
		}

		if len(listings) == 0 {
			b.logger.Warn("[corpus] %s: no listings extracted", name)
			continue
		}
		corpus[name] = append(corpus[name], listings...)
		report.Listings += len(listings)
	}

	report.Brands = len(corpus.Brands())
	b.logger.Info("[corpus] Built corpus: %d brands, %d listings, %d skipped cards, %d skipped documents",
		report.Brands, report.Listings, len(report.Misses), len(report.Skipped))
	return corpus, report
}

// BuildFromStore loads every stored brand document and builds the corpus.
// Documents that fail to load are skipped with a warning.
func (b *CorpusBuilder) BuildFromStore(store storage.BrandDocumentReader) (models.Corpus, *BuildReport, error) {
	slugs, err := store.List()
	if err != nil {
		return nil, nil, err
	}

	docs := make([]models.BrandDocument, 0, len(slugs))
	var unreadable []string
	for _, slug := range slugs {
		doc, err := store.Load(slug)
		if err != nil {
			b.logger.Warn("[corpus] %v", err)
			unreadable = append(unreadable, slug)
			continue
		}
		docs = append(docs, doc)
	}

	corpus, report := b.Build(docs)
	report.Skipped = append(unreadable, report.Skipped...)
	return corpus, report, nil
}
