package storage

import "car-price-scraper/models"

// SnapshotWriter persists the raw page HTML fetched for a brand.
type SnapshotWriter interface {
	SaveSnapshot(slug, html string) error
}

// BrandDocumentReader enumerates and loads persisted brand documents.
type BrandDocumentReader interface {
	List() ([]string, error)
	Load(slug string) (models.BrandDocument, error)
}

// CorpusReader loads the consolidated dataset.
type CorpusReader interface {
	Load() (models.Corpus, error)
}

// ListingWriter is the interface any listing mirror must satisfy.
type ListingWriter interface {
	Write(listings []models.Listing) error
	Close() error
}
