package storage

import (
	"fmt"

	"car-price-scraper/models"
)

// CorpusStore persists the consolidated dataset as a single JSON document.
type CorpusStore struct {
	path string
}

// NewCorpusStore returns a store for the document at path.
func NewCorpusStore(path string) *CorpusStore {
	return &CorpusStore{path: path}
}

func (s *CorpusStore) Path() string { return s.path }

// Save replaces the previous document. Keys are written in sorted order.
func (s *CorpusStore) Save(corpus models.Corpus) error {
	if corpus == nil {
		corpus = models.Corpus{}
	}
	if err := writeJSONAtomic(s.path, corpus); err != nil {
		return fmt.Errorf("corpus store: save: %w", err)
	}
	return nil
}

// Load reads the document, dropping reserved keys. Absent or unreadable
// documents wrap ErrDataUnavailable.
func (s *CorpusStore) Load() (models.Corpus, error) {
	var corpus models.Corpus
	if err := readJSON(s.path, &corpus); err != nil {
		return nil, fmt.Errorf("corpus store: %w", err)
	}
	return corpus, nil
}
