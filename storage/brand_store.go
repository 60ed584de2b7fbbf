package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"car-price-scraper/models"
)

// BrandStore keeps one JSON document per brand at <dir>/<slug>.json.
type BrandStore struct {
	dir string
}

// NewBrandStore returns a store rooted at dir, creating the directory.
func NewBrandStore(dir string) (*BrandStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("brand store: create dir %q: %w", dir, err)
	}
	return &BrandStore{dir: dir}, nil
}

// Path returns the file a brand's document lives in.
func (s *BrandStore) Path(slug string) string {
	return filepath.Join(s.dir, slug+".json")
}

// SaveSnapshot replaces the brand's document with the raw page HTML.
func (s *BrandStore) SaveSnapshot(slug, html string) error {
	return s.save(models.NewSnapshotDocument(slug, html))
}

// SaveRecords replaces the brand's document with normalized listings.
func (s *BrandStore) SaveRecords(slug string, records []models.Listing) error {
	return s.save(models.NewRecordsDocument(slug, records))
}

func (s *BrandStore) save(doc models.BrandDocument) error {
	if err := writeJSONAtomic(s.Path(doc.Slug), doc); err != nil {
		return fmt.Errorf("brand store: save %s: %w", doc.Slug, err)
	}
	return nil
}

// Load reads one brand document. Absent or corrupt files wrap ErrDataUnavailable.
func (s *BrandStore) Load(slug string) (models.BrandDocument, error) {
	var doc models.BrandDocument
	if err := readJSON(s.Path(slug), &doc); err != nil {
		return models.BrandDocument{}, fmt.Errorf("brand store: load %s: %w", slug, err)
	}
	doc.Slug = slug
	return doc, nil
}

// List returns the slugs of every stored document, sorted.
func (s *BrandStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("brand store: list %q: %w", s.dir, err)
	}
	var slugs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(slugs)
	return slugs, nil
}
