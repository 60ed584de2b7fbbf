package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DocumentKind says which shape a persisted brand document has.
type DocumentKind int

const (
	// KindSnapshot documents hold the raw proxy response HTML.
	KindSnapshot DocumentKind = iota
	// KindRecords documents hold already-normalized listings.
	KindRecords
)

// SnapshotResult mirrors one entry of the proxy's results array.
type SnapshotResult struct {
	Content string `json:"content"`
}

// Snapshot is the raw-HTML form of a brand document: {"results":[{"content": html}]}.
type Snapshot struct {
	Results []SnapshotResult `json:"results"`
}

// BrandDocument is the per-brand persisted unit. It is either a raw snapshot
// or a list of normalized listings; never both.
type BrandDocument struct {
	Slug     string
	Kind     DocumentKind
	Snapshot Snapshot
	Records  []Listing
}

// NewSnapshotDocument wraps page HTML the way the proxy returned it.
func NewSnapshotDocument(slug, html string) BrandDocument {
	return BrandDocument{
		Slug:     slug,
		Kind:     KindSnapshot,
		Snapshot: Snapshot{Results: []SnapshotResult{{Content: html}}},
	}
}

// NewRecordsDocument wraps normalized listings.
func NewRecordsDocument(slug string, records []Listing) BrandDocument {
	return BrandDocument{Slug: slug, Kind: KindRecords, Records: records}
}

// Content returns the first snapshot's HTML. ok is false for records
// documents and for snapshots with an empty results array.
func (d BrandDocument) Content() (html string, ok bool) {
	if d.Kind != KindSnapshot || len(d.Snapshot.Results) == 0 {
		return "", false
	}
	return d.Snapshot.Results[0].Content, true
}

func (d BrandDocument) MarshalJSON() ([]byte, error) {
	if d.Kind == KindRecords {
		if d.Records == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(d.Records)
	}
	return json.Marshal(d.Snapshot)
}

var errUnknownDocument = errors.New("document is neither a snapshot object nor a record list")

// UnmarshalJSON tells the two shapes apart by their top-level JSON type.
// Slug is left untouched; it comes from the file name.
func (d *BrandDocument) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errUnknownDocument
	}
	switch data[0] {
	case '{':
		var s Snapshot
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("snapshot document: %w", err)
		}
		d.Kind, d.Snapshot, d.Records = KindSnapshot, s, nil
	case '[':
		var recs []Listing
		if err := json.Unmarshal(data, &recs); err != nil {
			return fmt.Errorf("records document: %w", err)
		}
		d.Kind, d.Records, d.Snapshot = KindRecords, recs, Snapshot{}
	default:
		return errUnknownDocument
	}
	return nil
}
