package models

import "fmt"

// PriceNotFound is the price text recorded when a card carries no price label.
const PriceNotFound = "Price not found"

// RawListing holds the unprocessed triple pulled from one model card.
// Nothing has been coerced yet; YearText and PriceText are exactly what the page showed.
type RawListing struct {
	YearText  string
	Model     string
	PriceText string
}

// Listing is one normalized vehicle trim entry. Brand is carried by the
// enclosing corpus key on disk, so it is not part of the JSON form.
type Listing struct {
	Brand string `json:"-"`
	Year  Year   `json:"year"`
	Model string `json:"model"`
	Price Price  `json:"price"`
}

// HasPrice reports whether the listing carries a numeric price.
func (l Listing) HasPrice() bool { return l.Price.Valid() }

// Anchor names a markup node the extractor requires inside a card.
type Anchor string

const (
	AnchorModelIdentity Anchor = "model-identity"
	AnchorCardLink      Anchor = "card-link"
	AnchorNameLabel     Anchor = "name-label"
)

// StructuralMiss records a card that was skipped because a required anchor was absent.
type StructuralMiss struct {
	Brand  string
	Card   int
	Anchor Anchor
}

func (m StructuralMiss) String() string {
	return fmt.Sprintf("brand %s card #%d: missing %s", m.Brand, m.Card, m.Anchor)
}

// ExtractResult is what the markup extractor yields for one brand page.
type ExtractResult struct {
	Listings []RawListing
	Misses   []StructuralMiss
}

// FetchOutcome is the per-brand result of one fetch. Exactly one of Err or
// Result is meaningful.
type FetchOutcome struct {
	Brand  string
	Slug   string
	URL    string
	Result *ExtractResult
	Err    error
}

// OK reports whether the fetch succeeded.
func (o *FetchOutcome) OK() bool { return o != nil && o.Err == nil }
