package services

import (
	"strings"
	"unicode"

	"car-price-scraper/models"
	"car-price-scraper/utils"
)

// Normalizer turns raw card triples into typed listings. It never drops a
// record; fields that fail coercion keep their text and are tagged.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize coerces every raw listing for brand. The returned slice has the
// same length and order as raw.
func (n *Normalizer) Normalize(brand string, raw []models.RawListing) []models.Listing {
	display := models.DisplayName(brand)
	result := make([]models.Listing, 0, len(raw))

	var badYears, badPrices int
	for _, r := range raw {
		model := normaliseText(r.Model)
		year := models.ParseYear(r.YearText)
		if !year.Valid() {
			badYears++
			n.logger.Warn("[normalizer] Could not convert year %q to integer for %s %q, keeping as text",
				r.YearText, display, model)
		}

		price := models.ParsePrice(r.PriceText)
		if price.State == models.Unparsed {
			badPrices++
			n.logger.Warn("[normalizer] Could not convert price %q to a number for %s %q, keeping as text",
				r.PriceText, display, model)
		}

		result = append(result, models.Listing{
			Brand: display,
			Year:  year,
			Model: model,
			Price: price,
		})
	}

	n.logger.Debug("[normalizer] %s: %d listings (%d unparsed years, %d unparsed prices)",
		display, len(result), badYears, badPrices)
	return result
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}
