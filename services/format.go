package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"car-price-scraper/models"
)

// FormatCurrency renders an amount for display, e.g. 52490 -> "$52,490.00".
// Stored values are never formatted.
func FormatCurrency(v float64) string {
	return message.NewPrinter(language.English).Sprintf("$%.2f", v)
}

// FormatPrice renders a listing price for display. Unparsed prices show
// their original text; absent ones show "N/A".
func FormatPrice(p models.Price) string {
	switch p.State {
	case models.Valid:
		return FormatCurrency(p.Value)
	case models.Unparsed:
		return p.Raw
	}
	return "N/A"
}
