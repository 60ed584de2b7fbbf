package services

import (
	"math"
	"sort"
	"strings"

	"car-price-scraper/models"
)

// Table is the in-memory tabular form of a corpus: one row per listing.
// It is read-only after construction and safe for concurrent queries.
type Table struct {
	rows []models.Listing
}

// NewTable flattens a corpus, skipping reserved keys. Rows are ordered by
// brand, then by their order within the brand's page.
func NewTable(corpus models.Corpus) *Table {
	rows := make([]models.Listing, 0, corpus.Len())
	for _, brand := range corpus.Brands() {
		for _, l := range corpus[brand] {
			l.Brand = brand
			rows = append(rows, l)
		}
	}
	return &Table{rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of every row.
func (t *Table) Rows() []models.Listing {
	out := make([]models.Listing, len(t.rows))
	copy(out, t.rows)
	return out
}

// Brands returns the distinct brands, sorted.
func (t *Table) Brands() []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, r := range t.rows {
		if _, ok := seen[r.Brand]; !ok {
			seen[r.Brand] = struct{}{}
			brands = append(brands, r.Brand)
		}
	}
	sort.Strings(brands)
	return brands
}

// YearBounds returns the smallest and largest valid year. ok is false when
// no row has a valid year.
func (t *Table) YearBounds() (r models.YearRange, ok bool) {
	for _, row := range t.rows {
		if !row.Year.Valid() {
			continue
		}
		if !ok {
			r = models.YearRange{Min: row.Year.Value, Max: row.Year.Value}
			ok = true
			continue
		}
		r.Min = min(r.Min, row.Year.Value)
		r.Max = max(r.Max, row.Year.Value)
	}
	return r, ok
}

// PriceBounds returns the smallest and largest valid price. ok is false
// when no row has a numeric price.
func (t *Table) PriceBounds() (r models.PriceRange, ok bool) {
	for _, row := range t.rows {
		if !row.Price.Valid() {
			continue
		}
		if !ok {
			r = models.PriceRange{Min: row.Price.Value, Max: row.Price.Value}
			ok = true
			continue
		}
		r.Min = math.Min(r.Min, row.Price.Value)
		r.Max = math.Max(r.Max, row.Price.Value)
	}
	return r, ok
}

// DefaultSpec selects every brand and the full year and price range of the data.
func (t *Table) DefaultSpec() models.FilterSpec {
	years, _ := t.YearBounds()
	prices, _ := t.PriceBounds()
	return models.FilterSpec{Years: years, Prices: prices, Sort: models.SortAscending}
}

// Query filters, sorts and aggregates the table for one spec.
func (t *Table) Query(spec models.FilterSpec) models.View {
	rows := Sort(Filter(t.rows, spec), spec.Sort)
	stats := Aggregate(rows)
	return models.View{
		Spec:   spec,
		Rows:   rows,
		Stats:  stats,
		ByMean: ByMeanDesc(stats),
		Boxes:  Boxes(rows),
	}
}

// Filter keeps rows whose brand is selected (all brands when the selection
// is empty), whose year lies in spec.Years and whose price lies in
// spec.Prices. Rows with an unparsed year or an unparsed/absent price can
// never satisfy a numeric range and are always excluded.
func Filter(rows []models.Listing, spec models.FilterSpec) []models.Listing {
	var selected map[string]struct{}
	if len(spec.Brands) > 0 {
		selected = make(map[string]struct{}, len(spec.Brands))
		for _, b := range spec.Brands {
			selected[models.DisplayName(b)] = struct{}{}
		}
	}

	out := make([]models.Listing, 0, len(rows))
	for _, r := range rows {
		if selected != nil {
			if _, ok := selected[models.DisplayName(r.Brand)]; !ok {
				continue
			}
		}
		if !r.Year.Valid() || !spec.Years.Contains(r.Year.Value) {
			continue
		}
		if !r.Price.Valid() || !spec.Prices.Contains(r.Price.Value) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sort returns a sorted copy of rows: price in the given direction, then
// brand, year and model ascending regardless of direction. Rows without a
// numeric price come after all priced rows.
func Sort(rows []models.Listing, dir models.SortDirection) []models.Listing {
	out := make([]models.Listing, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j], dir)
	})
	return out
}

func less(a, b models.Listing, dir models.SortDirection) bool {
	if c := comparePrice(a.Price, b.Price, dir); c != 0 {
		return c < 0
	}
	if a.Brand != b.Brand {
		return a.Brand < b.Brand
	}
	if c := compareYear(a.Year, b.Year); c != 0 {
		return c < 0
	}
	return a.Model < b.Model
}

func comparePrice(a, b models.Price, dir models.SortDirection) int {
	switch {
	case a.Valid() && b.Valid():
		c := cmpFloat(a.Value, b.Value)
		if dir == models.SortDescending {
			c = -c
		}
		return c
	case a.Valid():
		return -1
	case b.Valid():
		return 1
	}
	return strings.Compare(a.Raw, b.Raw)
}

func compareYear(a, b models.Year) int {
	switch {
	case a.Valid() && b.Valid():
		return a.Value - b.Value
	case a.Valid():
		return -1
	case b.Valid():
		return 1
	}
	return strings.Compare(a.Raw, b.Raw)
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// groupPrices collects the numeric prices of each brand.
func groupPrices(rows []models.Listing) (map[string][]float64, []string) {
	groups := make(map[string][]float64)
	var brands []string
	for _, r := range rows {
		if !r.Price.Valid() {
			continue
		}
		if _, ok := groups[r.Brand]; !ok {
			brands = append(brands, r.Brand)
		}
		groups[r.Brand] = append(groups[r.Brand], r.Price.Value)
	}
	sort.Strings(brands)
	return groups, brands
}

// Aggregate computes count, min, max and mean price per brand, ordered
// alphabetically. Only numeric prices count; a brand with none is omitted.
func Aggregate(rows []models.Listing) []models.BrandStats {
	groups, brands := groupPrices(rows)
	stats := make([]models.BrandStats, 0, len(brands))
	for _, brand := range brands {
		prices := groups[brand]
		s := models.BrandStats{Brand: brand, Count: len(prices), Min: prices[0], Max: prices[0]}
		var total float64
		for _, p := range prices {
			total += p
			s.Min = math.Min(s.Min, p)
			s.Max = math.Max(s.Max, p)
		}
		s.Mean = total / float64(len(prices))
		stats = append(stats, s)
	}
	return stats
}

// ByMeanDesc returns stats ordered by descending mean, ties by brand.
func ByMeanDesc(stats []models.BrandStats) []models.BrandStats {
	out := make([]models.BrandStats, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Brand < out[j].Brand
	})
	return out
}

// Boxes computes the per-brand five-number summary of numeric prices,
// ordered alphabetically. Quartiles use linear interpolation between
// closest ranks.
func Boxes(rows []models.Listing) []models.BoxStats {
	groups, brands := groupPrices(rows)
	boxes := make([]models.BoxStats, 0, len(brands))
	for _, brand := range brands {
		prices := append([]float64(nil), groups[brand]...)
		sort.Float64s(prices)
		boxes = append(boxes, models.BoxStats{
			Brand:  brand,
			Count:  len(prices),
			Min:    prices[0],
			Q1:     quantile(prices, 0.25),
			Median: quantile(prices, 0.5),
			Q3:     quantile(prices, 0.75),
			Max:    prices[len(prices)-1],
		})
	}
	return boxes
}

// quantile expects sorted, non-empty input.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
