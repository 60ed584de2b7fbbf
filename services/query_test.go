package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"car-price-scraper/models"
)

func row(brand string, year int, model string, price float64) models.Listing {
	return models.Listing{Brand: brand, Year: models.ValidYear(year), Model: model, Price: models.ValidPrice(price)}
}

func sampleCorpus() models.Corpus {
	return models.Corpus{
		"Tesla": {
			row("Tesla", 2024, "Model Y", 52490),
			row("Tesla", 2025, "Model 3", 42490),
			{Brand: "Tesla", Year: models.ValidYear(2025), Model: "Cybercab", Price: models.AbsentPrice()},
		},
		"Kia": {
			row("Kia", 2025, "EV6", 42600),
			row("Kia", 2024, "Telluride", 36190),
			{Brand: "Kia", Year: models.UnparsedYear("TBD"), Model: "TBD", Price: models.ValidPrice(30000)},
		},
		"Porsche": {
			row("Porsche", 2025, "911", 122095),
			{Brand: "Porsche", Year: models.ValidYear(2025), Model: "Mission X", Price: models.UnparsedPrice("Call for price")},
		},
	}
}

func allSpec() models.FilterSpec {
	return models.FilterSpec{
		Years:  models.YearRange{Min: 1900, Max: 2100},
		Prices: models.PriceRange{Min: 0, Max: 1e9},
	}
}

func labels(rows []models.Listing) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Brand+"/"+r.Model)
	}
	return out
}

func TestTableSkipsReservedKeys(t *testing.T) {
	c := sampleCorpus()
	c["model"] = []models.Listing{row("model", 2024, "x", 1)}
	c["price"] = nil
	c["year"] = nil

	tbl := NewTable(c)
	if diff := cmp.Diff([]string{"Kia", "Porsche", "Tesla"}, tbl.Brands()); diff != "" {
		t.Errorf("Brands mismatch (-want +got):\n%s", diff)
	}
	if tbl.Len() != 8 {
		t.Errorf("Len: got %d, want 8", tbl.Len())
	}
}

func TestFilterSpecExample(t *testing.T) {
	rows := []models.Listing{row("Tesla", 2024, "Model Y", 52490)}

	spec := models.FilterSpec{
		Years:  models.YearRange{Min: 2020, Max: 2025},
		Prices: models.PriceRange{Min: 0, Max: 100000},
	}
	if got := Filter(rows, spec); len(got) != 1 {
		t.Errorf("Filter with prices [0,100000]: got %d rows, want 1", len(got))
	}

	spec.Prices = models.PriceRange{Min: 60000, Max: 100000}
	if got := Filter(rows, spec); len(got) != 0 {
		t.Errorf("Filter with prices [60000,100000]: got %d rows, want 0", len(got))
	}
}

func TestFilterInclusiveBounds(t *testing.T) {
	rows := []models.Listing{row("Kia", 2024, "EV6", 42600)}
	spec := models.FilterSpec{
		Years:  models.YearRange{Min: 2024, Max: 2024},
		Prices: models.PriceRange{Min: 42600, Max: 42600},
	}
	if got := Filter(rows, spec); len(got) != 1 {
		t.Errorf("inclusive bounds: got %d rows, want 1", len(got))
	}
}

func TestFilterExcludesNonNumericPrices(t *testing.T) {
	got := Filter(NewTable(sampleCorpus()).Rows(), allSpec())
	for _, r := range got {
		if !r.Price.Valid() {
			t.Errorf("row %s/%s with %s price survived the filter", r.Brand, r.Model, r.Price.State)
		}
		if !r.Year.Valid() {
			t.Errorf("row %s/%s with unparsed year survived the filter", r.Brand, r.Model)
		}
	}
	if len(got) != 5 {
		t.Errorf("Filter: got %d rows, want 5", len(got))
	}
}

func TestFilterBrandSelection(t *testing.T) {
	rows := NewTable(sampleCorpus()).Rows()

	spec := allSpec()
	spec.Brands = []string{"kia", "Porsche"}
	got := Filter(rows, spec)
	want := []string{"Kia/EV6", "Kia/Telluride", "Porsche/911"}
	if diff := cmp.Diff(want, labels(got)); diff != "" {
		t.Errorf("brand filter mismatch (-want +got):\n%s", diff)
	}

	spec.Brands = nil
	if got := Filter(rows, spec); len(got) != 5 {
		t.Errorf("empty selection: got %d rows, want all 5 priced rows", len(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	rows := NewTable(sampleCorpus()).Rows()
	spec := allSpec()
	spec.Prices = models.PriceRange{Min: 40000, Max: 60000}

	once := Filter(rows, spec)
	twice := Filter(once, spec)
	if diff := cmp.Diff(labels(once), labels(twice)); diff != "" {
		t.Errorf("Filter not idempotent (-once +twice):\n%s", diff)
	}
}

func TestSortTieBreaks(t *testing.T) {
	rows := []models.Listing{
		row("Tesla", 2025, "B", 50000),
		row("Kia", 2025, "Z", 50000),
		row("Kia", 2024, "Z", 50000),
		row("Kia", 2024, "A", 50000),
		row("Audi", 2025, "Q5", 60000),
	}

	asc := Sort(rows, models.SortAscending)
	wantAsc := []string{"Kia/A", "Kia/Z", "Kia/Z", "Tesla/B", "Audi/Q5"}
	if diff := cmp.Diff(wantAsc, labels(asc)); diff != "" {
		t.Errorf("ascending mismatch (-want +got):\n%s", diff)
	}
	if asc[1].Year.Value != 2024 || asc[2].Year.Value != 2025 {
		t.Errorf("year tie-break: got %d then %d", asc[1].Year.Value, asc[2].Year.Value)
	}

	desc := Sort(rows, models.SortDescending)
	wantDesc := []string{"Audi/Q5", "Kia/A", "Kia/Z", "Kia/Z", "Tesla/B"}
	if diff := cmp.Diff(wantDesc, labels(desc)); diff != "" {
		t.Errorf("descending mismatch (-want +got):\n%s", diff)
	}
}

func TestSortIdempotentAndPure(t *testing.T) {
	rows := NewTable(sampleCorpus()).Rows()
	before := labels(rows)

	for _, dir := range []models.SortDirection{models.SortAscending, models.SortDescending} {
		once := Sort(rows, dir)
		twice := Sort(once, dir)
		if diff := cmp.Diff(labels(once), labels(twice)); diff != "" {
			t.Errorf("Sort(%s) not idempotent:\n%s", dir, diff)
		}
	}
	if diff := cmp.Diff(before, labels(rows)); diff != "" {
		t.Errorf("Sort mutated its input:\n%s", diff)
	}
}

func TestSortNonNumericPricesLast(t *testing.T) {
	rows := NewTable(sampleCorpus()).Rows()
	sorted := Sort(rows, models.SortDescending)
	seenNonNumeric := false
	for _, r := range sorted {
		if !r.Price.Valid() {
			seenNonNumeric = true
			continue
		}
		if seenNonNumeric {
			t.Fatalf("priced row %s/%s sorted after a non-numeric price", r.Brand, r.Model)
		}
	}
}

func TestAggregateSpecExample(t *testing.T) {
	stats := Aggregate([]models.Listing{row("Tesla", 2024, "A", 50000), row("Tesla", 2025, "B", 70000)})
	want := []models.BrandStats{{Brand: "Tesla", Count: 2, Min: 50000, Max: 70000, Mean: 60000}}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("Aggregate mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateCountsOnlyNumericPrices(t *testing.T) {
	stats := Aggregate(NewTable(sampleCorpus()).Rows())
	byBrand := make(map[string]models.BrandStats)
	for _, s := range stats {
		byBrand[s.Brand] = s
	}

	if got := byBrand["Tesla"]; got.Count != 2 || got.Mean != 47490 {
		t.Errorf("Tesla stats: got %+v, want count 2 mean 47490", got)
	}
	if got := byBrand["Porsche"]; got.Count != 1 || got.Min != 122095 || got.Max != 122095 {
		t.Errorf("Porsche stats: got %+v", got)
	}
	if got := byBrand["Kia"]; got.Count != 3 {
		t.Errorf("Kia count: got %d, want 3", got.Count)
	}
}

func TestAggregateOrdering(t *testing.T) {
	rows := Filter(NewTable(sampleCorpus()).Rows(), allSpec())
	stats := Aggregate(rows)

	var names []string
	for _, s := range stats {
		names = append(names, s.Brand)
	}
	if diff := cmp.Diff([]string{"Kia", "Porsche", "Tesla"}, names); diff != "" {
		t.Errorf("tabular order mismatch:\n%s", diff)
	}

	names = names[:0]
	for _, s := range ByMeanDesc(stats) {
		names = append(names, s.Brand)
	}
	if diff := cmp.Diff([]string{"Porsche", "Tesla", "Kia"}, names); diff != "" {
		t.Errorf("chart order mismatch:\n%s", diff)
	}
}

func TestBoxesQuartiles(t *testing.T) {
	rows := []models.Listing{
		row("Ford", 2025, "A", 10),
		row("Ford", 2025, "B", 40),
		row("Ford", 2025, "C", 20),
		row("Ford", 2025, "D", 30),
	}
	got := Boxes(rows)
	want := []models.BoxStats{{Brand: "Ford", Count: 4, Min: 10, Q1: 17.5, Median: 25, Q3: 32.5, Max: 40}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Boxes mismatch (-want +got):\n%s", diff)
	}
}

func TestBounds(t *testing.T) {
	tbl := NewTable(sampleCorpus())

	years, ok := tbl.YearBounds()
	if !ok || years != (models.YearRange{Min: 2024, Max: 2025}) {
		t.Errorf("YearBounds: got %+v %v", years, ok)
	}
	prices, ok := tbl.PriceBounds()
	if !ok || prices != (models.PriceRange{Min: 30000, Max: 122095}) {
		t.Errorf("PriceBounds: got %+v %v", prices, ok)
	}

	if _, ok := NewTable(models.Corpus{}).PriceBounds(); ok {
		t.Error("PriceBounds on empty table should report ok=false")
	}
}

func TestQueryView(t *testing.T) {
	tbl := NewTable(sampleCorpus())
	spec := tbl.DefaultSpec()
	spec.Sort = models.SortDescending

	v := tbl.Query(spec)
	if v.Empty() {
		t.Fatal("default spec should match rows")
	}
	if v.Rows[0].Model != "911" {
		t.Errorf("first row: got %q, want 911", v.Rows[0].Model)
	}
	if len(v.Stats) != 3 || len(v.ByMean) != 3 || len(v.Boxes) != 3 {
		t.Errorf("view sizes: stats %d, by mean %d, boxes %d", len(v.Stats), len(v.ByMean), len(v.Boxes))
	}

	spec.Prices = models.PriceRange{Min: 1, Max: 2}
	if v := tbl.Query(spec); !v.Empty() {
		t.Errorf("impossible price range returned %d rows", len(v.Rows))
	}
}
