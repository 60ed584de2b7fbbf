package models

// SortDirection orders listings by price.
type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

func (d SortDirection) String() string {
	if d == SortDescending {
		return "desc"
	}
	return "asc"
}

// ParseSortDirection accepts "asc"/"desc" (and "ascending"/"descending");
// anything else is ascending.
func ParseSortDirection(s string) SortDirection {
	switch s {
	case "desc", "descending", "DESC":
		return SortDescending
	}
	return SortAscending
}

// YearRange is an inclusive model year bound.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r YearRange) Contains(y int) bool { return y >= r.Min && y <= r.Max }

// PriceRange is an inclusive price bound.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r PriceRange) Contains(p float64) bool { return p >= r.Min && p <= r.Max }

// FilterSpec is one dashboard interaction's set of constraints. An empty
// Brands selection means every brand.
type FilterSpec struct {
	Brands []string      `json:"brands"`
	Years  YearRange     `json:"years"`
	Prices PriceRange    `json:"prices"`
	Sort   SortDirection `json:"-"`
}

// BrandStats summarizes the numeric prices of one brand.
type BrandStats struct {
	Brand string  `json:"brand"`
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// BoxStats is the five-number summary drawn by the price box plot.
type BoxStats struct {
	Brand  string  `json:"brand"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// View is everything the dashboard renders for one FilterSpec.
type View struct {
	Spec   FilterSpec   `json:"spec"`
	Rows   []Listing    `json:"-"`
	Stats  []BrandStats `json:"stats"`
	ByMean []BrandStats `json:"by_mean"`
	Boxes  []BoxStats   `json:"boxes"`
}

// Empty reports whether no listing satisfied the filter.
func (v View) Empty() bool { return len(v.Rows) == 0 }
