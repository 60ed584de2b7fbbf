package cars

import (
	"sort"
	"strings"

	"car-price-scraper/scraper/markup"
)

// DefaultBrands is the make list used when no BRANDS override is configured.
var DefaultBrands = []string{
	"Acura", "Alfa_Romeo", "Aston_Martin", "Audi", "Bentley",
	"BMW", "Bugatti", "Buick", "Cadillac", "Chevrolet",
	"Chrysler", "Dodge", "Ferrari", "FIAT", "Fisker",
	"Ford", "Genesis", "GMC", "Honda", "Hyundai",
	"INEOS", "INFINITI", "Jaguar", "Jeep", "Kia",
	"Lamborghini", "Land_Rover", "Lexus", "Lincoln", "Lotus",
	"Lucid", "Maserati", "Mazda", "McLaren", "Mercedes_Benz",
	"MINI", "Mitsubishi", "Nissan", "Polestar", "Porsche",
	"RAM", "Rivian", "Rolls_Royce", "Subaru", "Suzuki",
	"Tesla", "Toyota", "VinFast", "Volkswagen", "Volvo",
}

// DiscoverBrands lists the unique data-brand-name values of the anchors on
// a saved make-index page, sorted.
func DiscoverBrands(html string) ([]string, error) {
	doc, err := markup.Parse(html)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, a := range doc.FindAllByAttr("a", "data-brand-name", markup.Present()) {
		name, _ := a.Attr("data-brand-name")
		if name = strings.TrimSpace(name); name != "" {
			seen[name] = struct{}{}
		}
	}

	brands := make([]string, 0, len(seen))
	for name := range seen {
		brands = append(brands, name)
	}
	sort.Strings(brands)
	return brands, nil
}
