package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"car-price-scraper/models"
)

// parseFilterSpec reads brand, year_min, year_max, price_min, price_max and
// sort from q. Missing bounds fall back to def. Brands may repeat or be
// comma separated.
func parseFilterSpec(q url.Values, def models.FilterSpec) (models.FilterSpec, error) {
	spec := def
	spec.Brands = nil
	for _, v := range q["brand"] {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				spec.Brands = append(spec.Brands, b)
			}
		}
	}

	var err error
	if spec.Years.Min, err = intParam(q, "year_min", def.Years.Min); err != nil {
		return spec, err
	}
	if spec.Years.Max, err = intParam(q, "year_max", def.Years.Max); err != nil {
		return spec, err
	}
	if spec.Prices.Min, err = floatParam(q, "price_min", def.Prices.Min); err != nil {
		return spec, err
	}
	if spec.Prices.Max, err = floatParam(q, "price_max", def.Prices.Max); err != nil {
		return spec, err
	}

	if v := q.Get("sort"); v != "" {
		spec.Sort = models.ParseSortDirection(strings.ToLower(v))
	}
	return spec, nil
}

func intParam(q url.Values, key string, fallback int) (int, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func floatParam(q url.Values, key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimPrefix(v, "$"), ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return f, nil
}
