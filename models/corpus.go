package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Corpus maps brand display name to that brand's listings in page order.
type Corpus map[string][]Listing

// Brands returns brand keys in ascending order, skipping reserved keys.
func (c Corpus) Brands() []string {
	brands := make([]string, 0, len(c))
	for k := range c {
		if IsReservedKey(k) {
			continue
		}
		brands = append(brands, k)
	}
	sort.Strings(brands)
	return brands
}

// Len returns the number of listings across all brands.
func (c Corpus) Len() int {
	n := 0
	for _, b := range c.Brands() {
		n += len(c[b])
	}
	return n
}

// UnmarshalJSON drops reserved keys without decoding them, normalizes keys to
// display names and stamps each listing with its brand.
func (c *Corpus) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("corpus: %w", err)
	}
	out := make(Corpus, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if IsReservedKey(k) {
			continue
		}
		var listings []Listing
		if err := json.Unmarshal(raw[k], &listings); err != nil {
			return fmt.Errorf("corpus: brand %q: %w", k, err)
		}
		name := DisplayName(k)
		for i := range listings {
			listings[i].Brand = name
		}
		out[name] = append(out[name], listings...)
	}
	*c = out
	return nil
}
