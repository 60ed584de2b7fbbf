package services

import (
	"encoding/json"
	"fmt"
	"sort"
)

// CollectKeys returns every distinct object key found at any depth of a JSON
// document, sorted. Useful for spotting schema leftovers in complete.json.
func CollectKeys(data []byte) ([]string, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("keys: decode: %w", err)
	}

	seen := make(map[string]struct{})
	var walk func(v any)
	walk = func(v any) {
		switch t := v.(type) {
		case map[string]any:
			for k, child := range t {
				seen[k] = struct{}{}
				walk(child)
			}
		case []any:
			for _, child := range t {
				walk(child)
			}
		}
	}
	walk(root)

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
