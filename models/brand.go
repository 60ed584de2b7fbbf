package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// reservedKeys are top-level corpus keys left over from an older document
// layout. They are never brands.
var reservedKeys = map[string]struct{}{
	"model": {},
	"price": {},
	"year":  {},
}

// IsReservedKey reports whether a top-level corpus key must be skipped.
func IsReservedKey(key string) bool {
	_, ok := reservedKeys[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// Slug returns the URL/attribute form of a brand name: lowercase, spaces to underscores.
//
//	Slug("Land Rover") == "land_rover"
func Slug(brand string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(brand)), " ", "_")
}

// DisplayName returns the title-cased form of a brand name or slug with
// underscores replaced by spaces.
//
//	DisplayName("mercedes_benz") == "Mercedes Benz"
func DisplayName(brand string) string {
	s := strings.Join(strings.Fields(strings.ReplaceAll(brand, "_", " ")), " ")
	// Casers keep state, so one per call.
	return cases.Title(language.English).String(s)
}
