package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldState tags whether a coerced field holds a usable value.
type FieldState int

const (
	// Valid means the field parsed into its typed value.
	Valid FieldState = iota
	// Unparsed means text was present but could not be coerced; Raw keeps it.
	Unparsed
	// Absent means the page showed nothing for the field.
	Absent
)

func (s FieldState) String() string {
	switch s {
	case Valid:
		return "valid"
	case Unparsed:
		return "unparsed"
	case Absent:
		return "absent"
	}
	return "unknown"
}

// Year is a model year that may have failed coercion.
type Year struct {
	State FieldState
	Value int
	Raw   string
}

// Price is a listed price in whole currency units that may be absent or uncoercible.
type Price struct {
	State FieldState
	Value float64
	Raw   string
}

func ValidYear(v int) Year           { return Year{State: Valid, Value: v, Raw: strconv.Itoa(v)} }
func UnparsedYear(raw string) Year   { return Year{State: Unparsed, Raw: raw} }
func ValidPrice(v float64) Price     { return Price{State: Valid, Value: v, Raw: formatFloat(v)} }
func UnparsedPrice(raw string) Price { return Price{State: Unparsed, Raw: raw} }
func AbsentPrice() Price             { return Price{State: Absent} }

func (y Year) Valid() bool  { return y.State == Valid }
func (p Price) Valid() bool { return p.State == Valid }

// Years outside this range are kept as unparsed text.
const (
	minYear = 0
	maxYear = 9999
)

// ParseYear coerces year text as a base-10 integer in [minYear, maxYear].
func ParseYear(text string) Year {
	t := strings.TrimSpace(text)
	n, err := strconv.Atoi(t)
	if err != nil || n < minYear || n > maxYear {
		return UnparsedYear(text)
	}
	return ValidYear(n)
}

// ParsePrice coerces currency text such as "$52,490". Only the PriceNotFound
// sentinel maps to an absent price; blank text is unparsed.
func ParsePrice(text string) Price {
	t := strings.TrimSpace(text)
	if t == PriceNotFound {
		return AbsentPrice()
	}
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(t)
	v, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return UnparsedPrice(text)
	}
	return ValidPrice(v)
}

func (y Year) String() string {
	switch y.State {
	case Valid:
		return strconv.Itoa(y.Value)
	case Unparsed:
		return y.Raw
	}
	return ""
}

func (p Price) String() string {
	switch p.State {
	case Valid:
		return formatFloat(p.Value)
	case Unparsed:
		return p.Raw
	}
	return ""
}

func (y Year) MarshalJSON() ([]byte, error) {
	switch y.State {
	case Valid:
		return []byte(strconv.Itoa(y.Value)), nil
	case Unparsed:
		return json.Marshal(y.Raw)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts integers, numeric strings, other strings (kept
// unparsed) and null.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*y = Year{State: Absent}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("year: %w", err)
		}
		*y = ParseYear(s)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("year: %w", err)
		}
		if f != math.Trunc(f) || f < minYear || f > maxYear {
			*y = UnparsedYear(string(data))
			return nil
		}
		*y = ValidYear(int(f))
	}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	switch p.State {
	case Valid:
		return []byte(formatFloat(p.Value)), nil
	case Unparsed:
		return json.Marshal(p.Raw)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts numbers, currency strings, other strings (kept
// unparsed) and null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = AbsentPrice()
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("price: %w", err)
		}
		*p = ParsePrice(s)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("price: %w", err)
		}
		*p = ValidPrice(f)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
