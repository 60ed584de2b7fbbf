package models

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Land Rover", "land_rover"},
		{"tesla", "tesla"},
		{" Alfa Romeo ", "alfa_romeo"},
		{"mercedes_benz", "mercedes_benz"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"mercedes_benz", "Mercedes Benz"},
		{"land_rover", "Land Rover"},
		{"tesla", "Tesla"},
		{"Tesla", "Tesla"},
		{"alfa  romeo", "Alfa Romeo"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsReservedKey(t *testing.T) {
	for _, k := range []string{"model", "price", "year", "Model"} {
		if !IsReservedKey(k) {
			t.Errorf("IsReservedKey(%q) = false; want true", k)
		}
	}
	if IsReservedKey("Tesla") {
		t.Error("IsReservedKey(Tesla) = true; want false")
	}
}
