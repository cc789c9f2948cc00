package main

import "testing"

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"arroz", "arroz"},
		{"100%", `100\%`},
		{"pão_de_forma", `pão\_de\_forma`},
		{`a\b`, `a\\b`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsCatalogID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{" 37 ", true},
		{"0", false},
		{"-3", false},
		{"f1", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isCatalogID(tt.in); got != tt.want {
			t.Errorf("isCatalogID(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
