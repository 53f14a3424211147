package utils

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		fallback string
		want     string
	}{
		{"Acme Pty Ltd", "fallback", "acme-pty-ltd"},
		{"  Double  Spaces  ", "fallback", "double-spaces"},
		{"UPPER_case-123", "fallback", "upper-case-123"},
		// Non-ASCII letters act as separators, matching the download
		// filenames this feeds.
		{"Café & Co", "fallback", "caf-co"},
		{"!!!", "fallback", "fallback"},
		{"", "fallback", "fallback"},
	}
	for _, tc := range tests {
		if got := Slugify(tc.input, tc.fallback); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSplitBullets(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \n  \n", nil},
		{"single line", "grow revenue", []string{"grow revenue"}},
		{"blank lines dropped", "a\n\n b \nc", []string{"a", "b", "c"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SplitBullets(tc.input); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("SplitBullets(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("   \t ") {
		t.Error("IsBlank(whitespace) = false")
	}
	if IsBlank(" x ") {
		t.Error("IsBlank(\" x \") = true")
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueSlice() = %v, want %v", got, want)
	}
}
