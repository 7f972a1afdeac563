package model

import (
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"tops", CategoryTops, false},
		{"bottoms", CategoryBottoms, false},
		{"shoes", CategoryShoes, false},
		{"accessories", CategoryAccessories, false},
		// Matching is exact.
		{"Tops", "", true},
		{" tops", "", true},
		{"hats", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories {
		if !c.IsValid() {
			t.Errorf("expected %q to be valid", c)
		}
	}
	if Category("invalid-category").IsValid() {
		t.Error("expected invalid-category to be rejected")
	}
}

func TestNormalizeItemName(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"blue jeans", "blue jeans", false},
		{"  hat  ", "hat", false},
		{"", "", true},
		{"   \t", "", true},
		{strings.Repeat("a", MaxItemNameLength), strings.Repeat("a", MaxItemNameLength), false},
		{strings.Repeat("a", MaxItemNameLength+1), "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeItemName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeItemName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeItemName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestItemUpdateIsEmpty(t *testing.T) {
	if !(ItemUpdate{}).IsEmpty() {
		t.Error("zero update should be empty")
	}
	name := "scarf"
	if (ItemUpdate{Name: &name}).IsEmpty() {
		t.Error("update with name should not be empty")
	}
	cat := CategoryAccessories
	if (ItemUpdate{Category: &cat}).IsEmpty() {
		t.Error("update with category should not be empty")
	}
}
