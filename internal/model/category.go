package model

import "fmt"

// Category is the closed set of clothing categories.
type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTops,
	CategoryBottoms,
	CategoryShoes,
	CategoryAccessories,
}

// String returns the literal string for the category.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the category is one of the known values.
func (c Category) IsValid() bool {
	for _, candidate := range Categories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts raw input into a Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range Categories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
