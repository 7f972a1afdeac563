package model

import (
	"errors"
	"strings"
	"time"
)

// WardrobeItem is a single catalogued piece of clothing.
type WardrobeItem struct {
	ID        int64     `json:"id"`
	ItemName  string    `json:"item_name"`
	Type      Category  `json:"type"`
	ImageURL  string    `json:"image_url"`
	TimesWorn int64     `json:"times_worn"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemUpdate holds the mutable fields of a WardrobeItem. Nil fields are left
// unchanged.
type ItemUpdate struct {
	Name     *string
	Category *Category
}

// IsEmpty reports whether the update touches no field.
func (u ItemUpdate) IsEmpty() bool {
	return u.Name == nil && u.Category == nil
}

// MaxItemNameLength is the longest item name accepted, in bytes.
const MaxItemNameLength = 200

// NormalizeItemName trims surrounding whitespace and checks the name is usable.
func NormalizeItemName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("item name must not be empty")
	}
	if len(name) > MaxItemNameLength {
		return "", errors.New("item name is too long")
	}
	return name, nil
}
